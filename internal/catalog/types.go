package catalog

import "slices"

// MovementType classifies an exercise by movement pattern.
type MovementType string

const (
	Push     MovementType = "push"
	Pull     MovementType = "pull"
	Squat    MovementType = "squat"
	Hinge    MovementType = "hinge"
	Core     MovementType = "core"
	Mobility MovementType = "mobility"
)

var MovementTypes = []MovementType{Push, Pull, Squat, Hinge, Core, Mobility}

// MuscleGroup is a body region tracked for recovery rotation.
type MuscleGroup string

const (
	Chest      MuscleGroup = "chest"
	Shoulders  MuscleGroup = "shoulders"
	Triceps    MuscleGroup = "triceps"
	Back       MuscleGroup = "back"
	Biceps     MuscleGroup = "biceps"
	Quads      MuscleGroup = "quads"
	Hamstrings MuscleGroup = "hamstrings"
	Glutes     MuscleGroup = "glutes"
	CoreMuscle MuscleGroup = "core"
	HipFlexors MuscleGroup = "hip-flexors"
	Calves     MuscleGroup = "calves"
)

// Constraint is a body area a user wants to protect.
type Constraint string

const (
	Wrist     Constraint = "wrist"
	Knee      Constraint = "knee"
	Shoulder  Constraint = "shoulder"
	LowerBack Constraint = "lower-back"
	Neck      Constraint = "neck"
)

var Constraints = []Constraint{Wrist, Knee, Shoulder, LowerBack, Neck}

// Exercise is an immutable catalog entry. Exactly one of BaseReps and
// BaseTime is non-zero.
type Exercise struct {
	ID           string
	Name         string
	MovementType MovementType
	MuscleGroups []MuscleGroup
	IsPrimary    bool
	IsSupport    bool

	BaseReps int
	BaseTime int // seconds

	Goal          string
	Instructions  []string
	CommonMistake string
	EasierVariant string
	HarderVariant string

	Contraindications []Constraint
	DifficultyLevel   int // 1-5
}

func (e Exercise) clone() Exercise {
	e.MuscleGroups = slices.Clone(e.MuscleGroups)
	e.Instructions = slices.Clone(e.Instructions)
	e.Contraindications = slices.Clone(e.Contraindications)
	return e
}

// Timed reports whether the exercise is held for a duration.
func (e Exercise) Timed() bool {
	return e.BaseTime > 0
}

// Target returns the base target and whether it is a duration in seconds.
func (e Exercise) Target() (int, bool) {
	if e.Timed() {
		return e.BaseTime, true
	}
	return e.BaseReps, false
}

// ConflictsWith reports whether any contraindication is in constraints.
func (e Exercise) ConflictsWith(constraints []Constraint) bool {
	for _, c := range e.Contraindications {
		for _, uc := range constraints {
			if c == uc {
				return true
			}
		}
	}
	return false
}

// MuscleOverlap counts how many of the exercise's muscle groups are in set.
func (e Exercise) MuscleOverlap(set map[MuscleGroup]bool) int {
	n := 0
	for _, m := range e.MuscleGroups {
		if set[m] {
			n++
		}
	}
	return n
}
