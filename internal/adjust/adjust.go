// Package adjust rescales or substitutes the exercises of a daily floor in
// response to user feedback.
package adjust

import (
	"fmt"
	"math"

	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/floor"
)

const (
	maxIncrease = 0.30
	maxDecrease = 0.40

	easierMultiplier = 1.15
	harderMultiplier = 0.85
	deloadMultiplier = 0.70
	patternWindow    = 3

	lowEnergy  = 0.9
	highEnergy = 1.1

	swapIntensity = 0.85
	quickStep     = 0.15

	minReps = 3
	minTime = 10
)

// NoChanges is the only change line of an adjustment that altered nothing.
const NoChanges = "No changes needed"

// Result is an adjusted floor plus one human-readable line per change.
type Result struct {
	Floor   floor.DailyFloor
	Changes []string
}

// Adjuster applies feedback to floors using a catalog for substitutions.
type Adjuster struct {
	catalog *catalog.Catalog
	now     dates.Clock
}

// New returns an adjuster. Nil arguments mean the built-in catalog and the
// local system clock.
func New(c *catalog.Catalog, clock dates.Clock) *Adjuster {
	if c == nil {
		c = catalog.Default()
	}
	if clock == nil {
		clock = dates.SystemClock(nil)
	}
	return &Adjuster{catalog: c, now: clock}
}

var std = New(nil, nil)

// Adjust applies fb to f with the built-in catalog.
func Adjust(f floor.DailyFloor, fb floor.Feedback, recent []floor.Feedback, profile *floor.UserProfile) Result {
	return std.Adjust(f, fb, recent, profile)
}

// QuickAdjust rescales f by 15% in direction with the built-in catalog.
func QuickAdjust(f floor.DailyFloor, direction floor.Difficulty) Result {
	return std.QuickAdjust(f, direction)
}

// Multiplier derives the scale factor for fb. recent is ordered most recent
// first and must not contain fb itself. The result lies in [0.6, 1.3].
func Multiplier(fb floor.Feedback, recent []floor.Feedback) float64 {
	m := 1.0
	switch fb.Difficulty {
	case floor.Easier:
		m = easierMultiplier
	case floor.Harder:
		m = harderMultiplier
	}

	if fb.Difficulty == floor.Harder {
		for _, prior := range recent[:min(patternWindow, len(recent))] {
			if prior.Difficulty == floor.Harder {
				m = deloadMultiplier
				break
			}
		}
	}

	switch fb.Energy {
	case floor.EnergyLow:
		m *= lowEnergy
	case floor.EnergyHigh:
		m *= highEnergy
	}

	return min(1+maxIncrease, max(1-maxDecrease, m))
}

// Adjust rescales every exercise of f by Multiplier(fb, recent). When fb
// reports soreness together with "harder", each non-bonus exercise is first
// swapped for a gentler alternative if one exists. Completion is recomputed,
// so a swap un-completes the floor.
func (a *Adjuster) Adjust(f floor.DailyFloor, fb floor.Feedback, recent []floor.Feedback, profile *floor.UserProfile) Result {
	var constraints []catalog.Constraint
	if profile != nil {
		constraints = profile.Constraints
	}
	m := Multiplier(fb, recent)
	swap := fb.Soreness == floor.Sore && fb.Difficulty == floor.Harder

	out := f.Clone()
	var changes []string
	for i, ex := range out.Exercises {
		if swap && !ex.IsBonus {
			if alt, ok := a.alternative(ex, constraints); ok {
				changes = append(changes, fmt.Sprintf("Swapped %s → %s", ex.ExerciseName, alt.ExerciseName))
				out.Exercises[i] = alt
				continue
			}
		}
		scaled := scale(ex, m)
		changes = append(changes, describe(ex, scaled)...)
		out.Exercises[i] = scaled
	}
	if len(changes) == 0 {
		changes = []string{NoChanges}
	}

	a.finish(&out)
	return Result{Floor: out, Changes: changes}
}

// QuickAdjust scales every exercise of f by ±15% with no substitution.
// Same leaves the targets alone. Changes is empty when nothing moved.
func (a *Adjuster) QuickAdjust(f floor.DailyFloor, direction floor.Difficulty) Result {
	m := 1.0
	switch direction {
	case floor.Easier:
		m = 1 - quickStep
	case floor.Harder:
		m = 1 + quickStep
	}

	out := f.Clone()
	var changes []string
	for i, ex := range out.Exercises {
		scaled := scale(ex, m)
		changes = append(changes, describe(ex, scaled)...)
		out.Exercises[i] = scaled
	}

	a.finish(&out)
	return Result{Floor: out, Changes: changes}
}

func (a *Adjuster) finish(f *floor.DailyFloor) {
	f.EstimatedDuration = floor.EstimateMinutes(f.Exercises)
	floor.SyncCompletion(f, a.now())
}

// alternative finds a same-type exercise that is no harder than ex, safe
// for constraints and shifts at least one muscle emphasis. The lowest
// difficulty wins, ties going to catalog order.
func (a *Adjuster) alternative(ex floor.FloorExercise, constraints []catalog.Constraint) (floor.FloorExercise, bool) {
	orig, ok := a.catalog.ByID(ex.ExerciseID)
	if !ok {
		return floor.FloorExercise{}, false
	}
	muscles := make(map[catalog.MuscleGroup]bool, len(orig.MuscleGroups))
	for _, m := range orig.MuscleGroups {
		muscles[m] = true
	}

	var best *catalog.Exercise
	for _, cand := range a.catalog.ByType(orig.MovementType) {
		switch {
		case cand.ID == orig.ID,
			cand.DifficultyLevel > orig.DifficultyLevel,
			cand.ConflictsWith(constraints),
			cand.MuscleOverlap(muscles) >= len(orig.MuscleGroups):
			continue
		}
		if best == nil || cand.DifficultyLevel < best.DifficultyLevel {
			c := cand
			best = &c
		}
	}
	if best == nil {
		return floor.FloorExercise{}, false
	}

	seeded := floor.FloorExercise{
		ExerciseID:   best.ID,
		ExerciseName: best.Name,
		IsBonus:      ex.IsBonus,
	}
	base, timed := best.Target()
	if timed {
		seeded.TargetTime = floor.IntPtr(base)
	} else {
		seeded.TargetReps = floor.IntPtr(base)
	}
	return scale(seeded, swapIntensity), true
}

// scale multiplies whichever target is set, rounding half away from zero
// and respecting the minimum reps and hold time.
func scale(ex floor.FloorExercise, m float64) floor.FloorExercise {
	if ex.TargetReps != nil {
		ex.TargetReps = floor.IntPtr(max(minReps, int(math.Round(float64(*ex.TargetReps)*m))))
	}
	if ex.TargetTime != nil {
		ex.TargetTime = floor.IntPtr(max(minTime, int(math.Round(float64(*ex.TargetTime)*m))))
	}
	return ex
}

func describe(before, after floor.FloorExercise) []string {
	var lines []string
	if d := value(after.TargetReps) - value(before.TargetReps); d != 0 {
		lines = append(lines, fmt.Sprintf("%s: %+d reps", before.ExerciseName, d))
	}
	if d := value(after.TargetTime) - value(before.TargetTime); d != 0 {
		lines = append(lines, fmt.Sprintf("%s: %+ds", before.ExerciseName, d))
	}
	return lines
}

func value(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
