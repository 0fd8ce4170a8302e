// Package floor builds and mutates the daily "floor" workout: a short
// bodyweight session of one primary movement, one support movement and an
// optional bonus.
package floor

import (
	"time"

	"github.com/sadopc/dailyfloor/internal/catalog"
)

type EquipmentLevel string

const (
	EquipmentNone    EquipmentLevel = "none"
	EquipmentMinimal EquipmentLevel = "minimal"
	EquipmentFull    EquipmentLevel = "full"
)

// Difficulty is the perceived difficulty reported in feedback.
type Difficulty string

const (
	Easier Difficulty = "easier"
	Same   Difficulty = "same"
	Harder Difficulty = "harder"
)

type Energy string

const (
	EnergyLow  Energy = "low"
	EnergyOK   Energy = "ok"
	EnergyHigh Energy = "high"
)

type Soreness string

const (
	Sore         Soreness = "sore"
	SorenessNone Soreness = "normal"
)

// TimePreference is a session length bucket in minutes: 2, 5 or 8.
type TimePreference int

var TimePreferences = []TimePreference{2, 5, 8}

// UserProfile drives scaling and exercise safety.
type UserProfile struct {
	ID             string               `json:"id"`
	Level          int                  `json:"level"` // 1-10
	TimePreference TimePreference       `json:"timePreference"`
	Equipment      EquipmentLevel       `json:"equipment"`
	Constraints    []catalog.Constraint `json:"constraints"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

const DefaultLevel = 5

// DefaultProfile is the mid-level, unconstrained profile used when the
// caller has none.
func DefaultProfile() UserProfile {
	return UserProfile{
		Level:          DefaultLevel,
		TimePreference: 5,
		Equipment:      EquipmentNone,
	}
}

// FloorExercise is one exercise instance within a DailyFloor. Exactly one of
// TargetReps and TargetTime is set.
type FloorExercise struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`

	TargetReps *int `json:"targetReps,omitempty"`
	TargetTime *int `json:"targetTime,omitempty"` // seconds

	IsBonus   bool `json:"isBonus"`
	Completed bool `json:"completed"`

	ActualReps *int `json:"actualReps,omitempty"`
	ActualTime *int `json:"actualTime,omitempty"`
}

// DailyFloor is the workout for one calendar date. Completed is true iff
// every non-bonus exercise is completed.
type DailyFloor struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"` // YYYY-MM-DD
	Exercises         []FloorExercise `json:"exercises"`
	Completed         bool            `json:"completed"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
	EstimatedDuration int             `json:"estimatedDuration"` // minutes
	GeneratedAt       time.Time       `json:"generatedAt"`
}

// Feedback is the user's subjective report for a date.
type Feedback struct {
	ID            string         `json:"id"`
	Date          string         `json:"date"`
	Difficulty    Difficulty     `json:"difficulty"`
	Soreness      Soreness       `json:"soreness,omitempty"`
	Energy        Energy         `json:"energy,omitempty"`
	TimeAvailable TimePreference `json:"timeAvailable,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Actual is the optionally recorded performance for a completed exercise.
type Actual struct {
	Reps *int
	Time *int
}

// Clone returns a deep copy of the floor so callers can mutate the result
// without touching the input.
func (f DailyFloor) Clone() DailyFloor {
	out := f
	out.Exercises = make([]FloorExercise, len(f.Exercises))
	for i, ex := range f.Exercises {
		out.Exercises[i] = ex.clone()
	}
	if f.CompletedAt != nil {
		t := *f.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

func (e FloorExercise) clone() FloorExercise {
	e.TargetReps = copyInt(e.TargetReps)
	e.TargetTime = copyInt(e.TargetTime)
	e.ActualReps = copyInt(e.ActualReps)
	e.ActualTime = copyInt(e.ActualTime)
	return e
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
