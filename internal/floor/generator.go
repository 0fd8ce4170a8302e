package floor

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sirupsen/logrus"
)

// ErrNoCandidates is returned when a required role has no exercise to pick
// from. It indicates a misconfigured catalog.
var ErrNoCandidates = errors.New("no candidate exercises")

const (
	// Days back (inclusive of the target date) whose completed work counts
	// as recently trained.
	recoveryDays = 1

	minDurationMinutes = 3
	maxDurationMinutes = 6
	secondsPerRep      = 3
	fallbackSeconds    = 30

	easierModifier = 0.85
	harderModifier = 1.15
	deloadModifier = 0.7
	deloadHardMin  = 2
)

// RandSource yields floats in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Options tune a single generation.
type Options struct {
	// Date of the floor, YYYY-MM-DD. Empty means today.
	Date string
	// ExcludeBonus drops the optional third exercise.
	ExcludeBonus bool
}

// Generator builds new daily floors from a catalog.
type Generator struct {
	catalog *catalog.Catalog
	rand    RandSource
	now     dates.Clock
	logger  logrus.FieldLogger
	newID   func() string
}

// NewGenerator returns a generator. Nil arguments fall back to the built-in
// catalog, the global random source, the local system clock and a discarded
// logger.
func NewGenerator(c *catalog.Catalog, rng RandSource, clock dates.Clock, logger logrus.FieldLogger) *Generator {
	if c == nil {
		c = catalog.Default()
	}
	if rng == nil {
		rng = globalRand{}
	}
	if clock == nil {
		clock = dates.SystemClock(nil)
	}
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	return &Generator{
		catalog: c,
		rand:    rng,
		now:     clock,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// Generate builds the floor for opts.Date. recentFloors feed muscle
// recovery; recentFeedback, most recent first, feeds the difficulty trend.
// A nil profile means DefaultProfile.
func (g *Generator) Generate(profile *UserProfile, recentFloors []DailyFloor, recentFeedback []Feedback, opts Options) (DailyFloor, error) {
	now := g.now()
	date := opts.Date
	if date == "" {
		date = dates.Format(now)
	}

	p := DefaultProfile()
	if profile != nil {
		p = *profile
	}
	level := clampLevel(p.Level)

	primaryPool, supportPool := g.pools(p.Constraints)
	recent := g.recentlyWorked(recentFloors, date)
	modifier := difficultyModifier(recentFeedback)

	used := make(map[string]bool)
	var exercises []FloorExercise

	primary, err := g.pick(primaryPool, recent)
	if err != nil {
		return DailyFloor{}, fmt.Errorf("pick primary: %w", err)
	}
	used[primary.ID] = true
	exercises = append(exercises, scaledExercise(primary, level, modifier, false))

	support, err := g.pick(exclude(supportPool, used), recent)
	if err != nil {
		return DailyFloor{}, fmt.Errorf("pick support: %w", err)
	}
	used[support.ID] = true
	exercises = append(exercises, scaledExercise(support, level, modifier, false))

	if !opts.ExcludeBonus {
		pool := supportPool
		if dates.DayOfMonth(date)%2 == 0 {
			pool = primaryPool
		}
		if candidates := exclude(pool, used); len(candidates) > 0 {
			bonus, err := g.pick(candidates, recent)
			if err != nil {
				return DailyFloor{}, fmt.Errorf("pick bonus: %w", err)
			}
			exercises = append(exercises, scaledExercise(bonus, level, modifier, true))
		}
	}

	return DailyFloor{
		ID:                g.newID(),
		Date:              date,
		Exercises:         exercises,
		EstimatedDuration: EstimateMinutes(exercises),
		GeneratedAt:       now,
	}, nil
}

// pools returns the safe primary and support pools, falling back to the
// unfiltered role pool when constraints leave it empty.
func (g *Generator) pools(constraints []catalog.Constraint) (primary, support []catalog.Exercise) {
	safe := g.catalog.Safe(constraints)
	for _, ex := range safe {
		if ex.IsPrimary {
			primary = append(primary, ex)
		}
		if ex.IsSupport {
			support = append(support, ex)
		}
	}
	if len(primary) == 0 {
		g.logger.WithFields(logrus.Fields{"role": "primary", "constraints": constraints}).
			Warn("constraints too restrictive, falling back to full exercise list")
		primary = g.catalog.Primary()
	}
	if len(support) == 0 {
		g.logger.WithFields(logrus.Fields{"role": "support", "constraints": constraints}).
			Warn("constraints too restrictive, falling back to full exercise list")
		support = g.catalog.Support()
	}
	return primary, support
}

// recentlyWorked collects muscle groups from completed exercises of
// completed floors dated on or after the day before date.
func (g *Generator) recentlyWorked(floors []DailyFloor, date string) map[catalog.MuscleGroup]bool {
	cutoff := dates.AddDays(date, -recoveryDays)
	worked := make(map[catalog.MuscleGroup]bool)
	for _, f := range floors {
		if f.Date < cutoff || !f.Completed {
			continue
		}
		for _, fe := range f.Exercises {
			if !fe.Completed {
				continue
			}
			ex, ok := g.catalog.ByID(fe.ExerciseID)
			if !ok {
				continue
			}
			for _, m := range ex.MuscleGroups {
				worked[m] = true
			}
		}
	}
	return worked
}

// pick chooses proportionally to max(1, 5-overlap), favouring exercises
// that hit fewer recently worked muscles.
func (g *Generator) pick(pool []catalog.Exercise, recent map[catalog.MuscleGroup]bool) (catalog.Exercise, error) {
	switch len(pool) {
	case 0:
		return catalog.Exercise{}, ErrNoCandidates
	case 1:
		return pool[0], nil
	}

	weights := make([]float64, len(pool))
	var total float64
	for i, ex := range pool {
		weights[i] = float64(max(1, 5-ex.MuscleOverlap(recent)))
		total += weights[i]
	}

	r := g.rand.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 {
			return pool[i], nil
		}
	}
	return pool[len(pool)-1], nil
}

func exclude(pool []catalog.Exercise, used map[string]bool) []catalog.Exercise {
	var out []catalog.Exercise
	for _, ex := range pool {
		if !used[ex.ID] {
			out = append(out, ex)
		}
	}
	return out
}

// difficultyModifier reads the trend from feedback ordered most recent
// first. Two or more "harder" reports anywhere in the window force a deload.
func difficultyModifier(recent []Feedback) float64 {
	modifier := 1.0
	if len(recent) > 0 {
		switch recent[0].Difficulty {
		case Easier:
			modifier = easierModifier
		case Harder:
			modifier = harderModifier
		}
	}
	hard := 0
	for _, fb := range recent {
		if fb.Difficulty == Harder {
			hard++
		}
	}
	if hard >= deloadHardMin {
		modifier = deloadModifier
	}
	return modifier
}

// ScaleForLevel maps level 1 to 60% of base and level 10 to 150%.
func ScaleForLevel(base, level int) int {
	multiplier := 0.6 + float64(level-1)*0.1
	return int(math.Round(float64(base) * multiplier))
}

func scaledExercise(ex catalog.Exercise, level int, modifier float64, bonus bool) FloorExercise {
	fe := FloorExercise{
		ExerciseID:   ex.ID,
		ExerciseName: ex.Name,
		IsBonus:      bonus,
	}
	base, timed := ex.Target()
	v := int(math.Round(float64(ScaleForLevel(base, level)) * modifier))
	if timed {
		fe.TargetTime = &v
	} else {
		fe.TargetReps = &v
	}
	return fe
}

// EstimateMinutes sums per-exercise estimates and clamps the result into
// the display range of 3-6 minutes.
func EstimateMinutes(exercises []FloorExercise) int {
	total := 0
	for _, ex := range exercises {
		switch {
		case ex.TargetTime != nil && *ex.TargetTime > 0:
			total += *ex.TargetTime
		case ex.TargetReps != nil && *ex.TargetReps > 0:
			total += *ex.TargetReps * secondsPerRep
		default:
			total += fallbackSeconds
		}
	}
	minutes := int(math.Round(float64(total) / 60))
	return min(maxDurationMinutes, max(minDurationMinutes, minutes))
}

func clampLevel(level int) int {
	if level == 0 {
		return DefaultLevel
	}
	return min(10, max(1, level))
}
