package floor

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays values in order, repeating the last one.
type scriptedRand struct {
	values []float64
	i      int
}

func (r *scriptedRand) Float64() float64 {
	v := r.values[min(r.i, len(r.values)-1)]
	r.i++
	return v
}

var testNow = time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC)

func testClock() dates.Clock {
	return func() time.Time { return testNow }
}

func newTestGenerator(t *testing.T, c *catalog.Catalog, rng RandSource) (*Generator, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return NewGenerator(c, rng, testClock(), logger), hook
}

// tinyCatalog has a single primary and a single support exercise.
func tinyCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Exercise{
		{ID: "p", Name: "P", MovementType: catalog.Push, MuscleGroups: []catalog.MuscleGroup{catalog.Chest},
			IsPrimary: true, BaseReps: 10, DifficultyLevel: 2},
		{ID: "s", Name: "S", MovementType: catalog.Core, MuscleGroups: []catalog.MuscleGroup{catalog.CoreMuscle},
			IsSupport: true, BaseTime: 30, DifficultyLevel: 1},
	})
	require.NoError(t, err)
	return c
}

func TestGenerateDefaultProfileNoHistory(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g, _ := newTestGenerator(t, nil, rand.New(rand.NewPCG(seed, seed+7)))

		f, err := g.Generate(nil, nil, nil, Options{})
		require.NoError(t, err)

		assert.Equal(t, "2024-06-14", f.Date)
		assert.NotEmpty(t, f.ID)
		assert.Equal(t, testNow, f.GeneratedAt)
		assert.False(t, f.Completed)
		assert.Nil(t, f.CompletedAt)
		require.GreaterOrEqual(t, len(f.Exercises), 2)
		require.LessOrEqual(t, len(f.Exercises), 3)
		assert.GreaterOrEqual(t, f.EstimatedDuration, 3)
		assert.LessOrEqual(t, f.EstimatedDuration, 6)

		seen := map[string]bool{}
		for i, ex := range f.Exercises {
			assert.NotEqual(t, ex.TargetReps != nil, ex.TargetTime != nil, "exactly one target")
			assert.False(t, ex.Completed)
			assert.Equal(t, i == 2, ex.IsBonus)
			assert.False(t, seen[ex.ExerciseID], "duplicate exercise %s", ex.ExerciseID)
			seen[ex.ExerciseID] = true
		}

		primary, _ := catalog.Default().ByID(f.Exercises[0].ExerciseID)
		support, _ := catalog.Default().ByID(f.Exercises[1].ExerciseID)
		assert.True(t, primary.IsPrimary)
		assert.True(t, support.IsSupport)
	}
}

func TestGenerateBonusAlternatesByDayParity(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g, _ := newTestGenerator(t, nil, rand.New(rand.NewPCG(seed, 3)))

		even, err := g.Generate(nil, nil, nil, Options{Date: "2024-06-14"})
		require.NoError(t, err)
		require.Len(t, even.Exercises, 3)
		bonus, _ := catalog.Default().ByID(even.Exercises[2].ExerciseID)
		assert.True(t, bonus.IsPrimary, "even day bonus should be primary-capable")

		odd, err := g.Generate(nil, nil, nil, Options{Date: "2024-06-15"})
		require.NoError(t, err)
		require.Len(t, odd.Exercises, 3)
		bonus, _ = catalog.Default().ByID(odd.Exercises[2].ExerciseID)
		assert.True(t, bonus.IsSupport, "odd day bonus should be support-capable")
	}
}

func TestGenerateExcludeBonus(t *testing.T) {
	g, _ := newTestGenerator(t, nil, nil)
	f, err := g.Generate(nil, nil, nil, Options{ExcludeBonus: true})
	require.NoError(t, err)
	assert.Len(t, f.Exercises, 2)
}

func TestGenerateSkipsBonusWhenPoolExhausted(t *testing.T) {
	g, _ := newTestGenerator(t, tinyCatalog(t), nil)
	for _, date := range []string{"2024-06-14", "2024-06-15"} {
		f, err := g.Generate(nil, nil, nil, Options{Date: date})
		require.NoError(t, err)
		assert.Len(t, f.Exercises, 2, date)
	}
}

func TestGenerateScaling(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		feedback []Feedback
		reps     int
		time     int
	}{
		{"level 5 neutral", 5, nil, 10, 30},
		{"level 1", 1, nil, 6, 18},
		{"level 10", 10, nil, 15, 45},
		{"last easier", 5, []Feedback{{Difficulty: Easier}}, 9, 26},
		{"last harder", 5, []Feedback{{Difficulty: Harder}}, 12, 35},
		{"last same", 5, []Feedback{{Difficulty: Same}, {Difficulty: Harder}}, 10, 30},
		{"deload two harder", 5, []Feedback{{Difficulty: Easier}, {Difficulty: Harder}, {Difficulty: Same}, {Difficulty: Harder}}, 7, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGenerator(t, tinyCatalog(t), nil)
			profile := DefaultProfile()
			profile.Level = tt.level

			f, err := g.Generate(&profile, nil, tt.feedback, Options{})
			require.NoError(t, err)
			require.Len(t, f.Exercises, 2)

			require.NotNil(t, f.Exercises[0].TargetReps)
			assert.Nil(t, f.Exercises[0].TargetTime)
			assert.Equal(t, tt.reps, *f.Exercises[0].TargetReps)

			require.NotNil(t, f.Exercises[1].TargetTime)
			assert.Nil(t, f.Exercises[1].TargetReps)
			assert.Equal(t, tt.time, *f.Exercises[1].TargetTime)
		})
	}
}

func TestGenerateAvoidsRecentlyWorkedMuscles(t *testing.T) {
	yesterday := DailyFloor{
		Date:      "2024-06-13",
		Completed: true,
		Exercises: []FloorExercise{
			{ExerciseID: "push-ups-standard", Completed: true},
			{ExerciseID: "plank", Completed: true},
		},
	}

	// Without history all primary weights are 5 (total 40): 0.05 lands on
	// the first candidate. With chest/shoulders/triceps/core worked the first
	// weight drops to 1 and the same draw lands on the second.
	g, _ := newTestGenerator(t, nil, &scriptedRand{values: []float64{0.05}})
	fresh, err := g.Generate(nil, nil, nil, Options{ExcludeBonus: true})
	require.NoError(t, err)
	assert.Equal(t, "push-ups-standard", fresh.Exercises[0].ExerciseID)

	g, _ = newTestGenerator(t, nil, &scriptedRand{values: []float64{0.05}})
	rested, err := g.Generate(nil, []DailyFloor{yesterday}, nil, Options{ExcludeBonus: true})
	require.NoError(t, err)
	assert.Equal(t, "push-ups-incline", rested.Exercises[0].ExerciseID)
}

func TestRecentlyWorkedWindow(t *testing.T) {
	g, _ := newTestGenerator(t, nil, nil)
	floors := []DailyFloor{
		{Date: "2024-06-13", Completed: true, Exercises: []FloorExercise{{ExerciseID: "bodyweight-squats", Completed: true}}},
		{Date: "2024-06-12", Completed: true, Exercises: []FloorExercise{{ExerciseID: "push-ups-incline", Completed: true}}},
		{Date: "2024-06-14", Completed: false, Exercises: []FloorExercise{{ExerciseID: "cat-cow", Completed: true}}},
		{Date: "2024-06-14", Completed: true, Exercises: []FloorExercise{
			{ExerciseID: "hip-circles", Completed: true},
			{ExerciseID: "prone-y-raises", Completed: false},
		}},
	}

	worked := g.recentlyWorked(floors, "2024-06-14")
	assert.Equal(t, map[catalog.MuscleGroup]bool{
		catalog.Quads: true, catalog.Glutes: true, catalog.Hamstrings: true,
		catalog.CoreMuscle: true, catalog.HipFlexors: true,
	}, worked)
}

func TestPickSingleCandidateIgnoresRandom(t *testing.T) {
	rng := &scriptedRand{values: []float64{0.99}}
	g, _ := newTestGenerator(t, nil, rng)
	ex, _ := catalog.Default().ByID("plank")

	got, err := g.pick([]catalog.Exercise{ex}, nil)
	require.NoError(t, err)
	assert.Equal(t, "plank", got.ID)
	assert.Equal(t, 0, rng.i, "single candidate should not draw")
}

func TestPickEmptyPool(t *testing.T) {
	g, _ := newTestGenerator(t, nil, nil)
	_, err := g.pick(nil, nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGenerateEmptyRoleIsFatal(t *testing.T) {
	c, err := catalog.New([]catalog.Exercise{
		{ID: "s", Name: "S", MovementType: catalog.Core, IsSupport: true, BaseReps: 10, DifficultyLevel: 1},
	})
	require.NoError(t, err)
	g, _ := newTestGenerator(t, c, nil)

	_, err = g.Generate(nil, nil, nil, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoCandidates))
}

func TestGenerateConstraintFallbackWarns(t *testing.T) {
	c, err := catalog.New([]catalog.Exercise{
		{ID: "p", Name: "P", MovementType: catalog.Push, IsPrimary: true, BaseReps: 10, DifficultyLevel: 2,
			Contraindications: []catalog.Constraint{catalog.Wrist}},
		{ID: "s", Name: "S", MovementType: catalog.Core, IsSupport: true, BaseTime: 30, DifficultyLevel: 1},
	})
	require.NoError(t, err)
	g, hook := newTestGenerator(t, c, nil)

	profile := DefaultProfile()
	profile.Constraints = []catalog.Constraint{catalog.Wrist}
	f, err := g.Generate(&profile, nil, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "p", f.Exercises[0].ExerciseID)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "primary", hook.LastEntry().Data["role"])
}

func TestGenerateRespectsConstraints(t *testing.T) {
	profile := DefaultProfile()
	profile.Constraints = []catalog.Constraint{catalog.Wrist, catalog.Knee}

	for seed := uint64(0); seed < 30; seed++ {
		g, hook := newTestGenerator(t, nil, rand.New(rand.NewPCG(seed, 11)))
		f, err := g.Generate(&profile, nil, nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, hook.Entries)
		for _, fe := range f.Exercises {
			ex, ok := catalog.Default().ByID(fe.ExerciseID)
			require.True(t, ok)
			assert.False(t, ex.ConflictsWith(profile.Constraints), ex.ID)
		}
	}
}

func TestEstimateMinutes(t *testing.T) {
	tests := []struct {
		name string
		exs  []FloorExercise
		want int
	}{
		{"short clamps to 3", []FloorExercise{{TargetReps: IntPtr(10)}, {TargetTime: IntPtr(30)}}, 3},
		{"long clamps to 6", []FloorExercise{{TargetReps: IntPtr(200)}}, 6},
		{"in range", []FloorExercise{{TargetTime: IntPtr(150)}, {TargetReps: IntPtr(30)}}, 4},
		{"fallback seconds", []FloorExercise{{}, {}, {}, {}, {}, {}, {}, {}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateMinutes(tt.exs))
		})
	}
}

func TestScaleForLevel(t *testing.T) {
	assert.Equal(t, 6, ScaleForLevel(10, 1))
	assert.Equal(t, 10, ScaleForLevel(10, 5))
	assert.Equal(t, 15, ScaleForLevel(10, 10))
	assert.Equal(t, 4, ScaleForLevel(6, 1))
}

func TestClampLevel(t *testing.T) {
	assert.Equal(t, DefaultLevel, clampLevel(0))
	assert.Equal(t, 1, clampLevel(-3))
	assert.Equal(t, 10, clampLevel(42))
	assert.Equal(t, 7, clampLevel(7))
}
