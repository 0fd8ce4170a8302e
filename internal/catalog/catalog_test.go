package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogInvariants(t *testing.T) {
	c := Default()
	require.Equal(t, 17, c.Len())

	for _, ex := range c.All() {
		assert.NotEqual(t, ex.BaseReps > 0, ex.BaseTime > 0, "exercise %s must have exactly one target", ex.ID)
		assert.True(t, ex.IsPrimary || ex.IsSupport, "exercise %s has no role", ex.ID)
		assert.Len(t, ex.Instructions, 3, "exercise %s instructions", ex.ID)
		assert.NotEmpty(t, ex.MuscleGroups, "exercise %s muscle groups", ex.ID)
	}
}

func TestByID(t *testing.T) {
	c := Default()

	ex, ok := c.ByID("plank")
	require.True(t, ok)
	assert.Equal(t, "Plank", ex.Name)
	assert.True(t, ex.Timed())
	v, timed := ex.Target()
	assert.Equal(t, 30, v)
	assert.True(t, timed)

	_, ok = c.ByID("does-not-exist")
	assert.False(t, ok)
}

func TestRoleFilters(t *testing.T) {
	c := Default()
	for _, ex := range c.Primary() {
		assert.True(t, ex.IsPrimary, ex.ID)
	}
	for _, ex := range c.Support() {
		assert.True(t, ex.IsSupport, ex.ID)
	}
	assert.Len(t, c.Primary(), 8)
	assert.Len(t, c.Support(), 12)
}

func TestByType(t *testing.T) {
	c := Default()
	counts := map[MovementType]int{}
	for _, mt := range MovementTypes {
		for _, ex := range c.ByType(mt) {
			require.Equal(t, mt, ex.MovementType)
			counts[mt]++
		}
	}
	assert.Equal(t, map[MovementType]int{
		Push: 3, Pull: 2, Squat: 2, Hinge: 1, Core: 5, Mobility: 4,
	}, counts)
}

func TestSafe(t *testing.T) {
	c := Default()

	all := c.Safe(nil)
	assert.Len(t, all, c.Len())

	safe := c.Safe([]Constraint{Wrist})
	require.NotEmpty(t, safe)
	for _, ex := range safe {
		assert.NotContains(t, ex.Contraindications, Wrist, ex.ID)
	}
	ids := make([]string, 0, len(safe))
	for _, ex := range safe {
		ids = append(ids, ex.ID)
	}
	assert.NotContains(t, ids, "push-ups-standard")
	assert.Contains(t, ids, "glute-bridges")
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		ex   Exercise
	}{
		{"both targets", Exercise{ID: "a", MovementType: Core, BaseReps: 5, BaseTime: 10, DifficultyLevel: 1}},
		{"no target", Exercise{ID: "b", MovementType: Core, DifficultyLevel: 1}},
		{"bad difficulty", Exercise{ID: "c", MovementType: Core, BaseReps: 5, DifficultyLevel: 6}},
		{"bad type", Exercise{ID: "d", MovementType: "dance", BaseReps: 5, DifficultyLevel: 1}},
		{"no id", Exercise{MovementType: Core, BaseReps: 5, DifficultyLevel: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Exercise{tt.ex})
			assert.Error(t, err)
		})
	}

	ok := Exercise{ID: "x", MovementType: Core, BaseReps: 5, DifficultyLevel: 1}
	_, err := New([]Exercise{ok, ok})
	assert.Error(t, err, "duplicate ids")
}

func TestMuscleOverlap(t *testing.T) {
	ex, _ := Default().ByID("bodyweight-squats")
	set := map[MuscleGroup]bool{Quads: true, CoreMuscle: true, Chest: true}
	assert.Equal(t, 2, ex.MuscleOverlap(set))
	assert.Equal(t, 0, ex.MuscleOverlap(nil))
}

func TestQueriesDoNotShareMemory(t *testing.T) {
	c := Default()
	want, ok := c.ByID("push-ups-standard")
	require.True(t, ok)
	origMuscle := want.MuscleGroups[0]
	origStep := want.Instructions[0]

	all := c.All()
	all[0].MuscleGroups[0] = "mutated"
	all[0].Instructions[0] = "mutated"
	if len(all[0].Contraindications) > 0 {
		all[0].Contraindications[0] = "mutated"
	}
	byType := c.ByType(Push)
	byType[0].MuscleGroups[0] = "mutated"
	got, _ := c.ByID("push-ups-standard")
	got.Instructions[0] = "mutated"

	again, _ := c.ByID("push-ups-standard")
	assert.Equal(t, origMuscle, again.MuscleGroups[0])
	assert.Equal(t, origStep, again.Instructions[0])
	assert.Equal(t, want.Contraindications, again.Contraindications)
}
