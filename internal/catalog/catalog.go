// Package catalog holds the static exercise library and read-only queries
// over it.
package catalog

import (
	"errors"
	"fmt"
)

// Catalog is an immutable, ordered set of exercises. Query results preserve
// catalog order.
type Catalog struct {
	exercises []Exercise
	byID      map[string]int
}

var builtin = mustNew(exercises)

// Default returns the built-in exercise library.
func Default() *Catalog {
	return builtin
}

// New builds a catalog from exercises after validating them.
func New(list []Exercise) (*Catalog, error) {
	c := &Catalog{
		exercises: make([]Exercise, len(list)),
		byID:      make(map[string]int, len(list)),
	}
	for i, ex := range list {
		c.exercises[i] = ex.clone()
	}
	for i, ex := range c.exercises {
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		if err := validate(ex); err != nil {
			return nil, err
		}
		c.byID[ex.ID] = i
	}
	return c, nil
}

func mustNew(list []Exercise) *Catalog {
	c, err := New(list)
	if err != nil {
		panic(err)
	}
	return c
}

func validate(ex Exercise) error {
	if ex.ID == "" {
		return errors.New("exercise without id")
	}
	if (ex.BaseReps > 0) == (ex.BaseTime > 0) {
		return fmt.Errorf("exercise %q: exactly one of base reps or base time must be set", ex.ID)
	}
	if ex.DifficultyLevel < 1 || ex.DifficultyLevel > 5 {
		return fmt.Errorf("exercise %q: difficulty %d out of range 1-5", ex.ID, ex.DifficultyLevel)
	}
	known := false
	for _, t := range MovementTypes {
		if ex.MovementType == t {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("exercise %q: unknown movement type %q", ex.ID, ex.MovementType)
	}
	return nil
}

// Len returns the number of exercises.
func (c *Catalog) Len() int {
	return len(c.exercises)
}

// All returns every exercise in catalog order. Results never share memory
// with the catalog.
func (c *Catalog) All() []Exercise {
	return c.filter(func(Exercise) bool { return true })
}

// ByID looks up an exercise.
func (c *Catalog) ByID(id string) (Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[i].clone(), true
}

// Primary returns exercises eligible as the primary movement.
func (c *Catalog) Primary() []Exercise {
	return c.filter(func(e Exercise) bool { return e.IsPrimary })
}

// Support returns exercises eligible as the support movement.
func (c *Catalog) Support() []Exercise {
	return c.filter(func(e Exercise) bool { return e.IsSupport })
}

// ByType returns exercises of one movement type.
func (c *Catalog) ByType(t MovementType) []Exercise {
	return c.filter(func(e Exercise) bool { return e.MovementType == t })
}

// Safe returns exercises with no contraindication in constraints.
func (c *Catalog) Safe(constraints []Constraint) []Exercise {
	return c.filter(func(e Exercise) bool { return !e.ConflictsWith(constraints) })
}

func (c *Catalog) filter(keep func(Exercise) bool) []Exercise {
	var out []Exercise
	for _, e := range c.exercises {
		if keep(e) {
			out = append(out, e.clone())
		}
	}
	return out
}
