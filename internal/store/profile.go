package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/floor"
)

// GetProfile returns the single user profile, or ErrNotFound before one has
// been saved.
func (s *Store) GetProfile() (*floor.UserProfile, error) {
	p := &floor.UserProfile{}
	var equipment, constraints, createdAt, updatedAt string
	var timePref int
	err := s.q().QueryRow(
		`SELECT id, level, time_preference, equipment, constraints, created_at, updated_at
		 FROM profile WHERE slot = 1`,
	).Scan(&p.ID, &p.Level, &timePref, &equipment, &constraints, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.TimePreference = floor.TimePreference(timePref)
	p.Equipment = floor.EquipmentLevel(equipment)
	p.Constraints = splitList[catalog.Constraint](constraints)
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// SaveProfile upserts the profile. A missing ID is generated; CreatedAt is
// kept from the stored row and UpdatedAt is set to now.
func (s *Store) SaveProfile(p *floor.UserProfile) (*floor.UserProfile, error) {
	out := *p
	out.Constraints = append([]catalog.Constraint(nil), p.Constraints...)
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	now := s.now()
	out.UpdatedAt = now
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}

	_, err := s.q().Exec(
		`INSERT INTO profile (slot, id, level, time_preference, equipment, constraints, created_at, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			level = excluded.level,
			time_preference = excluded.time_preference,
			equipment = excluded.equipment,
			constraints = excluded.constraints,
			updated_at = excluded.updated_at`,
		out.ID, out.Level, int(out.TimePreference), string(out.Equipment),
		joinList(out.Constraints), formatTime(out.CreatedAt), formatTime(out.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.GetProfile()
}
