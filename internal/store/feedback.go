package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/floor"
)

// SaveFeedback stores fb as the only feedback for its date, replacing any
// earlier report, and drops feedback older than the retention window.
// A missing ID or CreatedAt is filled in.
func (s *Store) SaveFeedback(fb floor.Feedback) (floor.Feedback, error) {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = s.now()
	}
	if fb.Date == "" {
		fb.Date = s.today()
	}

	err := s.WithTx(func(tx *Store) error {
		q := tx.q()
		_, err := q.Exec(
			`INSERT INTO feedback (id, date, difficulty, soreness, energy, time_available, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(date) DO UPDATE SET
				id = excluded.id,
				difficulty = excluded.difficulty,
				soreness = excluded.soreness,
				energy = excluded.energy,
				time_available = excluded.time_available,
				created_at = excluded.created_at`,
			fb.ID, fb.Date, string(fb.Difficulty), string(fb.Soreness), string(fb.Energy),
			int(fb.TimeAvailable), formatTime(fb.CreatedAt),
		)
		if err != nil {
			return err
		}
		cutoff := dates.AddDays(tx.today(), -feedbackRetentionDays)
		_, err = q.Exec(`DELETE FROM feedback WHERE date < ?`, cutoff)
		return err
	})
	if err != nil {
		return floor.Feedback{}, fmt.Errorf("save feedback %s: %w", fb.Date, err)
	}
	return fb, nil
}

// GetFeedback returns the feedback for date, or ErrNotFound.
func (s *Store) GetFeedback(date string) (*floor.Feedback, error) {
	fb, err := scanFeedback(s.q().QueryRow(
		`SELECT id, date, difficulty, soreness, energy, time_available, created_at
		 FROM feedback WHERE date = ?`, date,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feedback %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback %s: %w", date, err)
	}
	return &fb, nil
}

// RecentFeedback returns feedback dated within the last days days (today
// included), most recent first.
func (s *Store) RecentFeedback(days int) ([]floor.Feedback, error) {
	cutoff := dates.AddDays(s.today(), -days)
	rows, err := s.q().Query(
		`SELECT id, date, difficulty, soreness, energy, time_available, created_at
		 FROM feedback WHERE date >= ? ORDER BY date DESC`, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("recent feedback: %w", err)
	}
	defer rows.Close()

	var out []floor.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFeedback(row scanner) (floor.Feedback, error) {
	var fb floor.Feedback
	var difficulty, soreness, energy, createdAt string
	var timeAvailable int
	if err := row.Scan(&fb.ID, &fb.Date, &difficulty, &soreness, &energy, &timeAvailable, &createdAt); err != nil {
		return floor.Feedback{}, err
	}
	fb.Difficulty = floor.Difficulty(difficulty)
	fb.Soreness = floor.Soreness(soreness)
	fb.Energy = floor.Energy(energy)
	fb.TimeAvailable = floor.TimePreference(timeAvailable)
	fb.CreatedAt = parseTime(createdAt)
	return fb, nil
}
