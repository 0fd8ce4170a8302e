package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sadopc/dailyfloor/internal/streak"
)

// GetStreak returns the stored streak, or the zero streak when none has been
// saved yet.
func (s *Store) GetStreak() (streak.Data, error) {
	d := streak.New()
	var last sql.NullString
	err := s.q().QueryRow(
		`SELECT current, longest, grace_days_used, last_completed_date FROM streak WHERE slot = 1`,
	).Scan(&d.Current, &d.Longest, &d.GraceDaysUsed, &last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("get streak: %w", err)
	}
	d.LastCompletedDate = last.String

	rows, err := s.q().Query(`SELECT date FROM completion_calendar ORDER BY date`)
	if err != nil {
		return d, fmt.Errorf("get completion calendar: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return d, err
		}
		d.CompletionCalendar[date] = true
	}
	return d, rows.Err()
}

// SaveStreak stores d, replacing the completion calendar wholesale.
func (s *Store) SaveStreak(d streak.Data) error {
	err := s.WithTx(func(tx *Store) error {
		q := tx.q()
		_, err := q.Exec(
			`INSERT INTO streak (slot, current, longest, grace_days_used, last_completed_date)
			 VALUES (1, ?, ?, ?, ?)
			 ON CONFLICT(slot) DO UPDATE SET
				current = excluded.current,
				longest = excluded.longest,
				grace_days_used = excluded.grace_days_used,
				last_completed_date = excluded.last_completed_date`,
			d.Current, d.Longest, d.GraceDaysUsed, nullString(d.LastCompletedDate),
		)
		if err != nil {
			return err
		}
		if _, err := q.Exec(`DELETE FROM completion_calendar`); err != nil {
			return err
		}
		for date, done := range d.CompletionCalendar {
			if !done {
				continue
			}
			if _, err := q.Exec(`INSERT INTO completion_calendar (date) VALUES (?)`, date); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
