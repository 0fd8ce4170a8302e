package store

import (
	"database/sql"
	"fmt"

	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/floor"
)

const floorColumns = `id, date, completed, completed_at, estimated_duration, generated_at`

// GetFloor returns the floor for date, or ErrNotFound.
func (s *Store) GetFloor(date string) (*floor.DailyFloor, error) {
	floors, err := s.queryFloors(`SELECT `+floorColumns+` FROM floors WHERE date = ?`, date)
	if err != nil {
		return nil, fmt.Errorf("get floor %s: %w", date, err)
	}
	if len(floors) == 0 {
		return nil, fmt.Errorf("get floor %s: %w", date, ErrNotFound)
	}
	return &floors[0], nil
}

// SaveFloor replaces any floor stored for f.Date and drops floors older
// than the retention window.
func (s *Store) SaveFloor(f floor.DailyFloor) error {
	err := s.WithTx(func(tx *Store) error {
		q := tx.q()
		if _, err := q.Exec(`DELETE FROM floors WHERE date = ? OR id = ?`, f.Date, f.ID); err != nil {
			return err
		}
		_, err := q.Exec(
			`INSERT INTO floors (id, date, completed, completed_at, estimated_duration, generated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			f.ID, f.Date, boolInt(f.Completed), nullTime(f.CompletedAt), f.EstimatedDuration, formatTime(f.GeneratedAt),
		)
		if err != nil {
			return err
		}
		for i, ex := range f.Exercises {
			_, err := q.Exec(
				`INSERT INTO floor_exercises
				 (floor_id, position, exercise_id, exercise_name, target_reps, target_time, is_bonus, completed, actual_reps, actual_time)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				f.ID, i, ex.ExerciseID, ex.ExerciseName, nullInt(ex.TargetReps), nullInt(ex.TargetTime),
				boolInt(ex.IsBonus), boolInt(ex.Completed), nullInt(ex.ActualReps), nullInt(ex.ActualTime),
			)
			if err != nil {
				return fmt.Errorf("exercise %d: %w", i, err)
			}
		}
		cutoff := dates.AddDays(tx.today(), -floorRetentionDays)
		_, err = q.Exec(`DELETE FROM floors WHERE date < ?`, cutoff)
		return err
	})
	if err != nil {
		return fmt.Errorf("save floor %s: %w", f.Date, err)
	}
	return nil
}

// RecentFloors returns floors dated within the last days days (today
// included), most recent first.
func (s *Store) RecentFloors(days int) ([]floor.DailyFloor, error) {
	cutoff := dates.AddDays(s.today(), -days)
	floors, err := s.queryFloors(`SELECT `+floorColumns+` FROM floors WHERE date >= ? ORDER BY date DESC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("recent floors: %w", err)
	}
	return floors, nil
}

// ListFloors returns every stored floor, oldest first.
func (s *Store) ListFloors() ([]floor.DailyFloor, error) {
	floors, err := s.queryFloors(`SELECT ` + floorColumns + ` FROM floors ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("list floors: %w", err)
	}
	return floors, nil
}

// DeleteFloor removes the floor for date. Deleting a missing floor is not an
// error.
func (s *Store) DeleteFloor(date string) error {
	if _, err := s.q().Exec(`DELETE FROM floors WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete floor %s: %w", date, err)
	}
	return nil
}

func (s *Store) queryFloors(query string, args ...any) ([]floor.DailyFloor, error) {
	rows, err := s.q().Query(query, args...)
	if err != nil {
		return nil, err
	}

	var floors []floor.DailyFloor
	for rows.Next() {
		var f floor.DailyFloor
		var completed int
		var completedAt sql.NullString
		var generatedAt string
		if err := rows.Scan(&f.ID, &f.Date, &completed, &completedAt, &f.EstimatedDuration, &generatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		f.Completed = completed != 0
		f.CompletedAt = timePtr(completedAt)
		f.GeneratedAt = parseTime(generatedAt)
		floors = append(floors, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The single connection must be released before loading exercises.
	rows.Close()

	for i := range floors {
		exs, err := s.floorExercises(floors[i].ID)
		if err != nil {
			return nil, err
		}
		floors[i].Exercises = exs
	}
	return floors, nil
}

func (s *Store) floorExercises(floorID string) ([]floor.FloorExercise, error) {
	rows, err := s.q().Query(
		`SELECT exercise_id, exercise_name, target_reps, target_time, is_bonus, completed, actual_reps, actual_time
		 FROM floor_exercises WHERE floor_id = ? ORDER BY position`, floorID,
	)
	if err != nil {
		return nil, fmt.Errorf("floor exercises: %w", err)
	}
	defer rows.Close()

	exs := []floor.FloorExercise{}
	for rows.Next() {
		var ex floor.FloorExercise
		var targetReps, targetTime, actualReps, actualTime sql.NullInt64
		var bonus, completed int
		if err := rows.Scan(&ex.ExerciseID, &ex.ExerciseName, &targetReps, &targetTime, &bonus, &completed, &actualReps, &actualTime); err != nil {
			return nil, err
		}
		ex.TargetReps = intPtr(targetReps)
		ex.TargetTime = intPtr(targetTime)
		ex.ActualReps = intPtr(actualReps)
		ex.ActualTime = intPtr(actualTime)
		ex.IsBonus = bonus != 0
		ex.Completed = completed != 0
		exs = append(exs, ex)
	}
	return exs, rows.Err()
}
