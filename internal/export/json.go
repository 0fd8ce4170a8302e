package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/dailyfloor/internal/floor"
	"github.com/sadopc/dailyfloor/internal/streak"
)

type jsonExport struct {
	ExportedAt     string      `json:"exported_at"`
	Count          int         `json:"count"`
	CompletedCount int         `json:"completed_count"`
	Streak         jsonStreak  `json:"streak"`
	Floors         []jsonFloor `json:"floors"`
}

type jsonStreak struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
}

type jsonFloor struct {
	Date             string         `json:"date"`
	Completed        bool           `json:"completed"`
	CompletedAt      string         `json:"completed_at,omitempty"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Exercises        []jsonExercise `json:"exercises"`
}

type jsonExercise struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetReps *int   `json:"target_reps,omitempty"`
	TargetTime *int   `json:"target_seconds,omitempty"`
	ActualReps *int   `json:"actual_reps,omitempty"`
	ActualTime *int   `json:"actual_seconds,omitempty"`
	Bonus      bool   `json:"bonus"`
	Completed  bool   `json:"completed"`
}

// ToJSON writes floors and a streak summary as an indented document.
func ToJSON(floors []floor.DailyFloor, s streak.Data, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(floors),
		Streak: jsonStreak{
			Current:           s.Current,
			Longest:           s.Longest,
			LastCompletedDate: s.LastCompletedDate,
		},
		Floors: []jsonFloor{},
	}

	for _, f := range floors {
		jf := jsonFloor{
			Date:             f.Date,
			Completed:        f.Completed,
			EstimatedMinutes: f.EstimatedDuration,
			Exercises:        []jsonExercise{},
		}
		if f.CompletedAt != nil {
			jf.CompletedAt = f.CompletedAt.Local().Format(time.RFC3339)
		}
		if f.Completed {
			export.CompletedCount++
		}
		for _, ex := range f.Exercises {
			jf.Exercises = append(jf.Exercises, jsonExercise{
				ID:         ex.ExerciseID,
				Name:       ex.ExerciseName,
				TargetReps: ex.TargetReps,
				TargetTime: ex.TargetTime,
				ActualReps: ex.ActualReps,
				ActualTime: ex.ActualTime,
				Bonus:      ex.IsBonus,
				Completed:  ex.Completed,
			})
		}
		export.Floors = append(export.Floors, jf)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
