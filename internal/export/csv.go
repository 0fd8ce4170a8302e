package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/dailyfloor/internal/floor"
)

// ToCSV writes one row per exercise of every floor.
func ToCSV(floors []floor.DailyFloor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Exercise", "Exercise ID", "Target", "Actual", "Bonus", "Completed", "Floor Completed"}); err != nil {
		return err
	}

	for _, fl := range floors {
		for _, ex := range fl.Exercises {
			row := []string{
				fl.Date,
				ex.ExerciseName,
				ex.ExerciseID,
				formatAmount(ex.TargetReps, ex.TargetTime),
				formatAmount(ex.ActualReps, ex.ActualTime),
				strconv.FormatBool(ex.IsBonus),
				strconv.FormatBool(ex.Completed),
				strconv.FormatBool(fl.Completed),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// formatAmount renders "12 reps" or "30s"; empty when neither is set.
func formatAmount(reps, secs *int) string {
	switch {
	case reps != nil:
		return fmt.Sprintf("%d reps", *reps)
	case secs != nil:
		return fmt.Sprintf("%ds", *secs)
	}
	return ""
}
