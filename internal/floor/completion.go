package floor

import "time"

// IsComplete reports whether every non-bonus exercise is completed.
func IsComplete(f DailyFloor) bool {
	for _, ex := range f.Exercises {
		if !ex.IsBonus && !ex.Completed {
			return false
		}
	}
	return true
}

// Progress returns completed and total counts of non-bonus exercises.
func Progress(f DailyFloor) (done, total int) {
	for _, ex := range f.Exercises {
		if ex.IsBonus {
			continue
		}
		total++
		if ex.Completed {
			done++
		}
	}
	return done, total
}

// SyncCompletion recomputes Completed from the exercises. CompletedAt is
// stamped with now only on the transition into completed, and cleared when
// the floor is no longer complete.
func SyncCompletion(f *DailyFloor, now time.Time) {
	complete := IsComplete(*f)
	switch {
	case !complete:
		f.CompletedAt = nil
	case !f.Completed || f.CompletedAt == nil:
		t := now
		f.CompletedAt = &t
	}
	f.Completed = complete
}

// Toggle flips the completed flag of exerciseID. Completing records actual
// when given; un-completing clears any recorded actuals. An unknown id
// returns the floor unchanged.
func Toggle(f DailyFloor, exerciseID string, actual *Actual, now time.Time) DailyFloor {
	i := indexOf(f, exerciseID)
	if i < 0 {
		return f
	}
	if f.Exercises[i].Completed {
		out := f.Clone()
		ex := &out.Exercises[i]
		ex.Completed = false
		ex.ActualReps = nil
		ex.ActualTime = nil
		SyncCompletion(&out, now)
		return out
	}
	return MarkExerciseComplete(f, exerciseID, actual, now)
}

// MarkExerciseComplete sets exerciseID completed, recording actual when
// given. An unknown id returns the floor unchanged.
func MarkExerciseComplete(f DailyFloor, exerciseID string, actual *Actual, now time.Time) DailyFloor {
	i := indexOf(f, exerciseID)
	if i < 0 {
		return f
	}
	out := f.Clone()
	ex := &out.Exercises[i]
	ex.Completed = true
	ex.ActualReps, ex.ActualTime = nil, nil
	if actual != nil {
		ex.ActualReps = copyInt(actual.Reps)
		ex.ActualTime = copyInt(actual.Time)
	}
	SyncCompletion(&out, now)
	return out
}

func indexOf(f DailyFloor, exerciseID string) int {
	for i, ex := range f.Exercises {
		if ex.ExerciseID == exerciseID {
			return i
		}
	}
	return -1
}
