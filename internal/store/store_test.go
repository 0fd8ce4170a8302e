package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/floor"
	"github.com/sadopc/dailyfloor/internal/streak"
)

var testNow = time.Date(2024, 6, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemoryWithClock(func() time.Time { return testNow })
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testFloor(id, date string) floor.DailyFloor {
	return floor.DailyFloor{
		ID:   id,
		Date: date,
		Exercises: []floor.FloorExercise{
			{ExerciseID: "push-ups-standard", ExerciseName: "Push-Ups", TargetReps: floor.IntPtr(10)},
			{ExerciseID: "plank", ExerciseName: "Plank", TargetTime: floor.IntPtr(30)},
			{ExerciseID: "cat-cow", ExerciseName: "Cat-Cow", TargetReps: floor.IntPtr(9), IsBonus: true},
		},
		EstimatedDuration: 3,
		GeneratedAt:       testNow,
	}
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/dailyfloor.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveFloor(testFloor("f1", dates.Today(s.now))); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migrations do not rerun.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if _, err := s2.GetFloor(dates.Today(s2.now)); err != nil {
		t.Fatalf("floor lost after reopen: %v", err)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Profile
// ============================================================

func TestGetProfileNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetProfile()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	s := newTestStore(t)
	in := &floor.UserProfile{
		Level:          7,
		TimePreference: 8,
		Equipment:      floor.EquipmentMinimal,
		Constraints:    []catalog.Constraint{catalog.Wrist, catalog.LowerBack},
	}
	saved, err := s.SaveProfile(in)
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated ID")
	}
	if in.ID != "" {
		t.Fatal("SaveProfile should not mutate its argument")
	}
	if saved.Level != 7 || saved.TimePreference != 8 || saved.Equipment != floor.EquipmentMinimal {
		t.Fatalf("unexpected profile: %+v", saved)
	}
	if !reflect.DeepEqual(saved.Constraints, in.Constraints) {
		t.Fatalf("constraints = %v, want %v", saved.Constraints, in.Constraints)
	}
	if !saved.CreatedAt.Equal(testNow) || !saved.UpdatedAt.Equal(testNow) {
		t.Fatalf("timestamps not set: %v %v", saved.CreatedAt, saved.UpdatedAt)
	}
}

func TestSaveProfileKeepsCreatedAt(t *testing.T) {
	now := testNow
	s, err := NewMemoryWithClock(func() time.Time { return now })
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	first, err := s.SaveProfile(&floor.UserProfile{Level: 3})
	if err != nil {
		t.Fatal(err)
	}

	now = testNow.Add(time.Hour)
	update := *first
	update.Level = 4
	update.Constraints = nil
	second, err := s.SaveProfile(&update)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Fatalf("ID changed: %s -> %s", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(testNow) {
		t.Fatalf("CreatedAt changed: %v", second.CreatedAt)
	}
	if !second.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", second.UpdatedAt, now)
	}
	if second.Level != 4 || len(second.Constraints) != 0 {
		t.Fatalf("update not applied: %+v", second)
	}
}

// ============================================================
// Floors
// ============================================================

func TestSaveAndGetFloor(t *testing.T) {
	s := newTestStore(t)
	f := testFloor("f1", "2024-06-14")
	f = floor.Toggle(f, "push-ups-standard", &floor.Actual{Reps: floor.IntPtr(12)}, testNow)
	f = floor.Toggle(f, "plank", nil, testNow.Add(time.Minute))

	if err := s.SaveFloor(f); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetFloor("2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*got, f) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, f)
	}
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(testNow.Add(time.Minute)) {
		t.Fatalf("completion not persisted: %+v", got)
	}
	if *got.Exercises[0].ActualReps != 12 {
		t.Fatalf("actual reps not persisted: %+v", got.Exercises[0])
	}
}

func TestGetFloorNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetFloor("2024-06-14")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveFloorReplacesSameDate(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveFloor(testFloor("old", "2024-06-14")); err != nil {
		t.Fatal(err)
	}
	replacement := testFloor("new", "2024-06-14")
	replacement.Exercises = replacement.Exercises[:2]
	if err := s.SaveFloor(replacement); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetFloor("2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "new" || len(got.Exercises) != 2 {
		t.Fatalf("floor not replaced: %+v", got)
	}

	var orphans int
	s.db.QueryRow(`SELECT COUNT(*) FROM floor_exercises WHERE floor_id = 'old'`).Scan(&orphans)
	if orphans != 0 {
		t.Fatalf("expected cascade delete, %d exercises left", orphans)
	}
}

func TestSaveFloorPrunesOld(t *testing.T) {
	s := newTestStore(t)
	for _, date := range []string{"2024-03-15", "2024-03-16", "2024-06-13"} {
		if err := s.SaveFloor(testFloor("f-"+date, date)); err != nil {
			t.Fatal(err)
		}
	}
	floors, err := s.ListFloors()
	if err != nil {
		t.Fatal(err)
	}
	if len(floors) != 2 {
		t.Fatalf("expected 2 floors after pruning, got %d", len(floors))
	}
	if floors[0].Date != "2024-03-16" || floors[1].Date != "2024-06-13" {
		t.Fatalf("unexpected order: %s, %s", floors[0].Date, floors[1].Date)
	}
}

func TestRecentFloors(t *testing.T) {
	s := newTestStore(t)
	for _, date := range []string{"2024-06-01", "2024-06-07", "2024-06-10", "2024-06-14"} {
		if err := s.SaveFloor(testFloor("f-"+date, date)); err != nil {
			t.Fatal(err)
		}
	}
	floors, err := s.RecentFloors(7)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range floors {
		got = append(got, f.Date)
	}
	want := []string{"2024-06-14", "2024-06-10", "2024-06-07"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RecentFloors = %v, want %v", got, want)
	}
	if len(floors[0].Exercises) != 3 {
		t.Fatal("exercises not loaded")
	}
}

func TestDeleteFloor(t *testing.T) {
	s := newTestStore(t)
	s.SaveFloor(testFloor("f1", "2024-06-14"))
	if err := s.DeleteFloor("2024-06-14"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetFloor("2024-06-14"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteFloor("2024-06-14"); err != nil {
		t.Fatalf("deleting a missing floor: %v", err)
	}
}

// ============================================================
// Feedback
// ============================================================

func TestSaveFeedbackOnePerDate(t *testing.T) {
	s := newTestStore(t)
	first, err := s.SaveFeedback(floor.Feedback{Date: "2024-06-14", Difficulty: floor.Harder})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == "" || !first.CreatedAt.Equal(testNow) {
		t.Fatalf("defaults not filled: %+v", first)
	}
	_, err = s.SaveFeedback(floor.Feedback{Date: "2024-06-14", Difficulty: floor.Easier, Energy: floor.EnergyHigh})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetFeedback("2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if got.Difficulty != floor.Easier || got.Energy != floor.EnergyHigh {
		t.Fatalf("latest feedback should win: %+v", got)
	}
	all, _ := s.RecentFeedback(30)
	if len(all) != 1 {
		t.Fatalf("expected 1 feedback row, got %d", len(all))
	}
}

func TestSaveFeedbackDefaultsDate(t *testing.T) {
	s := newTestStore(t)
	fb, err := s.SaveFeedback(floor.Feedback{Difficulty: floor.Same})
	if err != nil {
		t.Fatal(err)
	}
	if fb.Date != "2024-06-14" {
		t.Fatalf("expected today's date, got %q", fb.Date)
	}
}

func TestRecentFeedbackOrderAndPrune(t *testing.T) {
	s := newTestStore(t)
	inputs := []floor.Feedback{
		{Date: "2024-05-14", Difficulty: floor.Harder},
		{Date: "2024-05-15", Difficulty: floor.Harder},
		{Date: "2024-06-12", Difficulty: floor.Same, Soreness: floor.Sore},
		{Date: "2024-06-13", Difficulty: floor.Harder, TimeAvailable: 2},
	}
	for _, fb := range inputs {
		if _, err := s.SaveFeedback(fb); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := s.GetFeedback("2024-05-14"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("feedback older than 30 days should be pruned, got %v", err)
	}
	if _, err := s.GetFeedback("2024-05-15"); err != nil {
		t.Fatalf("feedback at the cutoff should be kept: %v", err)
	}

	recent, err := s.RecentFeedback(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent feedback rows, got %d", len(recent))
	}
	if recent[0].Date != "2024-06-13" || recent[0].TimeAvailable != 2 {
		t.Fatalf("most recent first: %+v", recent[0])
	}
	if recent[1].Soreness != floor.Sore {
		t.Fatalf("soreness not persisted: %+v", recent[1])
	}
}

// ============================================================
// Streak
// ============================================================

func TestGetStreakDefault(t *testing.T) {
	s := newTestStore(t)
	d, err := s.GetStreak()
	if err != nil {
		t.Fatal(err)
	}
	if d.Current != 0 || d.Longest != 0 || d.LastCompletedDate != "" {
		t.Fatalf("expected zero streak, got %+v", d)
	}
	if d.CompletionCalendar == nil {
		t.Fatal("calendar should never be nil")
	}
}

func TestSaveAndGetStreak(t *testing.T) {
	s := newTestStore(t)
	in := streak.Data{
		Current:           2,
		Longest:           9,
		GraceDaysUsed:     1,
		LastCompletedDate: "2024-06-14",
		CompletionCalendar: map[string]bool{
			"2024-06-13": true,
			"2024-06-14": true,
		},
	}
	if err := s.SaveStreak(in); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetStreak()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, in)
	}

	// Calendar is replaced, not merged.
	in.CompletionCalendar = map[string]bool{"2024-06-14": true, "2024-06-12": false}
	if err := s.SaveStreak(in); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetStreak()
	if len(got.CompletionCalendar) != 1 || !got.CompletionCalendar["2024-06-14"] {
		t.Fatalf("calendar not replaced: %v", got.CompletionCalendar)
	}
}

// ============================================================
// Settings
// ============================================================

func TestDefaultSettings(t *testing.T) {
	s := newTestStore(t)
	v, err := s.GetSetting(KeyCalendarDays)
	if err != nil {
		t.Fatal(err)
	}
	if v != "7" {
		t.Fatalf("calendar_days = %q, want 7", v)
	}
	n, err := s.GetIntSetting(KeyChartWeeks, 0)
	if err != nil || n != 8 {
		t.Fatalf("chart_weeks = %d, %v", n, err)
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting(KeyIncludeBonus, "false")
	s.SetSetting(KeyIncludeBonus, "true")
	v, _ := s.GetSetting(KeyIncludeBonus)
	if v != "true" {
		t.Fatalf("expected upsert to overwrite, got %q", v)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetBoolSettingFallback(t *testing.T) {
	s := newTestStore(t)
	b, err := s.GetBoolSetting(KeyIncludeBonus, true)
	if err != nil || !b {
		t.Fatalf("unset bool should use default: %v %v", b, err)
	}
	s.SetSetting(KeyIncludeBonus, "false")
	b, _ = s.GetBoolSetting(KeyIncludeBonus, true)
	if b {
		t.Fatal("expected stored false")
	}
	s.SetSetting(KeyIncludeBonus, "maybe")
	b, _ = s.GetBoolSetting(KeyIncludeBonus, true)
	if !b {
		t.Fatal("unparseable bool should use default")
	}
}

func TestGetAllSettings(t *testing.T) {
	s := newTestStore(t)
	settings, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 default settings, got %d", len(settings))
	}
	if settings[0].Key != KeyCalendarDays {
		t.Fatalf("settings should be sorted by key, first is %q", settings[0].Key)
	}
}

// ============================================================
// Transactions and reset
// ============================================================

func TestWithTxRollback(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")
	err := s.WithTx(func(tx *Store) error {
		if err := tx.SaveFloor(testFloor("f1", "2024-06-14")); err != nil {
			return err
		}
		if err := tx.SetSetting(KeyIncludeBonus, "false"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := s.GetFloor("2024-06-14"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("floor should be rolled back, got %v", err)
	}
	if _, err := s.GetSetting(KeyIncludeBonus); !errors.Is(err, ErrNotFound) {
		t.Fatalf("setting should be rolled back, got %v", err)
	}
}

func TestWithTxCommit(t *testing.T) {
	s := newTestStore(t)
	err := s.WithTx(func(tx *Store) error {
		if err := tx.SaveFloor(testFloor("f1", "2024-06-14")); err != nil {
			return err
		}
		_, err := tx.GetFloor("2024-06-14")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetFloor("2024-06-14"); err != nil {
		t.Fatalf("committed floor missing: %v", err)
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	s.SaveProfile(&floor.UserProfile{Level: 5})
	s.SaveFloor(testFloor("f1", "2024-06-14"))
	s.SaveFeedback(floor.Feedback{Date: "2024-06-14", Difficulty: floor.Same})
	s.SaveStreak(streak.Data{Current: 1, Longest: 1, CompletionCalendar: map[string]bool{"2024-06-14": true}})
	s.SetSetting(KeyCalendarDays, "14")

	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetProfile(); !errors.Is(err, ErrNotFound) {
		t.Fatal("profile should be gone")
	}
	floors, _ := s.ListFloors()
	if len(floors) != 0 {
		t.Fatal("floors should be gone")
	}
	d, _ := s.GetStreak()
	if d.Longest != 0 || len(d.CompletionCalendar) != 0 {
		t.Fatalf("streak should be reset: %+v", d)
	}
	v, _ := s.GetSetting(KeyCalendarDays)
	if v != "7" {
		t.Fatalf("settings should be reseeded, got %q", v)
	}
}
