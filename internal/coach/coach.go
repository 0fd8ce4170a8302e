// Package coach runs each user action as one load, compute, persist cycle
// against the store.
package coach

import (
	"errors"
	"fmt"
	"io"

	"github.com/sadopc/dailyfloor/internal/adjust"
	"github.com/sadopc/dailyfloor/internal/catalog"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/floor"
	"github.com/sadopc/dailyfloor/internal/store"
	"github.com/sadopc/dailyfloor/internal/streak"
	"github.com/sirupsen/logrus"
)

// ErrFloorStarted is returned by Regenerate once any exercise of today's
// floor has been completed.
var ErrFloorStarted = errors.New("floor already started")

const (
	defaultFloorDays    = 7
	defaultFeedbackDays = 7
)

// Options configures a Coach. Zero values fall back to sensible defaults.
type Options struct {
	Catalog *catalog.Catalog
	Rand    floor.RandSource
	Clock   dates.Clock
	Logger  logrus.FieldLogger

	// Trailing windows, in days, fed to generation and adjustment.
	FloorDays    int
	FeedbackDays int
	// IncludeBonus is used until the user sets a preference.
	IncludeBonus bool
}

type Coach struct {
	store     *store.Store
	catalog   *catalog.Catalog
	generator *floor.Generator
	adjuster  *adjust.Adjuster
	tracker   streak.Tracker
	now       dates.Clock
	logger    logrus.FieldLogger
	opts      Options
}

func New(s *store.Store, opts Options) *Coach {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = dates.SystemClock(nil)
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		opts.Logger = l
	}
	if opts.FloorDays <= 0 {
		opts.FloorDays = defaultFloorDays
	}
	if opts.FeedbackDays <= 0 {
		opts.FeedbackDays = defaultFeedbackDays
	}
	return &Coach{
		store:     s,
		catalog:   opts.Catalog,
		generator: floor.NewGenerator(opts.Catalog, opts.Rand, opts.Clock, opts.Logger),
		adjuster:  adjust.New(opts.Catalog, opts.Clock),
		tracker:   streak.Tracker{Now: opts.Clock},
		now:       opts.Clock,
		logger:    opts.Logger,
		opts:      opts,
	}
}

func (c *Coach) Catalog() *catalog.Catalog { return c.catalog }

func (c *Coach) Tracker() streak.Tracker { return c.tracker }

func (c *Coach) today() string { return dates.Today(c.now) }

// run executes fn in one store transaction and logs failures.
func (c *Coach) run(action string, fn func(tx *store.Store) error) error {
	c.logger.WithField("action", action).Debug("coach action")
	if err := c.store.WithTx(fn); err != nil {
		c.logger.WithError(err).WithField("action", action).Error("coach action failed")
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// Today returns today's floor, generating and saving one on first request.
func (c *Coach) Today() (floor.DailyFloor, error) {
	var out floor.DailyFloor
	err := c.run("today", func(tx *store.Store) error {
		f, err := c.ensureToday(tx)
		out = f
		return err
	})
	return out, err
}

// ToggleResult reports the floor after a toggle and the streak, which only
// changes when the floor has just become complete.
type ToggleResult struct {
	Floor         floor.DailyFloor
	Streak        streak.Data
	JustCompleted bool
}

// Toggle flips an exercise of today's floor. An unknown id leaves the floor
// as it was.
func (c *Coach) Toggle(exerciseID string, actual *floor.Actual) (ToggleResult, error) {
	var res ToggleResult
	err := c.run("toggle", func(tx *store.Store) error {
		before, err := c.ensureToday(tx)
		if err != nil {
			return err
		}
		after := floor.Toggle(before, exerciseID, actual, c.now())
		if err := tx.SaveFloor(after); err != nil {
			return err
		}

		data, err := tx.GetStreak()
		if err != nil {
			return err
		}
		if !before.Completed && after.Completed {
			data = c.tracker.MarkFloorComplete(after, data)
			if err := tx.SaveStreak(data); err != nil {
				return err
			}
			res.JustCompleted = true
			c.logger.WithFields(logrus.Fields{"date": after.Date, "current": data.Current}).Info("floor completed")
		}
		res.Floor, res.Streak = after, data
		return nil
	})
	return res, err
}

// Feedback stores fb for today, replacing an earlier report, and adjusts
// today's floor. The earlier report for today is not part of the trend.
func (c *Coach) Feedback(fb floor.Feedback) (adjust.Result, error) {
	var res adjust.Result
	err := c.run("feedback", func(tx *store.Store) error {
		fb.Date = c.today()
		recent, err := tx.RecentFeedback(c.opts.FeedbackDays)
		if err != nil {
			return err
		}
		prior := recent[:0:0]
		for _, r := range recent {
			if r.Date != fb.Date {
				prior = append(prior, r)
			}
		}
		if _, err := tx.SaveFeedback(fb); err != nil {
			return err
		}

		f, err := c.ensureToday(tx)
		if err != nil {
			return err
		}
		profile, err := c.ensureProfile(tx)
		if err != nil {
			return err
		}
		res = c.adjuster.Adjust(f, fb, prior, &profile)
		c.logger.WithFields(logrus.Fields{
			"difficulty": fb.Difficulty,
			"soreness":   fb.Soreness,
			"energy":     fb.Energy,
			"changes":    len(res.Changes),
		}).Debug("floor adjusted")
		return tx.SaveFloor(res.Floor)
	})
	return res, err
}

// QuickAdjust rescales today's floor by 15% easier or harder.
func (c *Coach) QuickAdjust(direction floor.Difficulty) (adjust.Result, error) {
	var res adjust.Result
	err := c.run("quick adjust", func(tx *store.Store) error {
		f, err := c.ensureToday(tx)
		if err != nil {
			return err
		}
		res = c.adjuster.QuickAdjust(f, direction)
		return tx.SaveFloor(res.Floor)
	})
	return res, err
}

// Regenerate replaces today's floor with a fresh one. It refuses once any
// exercise has been completed.
func (c *Coach) Regenerate() (floor.DailyFloor, error) {
	var out floor.DailyFloor
	err := c.run("regenerate", func(tx *store.Store) error {
		current, err := c.ensureToday(tx)
		if err != nil {
			return err
		}
		for _, ex := range current.Exercises {
			if ex.Completed {
				return ErrFloorStarted
			}
		}
		if err := tx.DeleteFloor(current.Date); err != nil {
			return err
		}
		f, err := c.generate(tx)
		if err != nil {
			return err
		}
		if err := tx.SaveFloor(f); err != nil {
			return err
		}
		c.logger.WithFields(logrus.Fields{"old": current.ID, "new": f.ID}).Debug("floor regenerated")
		out = f
		return nil
	})
	return out, err
}

// TodayFeedback returns the feedback already given today, or nil.
func (c *Coach) TodayFeedback() (*floor.Feedback, error) {
	var out *floor.Feedback
	err := c.run("today feedback", func(tx *store.Store) error {
		fb, err := tx.GetFeedback(c.today())
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		out = fb
		return err
	})
	return out, err
}

// Streak returns the stored streak recomputed for today, saving it when a
// missed day has broken it.
func (c *Coach) Streak() (streak.Data, error) {
	var out streak.Data
	err := c.run("streak", func(tx *store.Store) error {
		data, err := tx.GetStreak()
		if err != nil {
			return err
		}
		out = c.tracker.Calculate(data)
		if out.Current != data.Current || out.Longest != data.Longest || out.LastCompletedDate != data.LastCompletedDate {
			return tx.SaveStreak(out)
		}
		return nil
	})
	return out, err
}

func (c *Coach) StreakDisplay() (streak.Display, error) {
	data, err := c.Streak()
	if err != nil {
		return streak.Display{}, err
	}
	return c.tracker.Display(data), nil
}

// Profile returns the user profile, creating the default one on first use.
func (c *Coach) Profile() (floor.UserProfile, error) {
	var out floor.UserProfile
	err := c.run("profile", func(tx *store.Store) error {
		p, err := c.ensureProfile(tx)
		out = p
		return err
	})
	return out, err
}

func (c *Coach) SaveProfile(p floor.UserProfile) (floor.UserProfile, error) {
	var out floor.UserProfile
	err := c.run("save profile", func(tx *store.Store) error {
		if p.Level < 1 || p.Level > 10 {
			return fmt.Errorf("level %d out of range 1-10", p.Level)
		}
		saved, err := tx.SaveProfile(&p)
		if err != nil {
			return err
		}
		out = *saved
		return nil
	})
	return out, err
}

// IncludeBonus reports whether new floors get a bonus exercise.
func (c *Coach) IncludeBonus() (bool, error) {
	return c.store.GetBoolSetting(store.KeyIncludeBonus, c.opts.IncludeBonus)
}

func (c *Coach) SetIncludeBonus(include bool) error {
	return c.run("set include bonus", func(tx *store.Store) error {
		return tx.SetSetting(store.KeyIncludeBonus, fmt.Sprint(include))
	})
}

// History returns every stored floor, oldest first.
func (c *Coach) History() ([]floor.DailyFloor, error) {
	floors, err := c.store.ListFloors()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return floors, nil
}

// Reset wipes all stored data.
func (c *Coach) Reset() error {
	return c.run("reset", func(tx *store.Store) error {
		return tx.Reset()
	})
}

func (c *Coach) ensureToday(tx *store.Store) (floor.DailyFloor, error) {
	f, err := tx.GetFloor(c.today())
	if err == nil {
		return *f, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return floor.DailyFloor{}, err
	}
	generated, err := c.generate(tx)
	if err != nil {
		return floor.DailyFloor{}, err
	}
	if err := tx.SaveFloor(generated); err != nil {
		return floor.DailyFloor{}, err
	}
	c.logger.WithFields(logrus.Fields{"date": generated.Date, "exercises": len(generated.Exercises)}).Info("generated floor")
	return generated, nil
}

func (c *Coach) generate(tx *store.Store) (floor.DailyFloor, error) {
	profile, err := c.ensureProfile(tx)
	if err != nil {
		return floor.DailyFloor{}, err
	}
	floors, err := tx.RecentFloors(c.opts.FloorDays)
	if err != nil {
		return floor.DailyFloor{}, err
	}
	feedback, err := tx.RecentFeedback(c.opts.FeedbackDays)
	if err != nil {
		return floor.DailyFloor{}, err
	}
	include, err := tx.GetBoolSetting(store.KeyIncludeBonus, c.opts.IncludeBonus)
	if err != nil {
		return floor.DailyFloor{}, err
	}
	return c.generator.Generate(&profile, floors, feedback, floor.Options{
		Date:         c.today(),
		ExcludeBonus: !include,
	})
}

func (c *Coach) ensureProfile(tx *store.Store) (floor.UserProfile, error) {
	p, err := tx.GetProfile()
	if err == nil {
		return *p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return floor.UserProfile{}, err
	}
	def := floor.DefaultProfile()
	saved, err := tx.SaveProfile(&def)
	if err != nil {
		return floor.UserProfile{}, err
	}
	c.logger.Info("created default profile")
	return *saved, nil
}
