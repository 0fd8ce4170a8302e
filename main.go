package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/dailyfloor/internal/coach"
	"github.com/sadopc/dailyfloor/internal/config"
	"github.com/sadopc/dailyfloor/internal/dates"
	"github.com/sadopc/dailyfloor/internal/logging"
	"github.com/sadopc/dailyfloor/internal/store"
	"github.com/sadopc/dailyfloor/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("dailyfloor", pflag.ExitOnError)
	config.RegisterFlags(fs)
	printOnly := fs.Bool("print", false, "print today's floor and exit instead of starting the UI")
	_ = fs.Parse(os.Args[1:])

	if err := run(fs, *printOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(fs *pflag.FlagSet, printOnly bool) error {
	cfg, err := config.Load(fs)
	if err != nil {
		return err
	}

	// The UI owns the terminal, so stdout logging only applies to --print.
	logger := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout && printOnly,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := dates.SystemClock(loc)

	s, err := store.NewWithClock(cfg.Database.Path, clock)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	c := coach.New(s, coach.Options{
		Clock:        clock,
		Logger:       logger,
		FloorDays:    cfg.History.FloorDays,
		FeedbackDays: cfg.History.FeedbackDays,
		IncludeBonus: cfg.Generation.IncludeBonus,
	})
	logger.WithFields(logrus.Fields{
		"db":       cfg.Database.Path,
		"timezone": loc.String(),
		"print":    printOnly,
	}).Info("dailyfloor starting")

	if printOnly {
		return printToday(c, os.Stdout)
	}

	p := tea.NewProgram(tui.NewApp(c, s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func printToday(c *coach.Coach, w io.Writer) error {
	f, err := c.Today()
	if err != nil {
		return err
	}
	d, err := c.StreakDisplay()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Daily floor for %s (~%d min)\n", f.Date, f.EstimatedDuration)
	for _, ex := range f.Exercises {
		mark := " "
		if ex.Completed {
			mark = "x"
		}
		target := ""
		switch {
		case ex.TargetReps != nil:
			target = fmt.Sprintf("%d reps", *ex.TargetReps)
		case ex.TargetTime != nil:
			target = fmt.Sprintf("%ds", *ex.TargetTime)
		}
		bonus := ""
		if ex.IsBonus {
			bonus = " (bonus)"
		}
		fmt.Fprintf(w, "  [%s] %-26s %s%s\n", mark, ex.ExerciseName, target, bonus)
	}
	fmt.Fprintf(w, "Streak: %d (longest %d)\n", d.Current, d.Longest)
	return nil
}
