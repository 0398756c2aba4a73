package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/barcut/internal/model"
)

// settingsFlags are the optimiser flags shared by optimize, compare and
// estimate.
type settingsFlags struct {
	masterLength float64
	exact        bool
	exactTimeout time.Duration
	exactMax     int
	workers      int
	minOffcut    float64
}

func (f *settingsFlags) bind(cmd *cobra.Command) {
	defaults := model.DefaultSettings()
	cmd.Flags().Float64VarP(&f.masterLength, "master-length", "L", defaults.MasterLength, "Stock bar length for materials without a catalog entry")
	cmd.Flags().BoolVar(&f.exact, "exact", defaults.ExactEnabled, "Try the exact search after the heuristic")
	cmd.Flags().DurationVar(&f.exactTimeout, "exact-timeout", defaults.ExactTimeLimit, "Time budget for the exact search, per material")
	cmd.Flags().IntVar(&f.exactMax, "exact-max-items", defaults.ExactMaxItems, "Skip the exact search for materials with more pieces than this")
	cmd.Flags().IntVarP(&f.workers, "workers", "j", defaults.Workers, "Materials optimised in parallel")
	cmd.Flags().Float64Var(&f.minOffcut, "min-offcut", defaults.MinReusableOffcut, "Shortest offcut reported as reusable stock")
}

// resolve layers the settings sources, lowest priority first: built-in
// defaults, the app config, the stock catalog, BARCUT_* variables, then
// flags given on the command line.
func (f *settingsFlags) resolve(cmd *cobra.Command, opts *Options) (model.Settings, error) {
	s := model.DefaultSettings()
	opts.App.ApplyToSettings(&s)
	opts.Catalog.ApplyToSettings(&s)
	opts.Env.Apply(&s)

	flags := cmd.Flags()
	if flags.Changed("master-length") {
		s.MasterLength = f.masterLength
	}
	if flags.Changed("exact") {
		s.ExactEnabled = f.exact
	}
	if flags.Changed("exact-timeout") {
		s.ExactTimeLimit = f.exactTimeout
	}
	if flags.Changed("exact-max-items") {
		s.ExactMaxItems = f.exactMax
	}
	if flags.Changed("workers") {
		s.Workers = f.workers
	}
	if flags.Changed("min-offcut") {
		s.MinReusableOffcut = f.minOffcut
	}

	switch {
	case s.MasterLength <= 0:
		return s, fmt.Errorf("master length must be positive, got %v", s.MasterLength)
	case s.ExactTimeLimit <= 0:
		return s, fmt.Errorf("exact timeout must be positive, got %s", s.ExactTimeLimit)
	case s.Workers < 1:
		return s, fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	return s, nil
}
