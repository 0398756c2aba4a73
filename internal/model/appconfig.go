package model

import "time"

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default optimiser settings applied to new runs
	DefaultMasterLength      float64 `json:"default_master_length"`
	DefaultExactEnabled      bool    `json:"default_exact_enabled"`
	DefaultExactTimeout      float64 `json:"default_exact_timeout"` // seconds
	DefaultExactMaxItems     int     `json:"default_exact_max_items"`
	DefaultWorkers           int     `json:"default_workers"`
	DefaultMinReusableOffcut float64 `json:"default_min_reusable_offcut"`

	// Application preferences
	Units      string   `json:"units"`      // Display unit label, e.g. "in" or "mm"
	OutputDir  string   `json:"output_dir"` // Where reports are written when no path is given
	RecentJobs []string `json:"recent_jobs"`
	LogLevel   string   `json:"log_level"` // "debug", "info", "warn", "error"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMasterLength:      defaults.MasterLength,
		DefaultExactEnabled:      defaults.ExactEnabled,
		DefaultExactTimeout:      defaults.ExactTimeLimit.Seconds(),
		DefaultExactMaxItems:     defaults.ExactMaxItems,
		DefaultWorkers:           defaults.Workers,
		DefaultMinReusableOffcut: defaults.MinReusableOffcut,
		Units:                    "in",
		OutputDir:                ".",
		RecentJobs:               []string{},
		LogLevel:                 "info",
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Zero values are left alone so a partially written config file never wipes
// out a default.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultMasterLength > 0 {
		s.MasterLength = c.DefaultMasterLength
	}
	s.ExactEnabled = c.DefaultExactEnabled
	if c.DefaultExactTimeout > 0 {
		s.ExactTimeLimit = time.Duration(c.DefaultExactTimeout * float64(time.Second))
	}
	if c.DefaultExactMaxItems > 0 {
		s.ExactMaxItems = c.DefaultExactMaxItems
	}
	if c.DefaultWorkers > 0 {
		s.Workers = c.DefaultWorkers
	}
	if c.DefaultMinReusableOffcut > 0 {
		s.MinReusableOffcut = c.DefaultMinReusableOffcut
	}
}

// AddRecentJob records a job path at the front of the recent list, keeping
// at most ten entries and no duplicates.
func (c *AppConfig) AddRecentJob(path string) {
	jobs := []string{path}
	for _, j := range c.RecentJobs {
		if j != path {
			jobs = append(jobs, j)
		}
	}
	if len(jobs) > 10 {
		jobs = jobs[:10]
	}
	c.RecentJobs = jobs
}
