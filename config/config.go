/*
Package config loads server configuration from the environment.

Every payroll policy tunable is configuration, never a hard-coded
constant: the quota, the check-in cutoff, the half-day thresholds, and
the penalty mode all arrive here and are handed to the engine as a
plain engine.Policy value.

ENVIRONMENT VARIABLES:
  PORT              HTTP server port             (default 8080)
  DB_PATH           SQLite database path         (default ./data/attendance.db)
  LOG_LEVEL         logrus level                 (default info)
  PAID_LEAVE_QUOTA  Paid leave days per month    (default 2)
  CHECKIN_CUTOFF    Latest first check-in, HH:MM (default 14:00)
  LATE_MORNING      Half-day check-in threshold  (default 10:00)
  EARLY_AFTERNOON   Half-day check-out threshold (default 17:00)
  SCAN_COOLDOWN     Duplicate-scan window        (default 3s)
  PENALTY_MODE      proportional | flat-day      (default proportional)
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warp/attendance-engine/engine"
)

type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/attendance.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	PaidLeaveQuota int           `env:"PAID_LEAVE_QUOTA" envDefault:"2"`
	CheckInCutoff  string        `env:"CHECKIN_CUTOFF" envDefault:"14:00"`
	LateMorning    string        `env:"LATE_MORNING" envDefault:"10:00"`
	EarlyAfternoon string        `env:"EARLY_AFTERNOON" envDefault:"17:00"`
	ScanCooldown   time.Duration `env:"SCAN_COOLDOWN" envDefault:"3s"`
	PenaltyMode    string        `env:"PENALTY_MODE" envDefault:"proportional"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Policy converts the raw configuration into the engine's policy value.
func (c Config) Policy() (engine.Policy, error) {
	cutoff, err := engine.ParseClock(c.CheckInCutoff)
	if err != nil {
		return engine.Policy{}, fmt.Errorf("CHECKIN_CUTOFF: %w", err)
	}
	lateMorning, err := engine.ParseClock(c.LateMorning)
	if err != nil {
		return engine.Policy{}, fmt.Errorf("LATE_MORNING: %w", err)
	}
	earlyAfternoon, err := engine.ParseClock(c.EarlyAfternoon)
	if err != nil {
		return engine.Policy{}, fmt.Errorf("EARLY_AFTERNOON: %w", err)
	}

	mode := engine.PenaltyMode(c.PenaltyMode)
	if mode != engine.PenaltyProportional && mode != engine.PenaltyFlatDay {
		return engine.Policy{}, fmt.Errorf("PENALTY_MODE: unknown mode %q", c.PenaltyMode)
	}
	if c.PaidLeaveQuota < 0 {
		return engine.Policy{}, fmt.Errorf("PAID_LEAVE_QUOTA: must be non-negative, got %d", c.PaidLeaveQuota)
	}

	return engine.Policy{
		PaidLeaveQuota: c.PaidLeaveQuota,
		CheckInCutoff:  cutoff,
		LateMorning:    lateMorning,
		EarlyAfternoon: earlyAfternoon,
		ScanCooldown:   c.ScanCooldown,
		PenaltyMode:    mode,
	}, nil
}
