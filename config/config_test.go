package config

import (
	"testing"
	"time"

	"github.com/warp/attendance-engine/engine"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}

	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if policy != engine.DefaultPolicy() {
		t.Errorf("default config should produce the default policy, got %+v", policy)
	}
}

func TestPolicy_Overrides(t *testing.T) {
	t.Setenv("CHECKIN_CUTOFF", "12:30")
	t.Setenv("PAID_LEAVE_QUOTA", "3")
	t.Setenv("SCAN_COOLDOWN", "5s")
	t.Setenv("PENALTY_MODE", "flat-day")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if policy.CheckInCutoff != 12*60+30 {
		t.Errorf("CheckInCutoff = %d, want 750", policy.CheckInCutoff)
	}
	if policy.PaidLeaveQuota != 3 {
		t.Errorf("PaidLeaveQuota = %d, want 3", policy.PaidLeaveQuota)
	}
	if policy.ScanCooldown != 5*time.Second {
		t.Errorf("ScanCooldown = %v, want 5s", policy.ScanCooldown)
	}
	if policy.PenaltyMode != engine.PenaltyFlatDay {
		t.Errorf("PenaltyMode = %s, want flat-day", policy.PenaltyMode)
	}
}

func TestPolicy_Invalid(t *testing.T) {
	t.Setenv("PENALTY_MODE", "double")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Policy(); err == nil {
		t.Error("expected error for unknown penalty mode")
	}

	t.Setenv("PENALTY_MODE", "proportional")
	t.Setenv("CHECKIN_CUTOFF", "noon")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := cfg.Policy(); err == nil {
		t.Error("expected error for unparseable cutoff")
	}
}
