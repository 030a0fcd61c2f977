package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"skillmcp/internal/config"
	"skillmcp/internal/logging"
)

// setTestConfigHome points the config machinery at a temp directory so
// tests never touch the user's real config.
func setTestConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	return dir
}

func writeConfigFile(t *testing.T, configHome, content string) string {
	t.Helper()
	cfgDir := filepath.Join(configHome, config.AppName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	path := filepath.Join(cfgDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFileUsesFlag(t *testing.T) {
	setTestConfigHome(t)
	skillsDir := t.TempDir()

	logger, _ := logging.NewTestLogger()
	cfg, err := loadConfig(skillsDir, logger)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.SkillsDir != skillsDir {
		t.Errorf("SkillsDir = %q, want flag value %q", cfg.SkillsDir, skillsDir)
	}
	if cfg.ServerName == "" {
		t.Error("ServerName should fall back to the default")
	}
}

func TestLoadConfigMissingFileWithoutFlagFails(t *testing.T) {
	setTestConfigHome(t)

	logger, _ := logging.NewTestLogger()
	_, err := loadConfig("", logger)
	if err == nil || !strings.Contains(err.Error(), "no configuration found") {
		t.Fatalf("expected missing-config error, got %v", err)
	}
}

func TestLoadConfigCorruptFileNotMaskedByFlag(t *testing.T) {
	configHome := setTestConfigHome(t)
	writeConfigFile(t, configHome, "skills_dir: [unterminated\n")

	logger, _ := logging.NewTestLogger()
	_, err := loadConfig(t.TempDir(), logger)
	if err == nil {
		t.Fatal("expected error for a corrupt config even with --skills-dir")
	}
	if strings.Contains(err.Error(), "no configuration found") {
		t.Errorf("corrupt config misreported as missing: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("parse failure not surfaced: %v", err)
	}
}

func TestLoadConfigFlagOverridesConfiguredDir(t *testing.T) {
	configHome := setTestConfigHome(t)
	writeConfigFile(t, configHome, "skills_dir: /srv/skills\nserver_name: custom\n")

	override := t.TempDir()
	logger, _ := logging.NewTestLogger()
	cfg, err := loadConfig(override, logger)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.SkillsDir != override {
		t.Errorf("SkillsDir = %q, want override %q", cfg.SkillsDir, override)
	}
	if cfg.ServerName != "custom" {
		t.Errorf("ServerName = %q, want value from config file", cfg.ServerName)
	}
}
