package subcommands

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/icns-extractor/internal/config"
	"github.com/leefowlercu/icns-extractor/internal/testutil"
)

func resetFlags() {
	showRaw = false
	showFormat = config.FormatYAML
	initForce = false
	resetConfirm = false
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	cmd.SilenceErrors = true

	err := cmd.Execute()
	return stdout.String(), err
}

func TestShowCmd_EffectiveYAML(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteConfig("export:\n  filter: bicubic\n")

	out, err := execute(t, ShowCmd, "")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "# Effective configuration") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "filter: bicubic") {
		t.Errorf("missing configured filter:\n%s", out)
	}
	if !strings.Contains(out, "min_interval_ms: 500") {
		t.Errorf("missing default watch interval:\n%s", out)
	}
	if !strings.Contains(out, env.ConfigPath()) {
		t.Errorf("missing config path:\n%s", out)
	}
}

func TestShowCmd_EffectiveTOML(t *testing.T) {
	testutil.NewTestEnv(t)

	out, err := execute(t, ShowCmd, "", "--format", "toml")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "[export]") || !strings.Contains(out, "[watch]") {
		t.Errorf("expected TOML tables:\n%s", out)
	}
	if !strings.Contains(out, "none (defaults)") {
		t.Errorf("expected defaults marker:\n%s", out)
	}
}

func TestShowCmd_InvalidFormat(t *testing.T) {
	testutil.NewTestEnv(t)

	if _, err := execute(t, ShowCmd, "", "--format", "json"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := execute(t, ShowCmd, "", "--raw", "--format", "toml"); err == nil {
		t.Error("expected error combining --raw with toml")
	}
}

func TestShowCmd_Raw(t *testing.T) {
	env := testutil.NewTestEnv(t)

	out, err := execute(t, ShowCmd, "", "--raw")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "No configuration file found") {
		t.Errorf("expected missing file notice:\n%s", out)
	}

	env.WriteConfig("log_level: debug # verbose\n")
	out, err = execute(t, ShowCmd, "", "--raw")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "log_level: debug # verbose") {
		t.Errorf("raw output should preserve file contents:\n%s", out)
	}
}

func TestValidateCmd(t *testing.T) {
	env := testutil.NewTestEnv(t)

	out, err := execute(t, ValidateCmd, "")
	if err != nil {
		t.Fatalf("validate without file failed: %v", err)
	}
	if !strings.Contains(out, "Using default configuration values") {
		t.Errorf("unexpected output:\n%s", out)
	}

	env.WriteConfig("log_level: warn\n")
	out, err = execute(t, ValidateCmd, "")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestValidateCmd_Invalid(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.ConfigPath()
	if err := os.WriteFile(path, []byte("export:\n  filter: blurry\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, ValidateCmd, "")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(out, "export.filter") {
		t.Errorf("expected failing field in output:\n%s", out)
	}
}

func TestInitCmd_WritesDefaults(t *testing.T) {
	env := testutil.NewTestEnv(t)

	out, err := execute(t, InitCmd, "")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, env.ConfigPath()) {
		t.Errorf("unexpected output:\n%s", out)
	}

	cfg, err := config.LoadFromPath(env.ConfigPath())
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	defaults := config.NewDefaultConfig()
	if cfg.LogLevel != defaults.LogLevel || cfg.Export.Filter != defaults.Export.Filter ||
		cfg.Export.Compression != defaults.Export.Compression || cfg.Watch != defaults.Watch {
		t.Errorf("written config = %+v, want defaults", *cfg)
	}
}

func TestInitCmd_RefusesOverwriteWithoutForce(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteConfig("log_level: error\n")

	if _, err := execute(t, InitCmd, ""); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("error = %v, want overwrite refusal", err)
	}

	if _, err := execute(t, InitCmd, "", "--force"); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	data, _ := os.ReadFile(env.ConfigPath())
	if !strings.Contains(string(data), "log_level: info") {
		t.Errorf("expected defaults after --force:\n%s", data)
	}
}

func TestResetCmd(t *testing.T) {
	env := testutil.NewTestEnv(t)

	out, err := execute(t, ResetCmd, "")
	if err != nil || !strings.Contains(out, "No configuration file found") {
		t.Fatalf("reset without file: out=%q err=%v", out, err)
	}

	env.WriteConfig("log_level: warn\n")
	out, err = execute(t, ResetCmd, "n\n")
	if err != nil || !strings.Contains(out, "Reset cancelled.") {
		t.Fatalf("reset declined: out=%q err=%v", out, err)
	}
	if !config.ConfigExistsAt(env.ConfigPath()) {
		t.Fatal("config removed despite declining")
	}

	out, err = execute(t, ResetCmd, "y\n")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if config.ConfigExistsAt(env.ConfigPath()) {
		t.Error("config file should be removed")
	}
	backups, _ := filepath.Glob(env.ConfigPath() + ".backup.*")
	if len(backups) != 1 {
		t.Errorf("expected one backup, got %v", backups)
	}
	if !strings.Contains(out, "Configuration reset to defaults.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestEditCmd_CreatesAndValidates(t *testing.T) {
	editor, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not available")
	}
	env := testutil.NewTestEnv(t)
	t.Setenv("EDITOR", editor)

	out, err := execute(t, EditCmd, "")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !config.ConfigExistsAt(env.ConfigPath()) {
		t.Error("edit should create the config file")
	}
	if !strings.Contains(out, "Configuration saved") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFindEditor_PrefersEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")
	t.Setenv("VISUAL", "other")
	if got := findEditor(); got != "my-editor" {
		t.Errorf("findEditor() = %q, want my-editor", got)
	}

	t.Setenv("EDITOR", "")
	if got := findEditor(); got != "other" {
		t.Errorf("findEditor() = %q, want other", got)
	}
}
