package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"graphgrade/internal/config"
)

func withInitInput(t *testing.T, input string) {
	t.Helper()
	orig := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = orig })
}

func TestInitCommandCreatesConfig(t *testing.T) {
	dir := t.TempDir()
	specPath := config.ConfigPath(dir)
	withInitInput(t, "y\nllava\n")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	if !strings.Contains(out.String(), "Wrote "+specPath) {
		t.Fatalf("expected output to include writes, got %q", out.String())
	}
	data, readErr := os.ReadFile(specPath)
	if readErr != nil {
		t.Fatalf("expected config file to exist: %v", readErr)
	}
	if !strings.Contains(string(data), "profile: llava") {
		t.Fatalf("expected llava profile, got %q", string(data))
	}
	if _, statErr := os.Stat(filepath.Join(dir, ".gitignore")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no .gitignore without a repo marker")
	}
}

func TestInitCommandProfileFlagAndGitignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	specPath := config.ConfigPath(dir)
	withInitInput(t, "\n\n")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath, "--profile", "chatgpt"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	data, readErr := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if readErr != nil {
		t.Fatalf("read .gitignore: %v", readErr)
	}
	if want := "# graphgrade runs\n" + config.DefaultOutputDir + "\n"; string(data) != want {
		t.Fatalf("unexpected .gitignore %q", string(data))
	}
	if strings.Contains(out.String(), "Phrasing profile") {
		t.Fatalf("expected no profile prompt, got %q", out.String())
	}
}

// TestInitCommandStoreAndProfilePrompt re-asks for an unknown profile and
// ignores the chosen DuckDB store alongside the run outputs.
func TestInitCommandStoreAndProfilePrompt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("bin/"), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}
	specPath := config.ConfigPath(dir)
	withInitInput(t, "y\nbard\nLLaVA\ny\ny\n")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Choose one of: chatgpt, llava.") {
		t.Fatalf("expected profile re-prompt, got %q", out.String())
	}
	data, readErr := os.ReadFile(specPath)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	for _, want := range []string{"profile: llava", `duckdb: "` + config.DefaultStorePath + `"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in config, got %q", want, string(data))
		}
	}
	ignore, readErr := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if readErr != nil {
		t.Fatalf("read .gitignore: %v", readErr)
	}
	want := "bin/\n# graphgrade runs\n" + config.DefaultOutputDir + "\n" + config.DefaultStorePath + "\n"
	if string(ignore) != want {
		t.Fatalf("expected .gitignore %q, got %q", want, string(ignore))
	}
}

func TestInitCommandCancelled(t *testing.T) {
	dir := t.TempDir()
	specPath := config.ConfigPath(dir)
	withInitInput(t, "n\n")

	var out, err bytes.Buffer
	if code := Run([]string{"init", "--spec", specPath}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "cancelled") {
		t.Fatalf("expected cancel message, got %q", err.String())
	}
	if _, statErr := os.Stat(specPath); !os.IsNotExist(statErr) {
		t.Fatalf("expected no config file after cancel")
	}
}

func TestInitCommandRejectsUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	withInitInput(t, "y\n")

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", config.ConfigPath(dir), "--profile", "bard"}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), `unknown profile "bard"`) {
		t.Fatalf("expected profile error, got %q", err.String())
	}
	if out.Len() != 0 {
		t.Fatalf("expected no prompts before the profile check, got %q", out.String())
	}
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "graphgrade.yml")
	if err := os.WriteFile(specPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	var out, err bytes.Buffer
	code := Run([]string{"init", "--spec", specPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no stdout output, got %q", out.String())
	}
	if !strings.Contains(err.String(), "already exists") {
		t.Fatalf("expected overwrite warning, got %q", err.String())
	}
}
