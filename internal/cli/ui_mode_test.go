package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}

func TestResolveUIMode(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		verbose  bool
		tty      bool
		wantLive bool
		warning  string
		wantErr  bool
	}{
		{name: "auto on terminal", mode: "auto", tty: true, wantLive: true},
		{name: "empty means auto", mode: "", tty: true, wantLive: true},
		{name: "auto when piped", mode: "auto"},
		{name: "plain on terminal", mode: "Plain", tty: true},
		{name: "live on terminal", mode: "live", tty: true, wantLive: true},
		{name: "live when piped", mode: "live", warning: "--ui live needs a terminal"},
		{name: "verbose beats auto", mode: "auto", verbose: true, tty: true},
		{name: "verbose beats live", mode: "live", verbose: true, tty: true, warning: "--verbose logs every graded answer"},
		{name: "unknown mode", mode: "fancy", tty: true, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubTerminal(t, tc.tty)
			decision, err := resolveUIMode(tc.mode, tc.verbose, nil)
			if tc.wantErr {
				if err == nil || !strings.Contains(err.Error(), "auto|live|plain") {
					t.Fatalf("expected mode error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if decision.useLive != tc.wantLive {
				t.Fatalf("expected useLive=%v, got %v", tc.wantLive, decision.useLive)
			}
			if tc.warning == "" && decision.warning != "" {
				t.Fatalf("unexpected warning %q", decision.warning)
			}
			if !strings.Contains(decision.warning, tc.warning) {
				t.Fatalf("expected warning containing %q, got %q", tc.warning, decision.warning)
			}
		})
	}
}

// TestScoreCommandLiveFallback runs score with --ui live on a pipe: the
// fallback note goes to stderr and the plain summary to stdout.
func TestScoreCommandLiveFallback(t *testing.T) {
	_, configPath := writeProject(t, cliConfig)
	stubTerminal(t, false)
	orig := startLiveUI
	startLiveUI = func(io.Writer, bool) liveUI {
		t.Fatalf("live UI must not start without a terminal")
		return nil
	}
	t.Cleanup(func() { startLiveUI = orig })

	var out, stderr bytes.Buffer
	if code := Run([]string{"score", "--spec", configPath, "--ui", "live"}, &out, &stderr); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "score: --ui live needs a terminal") {
		t.Fatalf("expected fallback note, got %q", stderr.String())
	}
	if !strings.Contains(out.String(), "completed") {
		t.Fatalf("expected plain summary, got %q", out.String())
	}
}

func TestScoreCommandRejectsUnknownUIMode(t *testing.T) {
	_, configPath := writeProject(t, cliConfig)
	var out, stderr bytes.Buffer
	if code := Run([]string{"score", "--spec", configPath, "--ui", "fancy"}, &out, &stderr); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr.String(), `invalid --ui "fancy"`) {
		t.Fatalf("expected mode error, got %q", stderr.String())
	}
}
