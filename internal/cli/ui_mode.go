package cli

import (
	"fmt"
	"io"
	"strings"

	"graphgrade/internal/runner"
)

// Console modes accepted by score --ui.
const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

// uiModeDecision says whether score drives the live view, with an optional
// note for stderr when the requested mode could not be honored.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal is swapped in tests.
var isTerminal = runner.IsTerminal

// resolveUIMode picks the score console mode. --verbose prints one line per
// graded answer, so it always wins over the live view.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = uiAuto
	}
	switch normalized {
	case uiAuto, uiLive, uiPlain:
	default:
		return uiModeDecision{}, fmt.Errorf("invalid --ui %q (expected %s|%s|%s)", mode, uiAuto, uiLive, uiPlain)
	}

	switch {
	case normalized == uiPlain:
		return uiModeDecision{}, nil
	case verbose && normalized == uiLive:
		return uiModeDecision{warning: "score: --verbose logs every graded answer; ignoring --ui live."}, nil
	case verbose:
		return uiModeDecision{}, nil
	case isTerminal(stdout):
		return uiModeDecision{useLive: true}, nil
	case normalized == uiLive:
		return uiModeDecision{warning: "score: --ui live needs a terminal; printing the plain summary instead."}, nil
	default:
		return uiModeDecision{}, nil
	}
}
