package runner

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	runIDTimeLayout   = "20060102T150405Z"
	runIDSuffixBytes  = 4
	runIDProfileLimit = 16
)

// NewRunID builds a run id from the start time, the phrasing profile and a
// random suffix, e.g. 20240607T080910Z-llava-00112233. Ids sort by start
// time and name the answer generator at a glance.
func NewRunID(startedAt time.Time, profile string) (string, error) {
	return newRunID(startedAt, profile, rand.Reader)
}

func newRunID(startedAt time.Time, profile string, random io.Reader) (string, error) {
	if random == nil {
		return "", errors.New("random reader is nil")
	}
	suffix := make([]byte, runIDSuffixBytes)
	if _, err := io.ReadFull(random, suffix); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return strings.Join([]string{
		startedAt.UTC().Format(runIDTimeLayout),
		runIDLabel(profile),
		hex.EncodeToString(suffix),
	}, "-"), nil
}

// runIDLabel reduces a profile name to lowercase letters and digits so the
// id stays a safe directory name.
func runIDLabel(profile string) string {
	label := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, profile)
	if label == "" {
		return "run"
	}
	if len(label) > runIDProfileLimit {
		label = label[:runIDProfileLimit]
	}
	return label
}
