package score

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotLocated reports a result id that maps to no standard record.
var ErrNotLocated = errors.New("score: result id not located")

// Locator resolves a result record id to the id of its standard record.
type Locator interface {
	Locate(resultID string) (string, error)
}

// Range maps result ids in [Min, Max] to standard positions id - Offset.
type Range struct {
	Min    int
	Max    int
	Offset int
}

// Unbounded returns a range covering every non-negative id.
func Unbounded(offset int) Range {
	return Range{Min: 0, Max: math.MaxInt, Offset: offset}
}

func (r Range) contains(id int) bool {
	return id >= r.Min && id <= r.Max
}

// OffsetLocator finds standard records by position. Result ids are numbered
// per category block, so each block is shifted by its own offset before
// indexing into the standard set.
type OffsetLocator struct {
	ranges []Range
	ids    []string
}

// NewOffsetLocator builds a locator over the standard ids in file order.
// The first range containing an id wins.
func NewOffsetLocator(ranges []Range, standardIDs []string) *OffsetLocator {
	return &OffsetLocator{
		ranges: append([]Range(nil), ranges...),
		ids:    append([]string(nil), standardIDs...),
	}
}

// Locate implements Locator.
func (l *OffsetLocator) Locate(resultID string) (string, error) {
	id, err := strconv.Atoi(strings.TrimSpace(resultID))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not numeric", ErrNotLocated, resultID)
	}
	for _, r := range l.ranges {
		if !r.contains(id) {
			continue
		}
		pos := id - r.Offset
		if pos < 0 || pos >= len(l.ids) {
			return "", fmt.Errorf("%w: %d maps to position %d of %d", ErrNotLocated, id, pos, len(l.ids))
		}
		return l.ids[pos], nil
	}
	return "", fmt.Errorf("%w: %d outside every range", ErrNotLocated, id)
}

// DirectLocator matches result ids to standard ids by equality.
type DirectLocator struct {
	known map[string]struct{}
}

// NewDirectLocator builds a locator over the given standard ids.
func NewDirectLocator(standardIDs []string) *DirectLocator {
	known := make(map[string]struct{}, len(standardIDs))
	for _, id := range standardIDs {
		known[id] = struct{}{}
	}
	return &DirectLocator{known: known}
}

// Locate implements Locator.
func (l *DirectLocator) Locate(resultID string) (string, error) {
	id := strings.TrimSpace(resultID)
	if _, ok := l.known[id]; !ok {
		return "", fmt.Errorf("%w: %q", ErrNotLocated, resultID)
	}
	return id, nil
}
