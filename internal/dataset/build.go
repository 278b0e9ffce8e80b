package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"graphgrade/internal/graph"
	"graphgrade/internal/score"
	"graphgrade/internal/spec"
	"graphgrade/internal/validate"
)

// ErrNoCategory reports a result record whose category cannot be derived.
var ErrNoCategory = errors.New("dataset: category not derivable")

// Reference answer positions in a standard conversation.
const (
	countsTurn = 1
	edgesTurn  = 3
	finalTurn  = 5
)

// BuildFacts decodes every standard record into an in-memory fact store.
// Records that fail to decode are kept and report their error on lookup.
func BuildFacts(standard []StandardRecord) *graph.MemoryFacts {
	facts := graph.NewMemoryFacts()
	for _, record := range standard {
		facts.Add(graph.RawRecord{
			ID:         record.ID.String(),
			Category:   graph.Category(strings.TrimSpace(record.Category)),
			Difficulty: graph.ParseDifficulty(record.Difficulty),
			CountText:  record.Turn(countsTurn),
			EdgeText:   record.Turn(edgesTurn),
			References: graph.References{
				Counts: record.Turn(countsTurn),
				Edges:  record.Turn(edgesTurn),
				Final:  record.Turn(finalTurn),
			},
		})
	}
	return facts
}

// BuildLocator builds the record locator named by cfg over the standard set
// in file order.
func BuildLocator(cfg spec.LocatorConfig, standard []StandardRecord) (score.Locator, error) {
	ids := make([]string, 0, len(standard))
	for _, record := range standard {
		ids = append(ids, record.ID.String())
	}
	switch cfg.Type {
	case spec.LocatorDirect, "":
		return score.NewDirectLocator(ids), nil
	case spec.LocatorOffset:
		if len(cfg.Ranges) == 0 {
			return score.NewOffsetLocator([]score.Range{score.Unbounded(0)}, ids), nil
		}
		ranges := make([]score.Range, 0, len(cfg.Ranges))
		for _, r := range cfg.Ranges {
			converted := score.Range{Min: 0, Max: math.MaxInt, Offset: r.Offset}
			if r.Min != nil {
				converted.Min = *r.Min
			}
			if r.Max != nil {
				converted.Max = *r.Max
			}
			ranges = append(ranges, converted)
		}
		return score.NewOffsetLocator(ranges, ids), nil
	default:
		return nil, fmt.Errorf("dataset: unknown locator type %q", cfg.Type)
	}
}

// CategoryFromURL reads the category from a path segment of an image url,
// applying the optional separator and the alias table.
func CategoryFromURL(url string, schema spec.SchemaConfig) (graph.Category, error) {
	segments := strings.Split(url, "/")
	if schema.CategorySegment < 0 || schema.CategorySegment >= len(segments) {
		return "", fmt.Errorf("%w: %q has no path segment %d", ErrNoCategory, url, schema.CategorySegment)
	}
	name := segments[schema.CategorySegment]
	if schema.CategorySeparator != "" {
		name, _, _ = strings.Cut(name, schema.CategorySeparator)
	}
	name = strings.TrimSpace(name)
	if alias, ok := schema.CategoryAliases[name]; ok {
		name = alias
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty path segment %d in %q", ErrNoCategory, schema.CategorySegment, url)
	}
	return graph.Category(name), nil
}

// Items prepares result records for scoring. Records whose category cannot
// be derived become unsupported outcomes instead of items.
func Items(results []ResultRecord, schema spec.SchemaConfig) ([]score.Item, []score.Outcome) {
	items := make([]score.Item, 0, len(results))
	var rejected []score.Outcome
	for index, result := range results {
		category, err := CategoryFromURL(result.ImageURL, schema)
		if err != nil {
			rejected = append(rejected, score.Outcome{
				Index:  index,
				ID:     result.ID.String(),
				Kind:   score.KindUnsupported,
				Detail: err.Error(),
			})
			continue
		}
		item := score.Item{
			Index:    index,
			ID:       result.ID.String(),
			Category: category,
			Answers:  map[validate.Segment]string{},
		}
		if schema.DifficultySource == spec.DifficultyFromResult {
			item.Difficulty = graph.ParseDifficulty(result.Difficulty)
		}
		for segment, answer := range map[validate.Segment]*string{
			validate.Segment1: result.Segment1,
			validate.Segment2: result.Segment2,
			validate.Segment3: result.Segment3,
		} {
			if answer != nil {
				item.Answers[segment] = *answer
			}
		}
		items = append(items, item)
	}
	return items, rejected
}
