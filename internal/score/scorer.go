package score

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"graphgrade/internal/graph"
	"graphgrade/internal/validate"
)

// Observer receives outcomes as they are produced. With more than one worker
// OnOutcome is called concurrently and out of input order.
type Observer interface {
	OnOutcome(outcome Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Outcome)

func (f ObserverFunc) OnOutcome(outcome Outcome) {
	f(outcome)
}

// Options configures a Scorer.
type Options struct {
	Facts    graph.Facts
	Registry *validate.Registry
	Locator  Locator
	// Segments lists the segments graded for every item.
	Segments []validate.Segment
	// Workers bounds the parallel map step; values below 1 mean 1.
	Workers int
	// RecordDifficulty takes difficulty from the standard record instead of
	// the result record.
	RecordDifficulty bool
	Observer         Observer
}

// Scorer grades items against graph facts.
type Scorer struct {
	opts Options
}

// NewScorer validates options and returns a scorer.
func NewScorer(opts Options) (*Scorer, error) {
	if opts.Facts == nil {
		return nil, errors.New("score: facts are required")
	}
	if opts.Registry == nil {
		return nil, errors.New("score: registry is required")
	}
	if opts.Locator == nil {
		return nil, errors.New("score: locator is required")
	}
	if len(opts.Segments) == 0 {
		opts.Segments = []validate.Segment{validate.Segment3}
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Scorer{opts: opts}, nil
}

// Score grades every item. Items are scored independently; each worker
// keeps its own accumulator and the partials are summed afterwards, so
// totals do not depend on scheduling. Outcomes keep input order. The only
// error is cancellation of ctx.
func (s *Scorer) Score(ctx context.Context, items []Item) (Report, error) {
	workers := min(s.opts.Workers, max(len(items), 1))
	perItem := make([][]Outcome, len(items))
	partials := make([]*Accumulator, workers)

	group, groupCtx := errgroup.WithContext(ctx)
	next := make(chan int)
	group.Go(func() error {
		defer close(next)
		for i := range items {
			select {
			case next <- i:
			case <-groupCtx.Done():
				return groupCtx.Err()
			}
		}
		return nil
	})
	for w := range workers {
		acc := NewAccumulator()
		partials[w] = acc
		group.Go(func() error {
			for i := range next {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				perItem[i] = s.scoreItem(items[i], acc)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Report{}, fmt.Errorf("score: %w", err)
	}

	total := NewAccumulator()
	for _, partial := range partials {
		total.Merge(partial)
	}
	report := Report{Accuracy: total}
	for _, outcomes := range perItem {
		report.Outcomes = append(report.Outcomes, outcomes...)
	}
	return report, nil
}

func (s *Scorer) scoreItem(item Item, acc *Accumulator) []Outcome {
	var outcomes []Outcome
	emit := func(outcome Outcome) {
		outcomes = append(outcomes, outcome)
		if s.opts.Observer != nil {
			s.opts.Observer.OnOutcome(outcome)
		}
	}

	base := Outcome{Index: item.Index, ID: item.ID, Category: item.Category, Difficulty: item.Difficulty}
	segments := s.presentSegments(item)
	if len(segments) == 0 {
		return nil
	}

	recordID, err := s.opts.Locator.Locate(item.ID)
	if err != nil {
		for _, segment := range segments {
			emit(failure(base, segment, KindLookupFailed, err))
		}
		return outcomes
	}
	base.RecordID = recordID
	record, err := s.opts.Facts.Lookup(recordID, base.Category)
	if err != nil {
		kind := KindLookupFailed
		if errors.Is(err, graph.ErrMalformedEncoding) {
			kind = KindMalformed
		}
		for _, segment := range segments {
			emit(failure(base, segment, kind, err))
		}
		return outcomes
	}
	if s.opts.RecordDifficulty || base.Difficulty == "" {
		base.Difficulty = record.Difficulty
	}
	if base.Category == "" {
		base.Category = record.Category
	}

	for _, segment := range segments {
		outcome := base
		outcome.Segment = segment
		metric := MetricFor(segment)
		tracksRough := segment == validate.Segment3 && validate.HasVerdict(base.Category)
		outcome.Verdict = tracksRough

		if record.Category != "" && base.Category != "" && record.Category != base.Category {
			outcome.Kind = KindCategoryMismatch
			outcome.Detail = fmt.Sprintf("standard record %s is %s", record.ID, record.Category)
			s.count(acc, outcome, metric, tracksRough, false, false)
			emit(outcome)
			continue
		}
		validator, ok := s.opts.Registry.For(segment, base.Category)
		if !ok {
			outcome.Kind = KindUnsupported
			outcome.Detail = fmt.Sprintf("no validator for %s %s", base.Category, segment)
			emit(outcome)
			continue
		}
		result := validator.Validate(item.Answers[segment], record)
		outcome.Kind = classify(result)
		outcome.Detail = result.Detail
		outcome.Rates = result.Rates
		s.count(acc, outcome, metric, tracksRough, result.Exact, result.Rough)
		if result.Rates != nil {
			acc.AddRates(outcome.Category, outcome.Difficulty, *result.Rates)
		}
		emit(outcome)
	}
	return outcomes
}

func (s *Scorer) count(acc *Accumulator, outcome Outcome, metric Metric, tracksRough, exact, rough bool) {
	acc.Add(Key{Category: outcome.Category, Difficulty: outcome.Difficulty, Metric: metric}, exact)
	if tracksRough {
		acc.Add(Key{Category: outcome.Category, Difficulty: outcome.Difficulty, Metric: MetricRough}, rough)
	}
}

// presentSegments returns the configured segments the item has answers for.
func (s *Scorer) presentSegments(item Item) []validate.Segment {
	var out []validate.Segment
	for _, segment := range s.opts.Segments {
		if _, ok := item.Answers[segment]; ok {
			out = append(out, segment)
		}
	}
	return out
}

func failure(base Outcome, segment validate.Segment, kind Kind, err error) Outcome {
	base.Segment = segment
	base.Kind = kind
	base.Detail = err.Error()
	return base
}
