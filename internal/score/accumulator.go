package score

import (
	"slices"
	"strings"

	"graphgrade/internal/graph"
	"graphgrade/internal/validate"
)

// Accumulator counts correct and total answers per key. It is not safe for
// concurrent use; parallel scoring keeps one per worker and merges them.
type Accumulator struct {
	tallies map[Key]Tally
	rates   map[RateKey]RateTally
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		tallies: map[Key]Tally{},
		rates:   map[RateKey]RateTally{},
	}
}

// Add records one graded answer.
func (a *Accumulator) Add(key Key, correct bool) {
	tally := a.tallies[key]
	tally.Total++
	if correct {
		tally.Correct++
	}
	a.tallies[key] = tally
}

// AddRates records the overlap rates of one edge listing.
func (a *Accumulator) AddRates(category graph.Category, difficulty graph.Difficulty, rates validate.EdgeRates) {
	key := RateKey{Category: category, Difficulty: difficulty}
	tally := a.rates[key]
	tally.Count++
	tally.CorrectSum += rates.Correct
	tally.ErrorSum += rates.Error
	if rates.Half {
		tally.Half++
	}
	a.rates[key] = tally
}

// Merge adds every count of other into a.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	for key, tally := range other.tallies {
		a.tallies[key] = a.tallies[key].plus(tally)
	}
	for key, tally := range other.rates {
		a.rates[key] = a.rates[key].plus(tally)
	}
}

// Tally returns the counts for key.
func (a *Accumulator) Tally(key Key) Tally {
	return a.tallies[key]
}

// Ratio returns the accuracy for key and whether anything was counted.
func (a *Accumulator) Ratio(key Key) (float64, bool) {
	tally, ok := a.tallies[key]
	if !ok || tally.Total == 0 {
		return 0, false
	}
	return tally.Ratio(), true
}

// Row is one accuracy line. Difficulty is empty on category totals.
type Row struct {
	Category   graph.Category   `json:"category"`
	Difficulty graph.Difficulty `json:"difficulty,omitempty"`
	Metric     Metric           `json:"metric"`
	Correct    int              `json:"correct"`
	Total      int              `json:"total"`
	Ratio      float64          `json:"ratio"`
}

// Rows returns every counter in report order.
func (a *Accumulator) Rows() []Row {
	rows := make([]Row, 0, len(a.tallies))
	for key, tally := range a.tallies {
		rows = append(rows, newRow(key, tally))
	}
	sortRows(rows)
	return rows
}

// Totals sums counters over difficulties, one row per category and metric.
func (a *Accumulator) Totals() []Row {
	sums := map[Key]Tally{}
	for key, tally := range a.tallies {
		key.Difficulty = ""
		sums[key] = sums[key].plus(tally)
	}
	rows := make([]Row, 0, len(sums))
	for key, tally := range sums {
		rows = append(rows, newRow(key, tally))
	}
	sortRows(rows)
	return rows
}

// RateRow is the averaged edge-listing rates of one bucket.
type RateRow struct {
	Category    graph.Category   `json:"category"`
	Difficulty  graph.Difficulty `json:"difficulty"`
	Count       int              `json:"count"`
	CorrectRate float64          `json:"correct_rate"`
	ErrorRate   float64          `json:"error_rate"`
	HalfRate    float64          `json:"half_correct_rate"`
}

// RateRows returns the averaged edge-listing rates in report order.
func (a *Accumulator) RateRows() []RateRow {
	rows := make([]RateRow, 0, len(a.rates))
	for key, tally := range a.rates {
		row := RateRow{Category: key.Category, Difficulty: key.Difficulty, Count: tally.Count}
		if tally.Count > 0 {
			n := float64(tally.Count)
			row.CorrectRate = tally.CorrectSum / n
			row.ErrorRate = tally.ErrorSum / n
			row.HalfRate = float64(tally.Half) / n
		}
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(x, y RateRow) int {
		if c := compareCategory(x.Category, y.Category); c != 0 {
			return c
		}
		return compareDifficulty(x.Difficulty, y.Difficulty)
	})
	return rows
}

func newRow(key Key, tally Tally) Row {
	return Row{
		Category:   key.Category,
		Difficulty: key.Difficulty,
		Metric:     key.Metric,
		Correct:    tally.Correct,
		Total:      tally.Total,
		Ratio:      tally.Ratio(),
	}
}

func sortRows(rows []Row) {
	slices.SortFunc(rows, func(x, y Row) int {
		if c := compareCategory(x.Category, y.Category); c != 0 {
			return c
		}
		if c := compareDifficulty(x.Difficulty, y.Difficulty); c != 0 {
			return c
		}
		return rank(metricOrder, x.Metric, y.Metric)
	})
}

func compareCategory(x, y graph.Category) int {
	return rank(graph.Categories, x, y)
}

var difficultyOrder = []graph.Difficulty{graph.Easy, graph.Medium, graph.Hard}

func compareDifficulty(x, y graph.Difficulty) int {
	return rank(difficultyOrder, x, y)
}

// rank orders known values by their position in order and unknown values
// after them, alphabetically.
func rank[T ~string](order []T, x, y T) int {
	ix, iy := slices.Index(order, x), slices.Index(order, y)
	switch {
	case ix >= 0 && iy >= 0:
		return ix - iy
	case ix >= 0:
		return -1
	case iy >= 0:
		return 1
	default:
		return strings.Compare(string(x), string(y))
	}
}
