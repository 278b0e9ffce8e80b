package runner

import "graphgrade/internal/score"

// RunObserver receives progress callbacks during a run.
type RunObserver interface {
	OnRunStart(runID string, records int)
	OnOutcome(outcome score.Outcome)
	OnRunEnd(results Results)
}

// scoreObserver forwards scorer outcomes to a run observer.
type scoreObserver struct {
	observer RunObserver
}

func (o scoreObserver) OnOutcome(outcome score.Outcome) {
	o.observer.OnOutcome(outcome)
}

// MultiObserver fans callbacks out to several observers in order.
type MultiObserver []RunObserver

func (m MultiObserver) OnRunStart(runID string, records int) {
	for _, observer := range m {
		if observer != nil {
			observer.OnRunStart(runID, records)
		}
	}
}

func (m MultiObserver) OnOutcome(outcome score.Outcome) {
	for _, observer := range m {
		if observer != nil {
			observer.OnOutcome(outcome)
		}
	}
}

func (m MultiObserver) OnRunEnd(results Results) {
	for _, observer := range m {
		if observer != nil {
			observer.OnRunEnd(results)
		}
	}
}
