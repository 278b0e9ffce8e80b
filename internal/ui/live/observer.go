package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"graphgrade/internal/runner"
	"graphgrade/internal/score"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events  chan Event
	program *tea.Program
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, _ = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, records int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Records: records})
}

// OnOutcome forwards graded answers to the UI. It may be called from
// several scoring workers at once.
func (c *Controller) OnOutcome(outcome score.Outcome) {
	c.send(Event{Kind: EventOutcome, Outcome: outcome})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.send(Event{Kind: EventRunEnd, RunID: results.RunID, Summary: results.Summary})
	c.Close()
}

// send enqueues an event, giving up once the UI has exited.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}
