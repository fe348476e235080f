// Package controller drives the narrative through its phases. It owns the
// observable state, arms one phase component at a time and serializes every
// command through the scheduler.
package controller

import (
	"sync"
	"time"

	"github.com/Iron-Ham/tgen/internal/clock"
	"github.com/Iron-Ham/tgen/internal/errors"
	"github.com/Iron-Ham/tgen/internal/event"
	"github.com/Iron-Ham/tgen/internal/logging"
	"github.com/Iron-Ham/tgen/internal/narrative"
	"github.com/Iron-Ham/tgen/internal/phase"
)

// Options configures a Controller. Only Scheduler is required.
type Options struct {
	Scheduler clock.Scheduler
	Settings  *Settings
	Rand      narrative.Rand
	Bus       *event.Bus
	Logger    *logging.Logger
}

// Controller is the top-level narrative state machine.
//
// Start, Reset, Teardown and Reconfigure may be called from any goroutine;
// they are queued on the scheduler and run there. Snapshot and History may
// also be called from any goroutine.
type Controller struct {
	sched  clock.Scheduler
	rng    narrative.Rand
	bus    *event.Bus
	logger *logging.Logger

	// Owned by the scheduler thread.
	settings   Settings
	pending    *Settings
	armed      narrative.Component
	settle     clock.Group
	generation uint64

	mu    sync.RWMutex
	state state
}

type state struct {
	phase    phase.Phase
	logs     narrative.LogBuffer
	progress float64
	links    int
	task     string
	final    float64
	history  []phase.Transition
	started  bool
	tornDown bool
}

// New creates a controller in the Boot phase. Nothing runs until Start or
// Reset is called.
func New(opts Options) *Controller {
	settings := DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if opts.Rand == nil {
		opts.Rand = narrative.NewRand()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}

	c := &Controller{
		sched:    opts.Scheduler,
		rng:      opts.Rand,
		bus:      opts.Bus,
		logger:   opts.Logger.WithComponent("controller"),
		settings: settings,
	}
	c.state.phase = phase.Boot
	c.state.task = settings.InitialTask
	return c
}

// Bus returns the bus the controller publishes on.
func (c *Controller) Bus() *event.Bus {
	return c.bus
}

// Start begins the narrative at Boot. Calling it again is a no-op.
func (c *Controller) Start() {
	c.post("start", c.start)
}

// Reset cancels every live timer, restores the initial state and restarts
// at Boot. It is safe from any phase and before Start.
func (c *Controller) Reset() {
	c.post("reset", c.reset)
}

// Teardown cancels every live timer without restarting. It is idempotent;
// Start and Reset are refused afterwards.
func (c *Controller) Teardown() {
	c.post("teardown", c.teardown)
}

// Reconfigure stores settings to be used from the next Reset on.
func (c *Controller) Reconfigure(s Settings) {
	c.post("reconfigure", func() error {
		c.pending = &s
		c.logger.Info("settings updated, applying on next reset")
		return nil
	})
}

// Snapshot returns a copy of the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Phase:        c.state.phase,
		Logs:         c.state.logs.Lines(),
		Progress:     c.state.progress,
		LinksFound:   c.state.links,
		CurrentTask:  c.state.task,
		FinalPercent: c.state.final,
		Started:      c.state.started,
		TornDown:     c.state.tornDown,
	}
}

// History returns the transitions of the current run, starting with the
// entry into Boot.
func (c *Controller) History() []phase.Transition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	history := make([]phase.Transition, len(c.state.history))
	copy(history, c.state.history)
	return history
}

func (c *Controller) post(command string, fn func() error) {
	ok := c.sched.Post(func() {
		if err := fn(); err != nil {
			c.logRefused(command, err)
		}
	})
	if !ok {
		c.logRefused(command, errors.ErrSchedulerClosed)
	}
}

func (c *Controller) logRefused(command string, err error) {
	cerr := errors.NewCommandError(command, err)
	switch errors.GetSeverity(cerr) {
	case errors.SeverityDebug:
		c.logger.Debug("command ignored", "command", command, "error", cerr.Error())
	case errors.SeverityInfo:
		c.logger.Info("command ignored", "command", command, "error", cerr.Error())
	case errors.SeverityWarning:
		c.logger.Warn("command ignored", "command", command, "error", cerr.Error())
	default:
		c.logger.Error("command failed", "command", command, "error", cerr.Error())
	}
}

func (c *Controller) start() error {
	c.mu.RLock()
	started, tornDown := c.state.started, c.state.tornDown
	c.mu.RUnlock()

	switch {
	case tornDown:
		return errors.ErrTornDown
	case started:
		return errors.ErrAlreadyStarted
	}
	c.restart()
	return nil
}

func (c *Controller) reset() error {
	c.mu.RLock()
	tornDown := c.state.tornDown
	c.mu.RUnlock()

	if tornDown {
		return errors.ErrTornDown
	}
	c.generation++
	c.disarm()
	c.logger.Info("narrative reset")
	c.bus.Publish(event.NewResetEvent(c.sched.Now()))
	c.restart()
	return nil
}

func (c *Controller) teardown() error {
	c.generation++
	c.disarm()

	c.mu.Lock()
	already := c.state.tornDown
	c.state.tornDown = true
	c.mu.Unlock()

	if already {
		return nil
	}
	c.logger.Info("narrative torn down")
	c.bus.Publish(event.NewTeardownEvent(c.sched.Now()))
	return nil
}

// restart applies pending settings, clears the observable state and arms
// the boot player.
func (c *Controller) restart() {
	if c.pending != nil {
		c.settings = *c.pending
		c.pending = nil
	}

	now := c.sched.Now()
	c.mu.Lock()
	c.state.phase = phase.Boot
	c.state.logs.Reset()
	c.state.progress = 0
	c.state.links = 0
	c.state.task = c.settings.InitialTask
	c.state.final = 0
	c.state.history = []phase.Transition{{To: phase.Boot, At: now}}
	c.state.started = true
	c.mu.Unlock()

	c.logger.WithPhase(phase.Boot.String()).Info("phase entered", "lines", len(c.settings.BootScript))
	c.bus.Publish(event.NewPhaseChangedEvent(now, "", phase.Boot))

	boot := narrative.NewBootPlayer(c.sched, c, c.settings.BootScript, c.settings.BootInterval)
	c.arm(boot, func() {
		c.after(c.settings.BootSettle, c.enterCollecting)
	})
}

func (c *Controller) enterCollecting() {
	if !c.transition(phase.Collecting) {
		return
	}
	engine := narrative.NewCollectionEngine(c.sched, c, c.rng, c.settings.Collection)
	c.arm(engine, c.enterBlackout)
}

func (c *Controller) enterBlackout() {
	if !c.transition(phase.Blackout) {
		return
	}
	c.arm(narrative.NewBlackout(c.sched, c.settings.Blackout), c.enterFinalizing)
}

func (c *Controller) enterFinalizing() {
	if !c.transition(phase.Finalizing) {
		return
	}
	counter := narrative.NewFinalCounter(c.sched, c, c.rng, c.settings.Curve, 0)
	c.arm(counter, func() {
		c.after(c.settings.FinalizeSettle, c.enterComplete)
	})
}

func (c *Controller) enterComplete() {
	if !c.transition(phase.Complete) {
		return
	}
	c.disarm()
}

// arm stops whatever is running and starts comp. onDone is dropped if the
// run it belongs to has been reset or torn down in the meantime.
func (c *Controller) arm(comp narrative.Component, onDone func()) {
	c.disarm()
	c.armed = comp
	generation := c.generation
	comp.Start(func() {
		if generation == c.generation {
			onDone()
		}
	})
}

// after schedules fn as a settle delay of the current run.
func (c *Controller) after(d time.Duration, fn func()) {
	generation := c.generation
	c.settle.Add(c.sched.After(d, func() {
		if generation == c.generation {
			fn()
		}
	}))
}

func (c *Controller) disarm() {
	if c.armed != nil {
		c.armed.Stop()
		c.armed = nil
	}
	c.settle.StopAll()
}

// transition moves to the next phase. A refused transition is logged and
// leaves the controller where it is.
func (c *Controller) transition(to phase.Phase) bool {
	now := c.sched.Now()

	c.mu.Lock()
	from := c.state.phase
	if err := phase.Check(from, to); err != nil {
		c.mu.Unlock()
		c.logger.Error("phase transition refused", "error", err)
		return false
	}
	c.state.phase = to
	c.state.history = append(c.state.history, phase.Transition{From: from, To: to, At: now})
	c.mu.Unlock()

	c.logger.WithPhase(to.String()).Info("phase entered", "from", from.String())
	c.bus.Publish(event.NewPhaseChangedEvent(now, from, to))
	return true
}

// AppendLog implements narrative.Sink.
func (c *Controller) AppendLog(line string) {
	c.mu.Lock()
	c.state.logs.Append(line)
	c.mu.Unlock()

	c.bus.Publish(event.NewLogAppendedEvent(c.sched.Now(), line, 0))
}

// AppendWindowedLog implements narrative.Sink.
func (c *Controller) AppendWindowedLog(line string, window int) {
	c.mu.Lock()
	before := c.state.logs.Len()
	c.state.logs.AppendWindowed(line, window)
	dropped := before + 1 - c.state.logs.Len()
	c.mu.Unlock()

	c.bus.Publish(event.NewLogAppendedEvent(c.sched.Now(), line, dropped))
}

// SetProgress implements narrative.Sink.
func (c *Controller) SetProgress(progress float64) {
	c.mu.Lock()
	c.state.progress = narrative.Clamp(progress)
	c.mu.Unlock()
	c.publishSample()
}

// AddLinks implements narrative.Sink. Negative counts are ignored.
func (c *Controller) AddLinks(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.state.links += n
	c.mu.Unlock()
	c.publishSample()
}

// SetTask implements narrative.Sink.
func (c *Controller) SetTask(label string) {
	c.mu.Lock()
	c.state.task = label
	c.mu.Unlock()
	c.publishSample()
}

// SetFinal implements narrative.Sink.
func (c *Controller) SetFinal(percent float64) {
	percent = narrative.Clamp(percent)
	c.mu.Lock()
	c.state.final = percent
	c.mu.Unlock()

	c.bus.Publish(event.NewFinalSteppedEvent(c.sched.Now(), percent))
}

func (c *Controller) publishSample() {
	c.mu.RLock()
	e := event.NewCollectionSampledEvent(c.sched.Now(), c.state.progress, c.state.links, c.state.task)
	c.mu.RUnlock()
	c.bus.Publish(e)
}

var _ narrative.Sink = (*Controller)(nil)
