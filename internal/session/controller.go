// Package session ends an authenticated session after a period of
// operator inactivity, with a warning countdown before it does.
//
// A Controller moves through Disabled, Active, Warning and Expired. It
// keeps at most one armed timer per phase (pre-warning, driving timeout,
// countdown tick); every reset cancels all of them and bumps a
// generation counter so a callback that was already in flight when the
// reset happened ignores itself.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/ddms-api/internal/notify"
	"github.com/sangkips/ddms-api/pkg/clock"
	"go.uber.org/zap"
)

const (
	msgExtended = "Session extended"
	msgExpired  = "Session expired. Please login again."
)

// Phase is the controller's lifecycle position.
type Phase int

const (
	PhaseDisabled Phase = iota
	PhaseActive
	PhaseWarning
	PhaseExpired
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseWarning:
		return "warning"
	case PhaseExpired:
		return "expired"
	default:
		return "disabled"
	}
}

// ActivityKind is a kind of operator input.
type ActivityKind string

const (
	ActivityPointerDown ActivityKind = "pointerdown"
	ActivityKeyDown     ActivityKind = "keydown"
	ActivityTouchStart  ActivityKind = "touchstart"
	ActivityScroll      ActivityKind = "scroll"
	ActivityWheel       ActivityKind = "wheel"
	ActivityPointerMove ActivityKind = "pointermove"
)

// Qualifies reports whether k counts as activity.
func (k ActivityKind) Qualifies() bool {
	switch k {
	case ActivityPointerDown, ActivityKeyDown, ActivityTouchStart,
		ActivityScroll, ActivityWheel, ActivityPointerMove:
		return true
	}
	return false
}

// State is a snapshot of the controller.
type State struct {
	Phase          Phase
	SessionActive  bool
	WarningVisible bool
	Remaining      time.Duration
	LastActivity   time.Time
}

// Terminator ends the authenticated session. Implementations clear local
// credentials and hand control back to the login entry point even when
// the remote call fails.
type Terminator interface {
	Logout(ctx context.Context) error
}

// Options are the optional collaborators of a Controller.
type Options struct {
	Clock    clock.Clock
	Logger   *zap.SugaredLogger
	Notifier notify.Notifier
	// Authenticated gates arming: when it reports false no timer runs.
	Authenticated func() bool
	// OnExpired runs once per expiry, before logout.
	OnExpired func()
	// OnChange receives every published state.
	OnChange func(State)
	// LogoutTimeout bounds the logout call made from a timer.
	LogoutTimeout time.Duration
}

// Controller runs the inactivity timers.
type Controller struct {
	cfg        Config
	terminator Terminator
	clock      clock.Clock
	log        *zap.SugaredLogger
	notifier   notify.Notifier
	authed     func() bool
	onExpired  func()
	onChange   func(State)
	logoutWait time.Duration

	mu           sync.Mutex
	phase        Phase
	remaining    time.Duration
	lastActivity time.Time
	warningEnd   time.Time
	generation   uint64

	preWarning *clock.Timer
	deadline   *clock.Timer
	countdown  *clock.Timer
}

// NewController returns a disabled controller. Call Start once the
// operator has authenticated.
func NewController(cfg Config, terminator Terminator, opts Options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:        cfg,
		terminator: terminator,
		clock:      opts.Clock,
		log:        opts.Logger,
		notifier:   opts.Notifier,
		authed:     opts.Authenticated,
		onExpired:  opts.OnExpired,
		onChange:   opts.OnChange,
		logoutWait: opts.LogoutTimeout,
		remaining:  cfg.Timeout,
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}
	if c.notifier == nil {
		c.notifier = notify.Discard{}
	}
	if c.logoutWait <= 0 {
		c.logoutWait = 10 * time.Second
	}
	return c, nil
}

// Start enables the controller and begins a fresh Active period.
func (c *Controller) Start() {
	c.mu.Lock()
	c.resetLocked()
	st := c.stateLocked()
	c.mu.Unlock()
	c.publish(st)
}

// Stop disables the controller and cancels every timer.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.cancelAllLocked()
	c.phase = PhaseDisabled
	st := c.stateLocked()
	c.mu.Unlock()
	c.publish(st)
}

// Activity records operator input. It restarts the inactivity period
// while Active and is ignored in every other phase, in particular while
// the warning is showing.
func (c *Controller) Activity(kind ActivityKind) {
	if !kind.Qualifies() {
		return
	}
	c.mu.Lock()
	if c.phase != PhaseActive {
		c.mu.Unlock()
		return
	}
	c.resetLocked()
	st := c.stateLocked()
	c.mu.Unlock()
	c.publish(st)
}

// Extend keeps the session alive from the warning (or Active) phase and
// raises a confirmation. It reports whether the session was extended.
func (c *Controller) Extend() bool {
	c.mu.Lock()
	if c.phase != PhaseActive && c.phase != PhaseWarning {
		c.mu.Unlock()
		return false
	}
	c.resetLocked()
	st := c.stateLocked()
	c.mu.Unlock()

	c.publish(st)
	c.notifier.Success(msgExtended)
	return true
}

// Logout ends the session now through the same path as expiry. Repeated
// calls after the first are no-ops.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == PhaseExpired {
		c.mu.Unlock()
		return nil
	}
	c.expireLocked()
	st := c.stateLocked()
	c.mu.Unlock()
	return c.finish(ctx, st)
}

// Close cancels every timer without logging out.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelAllLocked()
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Phase:          c.phase,
		SessionActive:  c.phase == PhaseActive,
		WarningVisible: c.phase == PhaseWarning,
		Remaining:      c.remaining,
		LastActivity:   c.lastActivity,
	}
}

func (c *Controller) cancelAllLocked() {
	c.generation++
	for _, t := range []*clock.Timer{c.preWarning, c.deadline, c.countdown} {
		t.Stop()
	}
	c.preWarning, c.deadline, c.countdown = nil, nil, nil
}

func (c *Controller) resetLocked() {
	c.cancelAllLocked()
	c.remaining = c.cfg.Timeout
	c.lastActivity = c.clock.Now()

	if c.authed != nil && !c.authed() {
		c.phase = PhaseDisabled
		return
	}
	c.phase = PhaseActive

	gen := c.generation
	c.preWarning = c.clock.AfterFunc(c.cfg.Timeout-c.cfg.Warning, func() {
		c.enterWarning(gen)
	})
}

func (c *Controller) enterWarning(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseActive {
		c.mu.Unlock()
		return
	}
	c.preWarning = nil
	c.phase = PhaseWarning
	c.remaining = c.cfg.Warning
	c.warningEnd = c.clock.Now().Add(c.cfg.Warning)

	c.deadline = c.clock.AfterFunc(c.cfg.Warning, func() {
		c.expire(gen)
	})
	c.armCountdownLocked(gen)
	st := c.stateLocked()
	c.mu.Unlock()

	c.log.Debugw("session warning raised", "remaining", st.Remaining)
	c.publish(st)
}

func (c *Controller) armCountdownLocked(gen uint64) {
	c.countdown = c.clock.AfterFunc(c.cfg.CountdownInterval, func() {
		c.tick(gen)
	})
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseWarning {
		c.mu.Unlock()
		return
	}
	remaining := c.warningEnd.Sub(c.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	c.remaining = remaining
	if remaining == 0 {
		c.mu.Unlock()
		c.expire(gen)
		return
	}
	c.armCountdownLocked(gen)
	st := c.stateLocked()
	c.mu.Unlock()
	c.publish(st)
}

// expire is the timer-driven path. Only the first caller for a given
// generation gets past the guard.
func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.phase != PhaseWarning {
		c.mu.Unlock()
		return
	}
	c.expireLocked()
	st := c.stateLocked()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.logoutWait)
	defer cancel()
	_ = c.finish(ctx, st)
}

func (c *Controller) expireLocked() {
	c.cancelAllLocked()
	c.phase = PhaseExpired
	c.remaining = 0
}

func (c *Controller) finish(ctx context.Context, st State) error {
	c.publish(st)
	if c.onExpired != nil {
		c.onExpired()
	}

	var err error
	if c.terminator != nil {
		err = c.terminator.Logout(ctx)
	}
	if err != nil {
		c.log.Warnw("logout failed", "error", err)
		return err
	}
	c.notifier.Success(msgExpired)
	return nil
}

func (c *Controller) publish(st State) {
	if c.onChange != nil {
		c.onChange(st)
	}
}
