package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/ddms-api/internal/notify"
	"github.com/sangkips/ddms-api/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeTerminator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeTerminator) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeTerminator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type harness struct {
	clock      *clock.FakeClock
	terminator *fakeTerminator
	notifier   *notify.Recorder
	ctrl       *Controller
	expired    int
	states     []State
}

func newHarness(t *testing.T, authed bool) *harness {
	t.Helper()
	h := &harness{
		clock:      clock.Fake(epoch),
		terminator: &fakeTerminator{},
		notifier:   &notify.Recorder{},
	}
	ctrl, err := NewController(DefaultConfig(), h.terminator, Options{
		Clock:         h.clock,
		Logger:        zaptest.NewLogger(t).Sugar(),
		Notifier:      h.notifier,
		Authenticated: func() bool { return authed },
		OnExpired:     func() { h.expired++ },
		OnChange:      func(s State) { h.states = append(h.states, s) },
	})
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

// toWarning advances exactly to the moment the warning is raised.
func (h *harness) toWarning() {
	h.clock.Advance(DefaultTimeout - DefaultWarning)
}

func TestEntersWarningThenExpires(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()

	h.clock.Advance(DefaultTimeout - DefaultWarning - time.Millisecond)
	require.Equal(t, PhaseActive, h.ctrl.State().Phase)

	h.clock.Advance(time.Millisecond)
	st := h.ctrl.State()
	require.Equal(t, PhaseWarning, st.Phase)
	assert.True(t, st.WarningVisible)
	assert.False(t, st.SessionActive)
	assert.Equal(t, DefaultWarning, st.Remaining)

	h.clock.Step(time.Minute, time.Second)
	assert.Equal(t, time.Minute, h.ctrl.State().Remaining)

	h.clock.Step(time.Minute, time.Second)
	st = h.ctrl.State()
	assert.Equal(t, PhaseExpired, st.Phase)
	assert.False(t, st.WarningVisible)
	assert.Zero(t, st.Remaining)
	assert.Equal(t, 1, h.terminator.Calls())
	assert.Equal(t, 1, h.expired)
	assert.Zero(t, h.clock.PendingCount())

	last, ok := h.notifier.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Message{Level: notify.LevelSuccess, Text: "Session expired. Please login again."}, last)
}

func TestCountdownIsMonotonic(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.toWarning()
	h.clock.Step(DefaultWarning, time.Second)

	var warning []time.Duration
	for _, s := range h.states {
		if s.Phase == PhaseWarning {
			warning = append(warning, s.Remaining)
		}
	}
	require.NotEmpty(t, warning)
	assert.Equal(t, DefaultWarning, warning[0])
	for i := 1; i < len(warning); i++ {
		assert.LessOrEqual(t, warning[i], warning[i-1])
	}
	assert.Equal(t, PhaseExpired, h.states[len(h.states)-1].Phase)
}

func TestActivityRestartsInactivityPeriod(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()

	h.clock.Advance(10 * time.Minute)
	h.ctrl.Activity(ActivityKeyDown)
	assert.Equal(t, epoch.Add(10*time.Minute), h.ctrl.State().LastActivity)

	h.clock.Advance(10 * time.Minute)
	assert.Equal(t, PhaseActive, h.ctrl.State().Phase)

	h.clock.Advance(3 * time.Minute)
	assert.Equal(t, PhaseWarning, h.ctrl.State().Phase)
}

func TestUnknownActivityIsIgnored(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()

	h.clock.Advance(10 * time.Minute)
	h.ctrl.Activity(ActivityKind("focus"))
	h.clock.Advance(3 * time.Minute)

	assert.Equal(t, PhaseWarning, h.ctrl.State().Phase)
}

func TestActivityIgnoredWhileWarningShown(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.toWarning()

	h.clock.Step(30*time.Second, time.Second)
	h.ctrl.Activity(ActivityPointerMove)
	h.ctrl.Activity(ActivityKeyDown)
	assert.Equal(t, PhaseWarning, h.ctrl.State().Phase)

	h.clock.Step(90*time.Second, time.Second)
	assert.Equal(t, PhaseExpired, h.ctrl.State().Phase)
	assert.Equal(t, 1, h.terminator.Calls())
}

func TestExtendFromWarning(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.toWarning()
	h.clock.Step(30*time.Second, time.Second)

	require.True(t, h.ctrl.Extend())
	st := h.ctrl.State()
	assert.Equal(t, PhaseActive, st.Phase)
	assert.True(t, st.SessionActive)
	assert.False(t, st.WarningVisible)
	assert.Equal(t, DefaultTimeout, st.Remaining)
	assert.Equal(t, h.clock.Now(), st.LastActivity)
	assert.Equal(t, 1, h.clock.PendingCount())

	last, _ := h.notifier.Last()
	assert.Equal(t, "Session extended", last.Text)

	// The old warning's deadline must not fire.
	h.clock.Advance(DefaultTimeout - DefaultWarning - time.Second)
	assert.Equal(t, PhaseActive, h.ctrl.State().Phase)
	h.clock.Advance(time.Second)
	assert.Equal(t, PhaseWarning, h.ctrl.State().Phase)
	assert.Zero(t, h.terminator.Calls())
}

func TestExtendTwiceArmsOneTimer(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.clock.Advance(5 * time.Minute)

	require.True(t, h.ctrl.Extend())
	require.True(t, h.ctrl.Extend())
	assert.Equal(t, 1, h.clock.PendingCount())
	assert.Equal(t, PhaseActive, h.ctrl.State().Phase)

	h.clock.Advance(DefaultTimeout)
	assert.Equal(t, PhaseExpired, h.ctrl.State().Phase)
	assert.Equal(t, 1, h.terminator.Calls())
	assert.Equal(t, 1, h.expired)
	assert.Zero(t, h.clock.PendingCount())
}

func TestSingleAdvanceExpires(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()

	h.clock.Advance(DefaultTimeout)
	st := h.ctrl.State()
	assert.Equal(t, PhaseExpired, st.Phase)
	assert.Zero(t, st.Remaining)
	assert.Equal(t, 1, h.terminator.Calls())
	assert.Equal(t, 1, h.expired)
}

func TestExpiryRunsLogoutOnce(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.toWarning()
	h.clock.Advance(DefaultWarning)

	require.Equal(t, PhaseExpired, h.ctrl.State().Phase)
	require.NoError(t, h.ctrl.Logout(context.Background()))
	assert.False(t, h.ctrl.Extend())
	h.clock.Advance(time.Hour)

	assert.Equal(t, 1, h.terminator.Calls())
	assert.Equal(t, 1, h.expired)
}

func TestLogoutFailureStillExpires(t *testing.T) {
	h := newHarness(t, true)
	h.terminator.err = errors.New("network down")
	h.ctrl.Start()
	h.toWarning()
	h.clock.Step(DefaultWarning, time.Second)

	assert.Equal(t, PhaseExpired, h.ctrl.State().Phase)
	assert.Equal(t, 1, h.terminator.Calls())
	for _, m := range h.notifier.Messages() {
		assert.NotEqual(t, "Session expired. Please login again.", m.Text)
	}
}

func TestExplicitLogout(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.clock.Advance(time.Minute)

	require.NoError(t, h.ctrl.Logout(context.Background()))
	assert.Equal(t, PhaseExpired, h.ctrl.State().Phase)
	assert.Zero(t, h.clock.PendingCount())
	assert.Equal(t, 1, h.terminator.Calls())
}

func TestUnauthenticatedRunsNoTimers(t *testing.T) {
	h := newHarness(t, false)
	h.ctrl.Start()

	assert.Equal(t, PhaseDisabled, h.ctrl.State().Phase)
	assert.Zero(t, h.clock.PendingCount())

	h.clock.Advance(time.Hour)
	assert.Zero(t, h.terminator.Calls())
}

func TestStopCancelsTimers(t *testing.T) {
	h := newHarness(t, true)
	h.ctrl.Start()
	h.toWarning()

	h.ctrl.Stop()
	st := h.ctrl.State()
	assert.Equal(t, PhaseDisabled, st.Phase)
	assert.False(t, st.WarningVisible)
	assert.Zero(t, h.clock.PendingCount())

	h.ctrl.Activity(ActivityKeyDown)
	h.clock.Advance(time.Hour)
	assert.Zero(t, h.terminator.Calls())

	h.ctrl.Start()
	assert.Equal(t, PhaseActive, h.ctrl.State().Phase)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Timeout: time.Minute, Warning: time.Minute, CountdownInterval: time.Second}.Validate())
	assert.Error(t, Config{Timeout: time.Minute, Warning: time.Second}.Validate())

	_, err := NewController(Config{}, nil, Options{})
	assert.Error(t, err)
}
