package session

import (
	"errors"
	"time"
)

const (
	DefaultTimeout           = 15 * time.Minute
	DefaultWarning           = 2 * time.Minute
	DefaultCountdownInterval = time.Second
)

// Config holds the inactivity timings.
type Config struct {
	// Timeout is the total inactivity allowed before the session ends.
	Timeout time.Duration
	// Warning is how long before Timeout the warning is raised.
	Warning time.Duration
	// CountdownInterval is the refresh period of the remaining time
	// while the warning is shown.
	CountdownInterval time.Duration
}

// DefaultConfig returns 15 minutes of inactivity with a 2 minute warning.
func DefaultConfig() Config {
	return Config{
		Timeout:           DefaultTimeout,
		Warning:           DefaultWarning,
		CountdownInterval: DefaultCountdownInterval,
	}
}

// Validate checks that every duration is positive and the warning fits
// inside the timeout.
func (c Config) Validate() error {
	if c.Timeout <= 0 || c.Warning <= 0 || c.CountdownInterval <= 0 {
		return errors.New("session: durations must be positive")
	}
	if c.Warning >= c.Timeout {
		return errors.New("session: warning must be shorter than timeout")
	}
	return nil
}
