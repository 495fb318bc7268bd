package library

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Library.
type Option func(*config) error

type config struct {
	logger        *zerolog.Logger
	handlers      []EventHandler
	clock         func() time.Time
	uniqueUserIDs bool
	cascade       bool
}

func defaultConfig() *config {
	return &config{
		clock:         time.Now,
		uniqueUserIDs: true,
		cascade:       true,
	}
}

// WithLogger sets the library logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithEventHandler registers a handler for library events.
func WithEventHandler(handler EventHandler) Option {
	return func(c *config) error {
		if handler != nil {
			c.handlers = append(c.handlers, handler)
		}
		return nil
	}
}

// WithClock sets the time source for event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(c *config) error {
		if clock != nil {
			c.clock = clock
		}
		return nil
	}
}

// WithUniqueUserIDs rejects users whose ID is already taken. Enabled by default.
func WithUniqueUserIDs(enabled bool) Option {
	return func(c *config) error {
		c.uniqueUserIDs = enabled
		return nil
	}
}

// WithCascadeRemovals keeps borrow state consistent on removals: removing a
// book drops it from every borrowed list and removing a user frees the books
// they held. Enabled by default.
func WithCascadeRemovals(enabled bool) Option {
	return func(c *config) error {
		c.cascade = enabled
		return nil
	}
}
