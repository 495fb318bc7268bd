package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

// Collection reads and writes a whole sequence of T as one blob.
// Loading never fails: a missing or unreadable blob yields an empty sequence.
// Saving overwrites the blob and reports failures to the caller.
type Collection[T any] struct {
	store  Store
	codec  Codec
	name   string
	logger *zerolog.Logger
}

// NewCollection creates a collection stored under name.
func NewCollection[T any](s Store, codec Codec, name string, logger *zerolog.Logger) *Collection[T] {
	if codec == nil {
		codec = JSON
	}
	if logger == nil {
		logger = logging.Default()
	}
	l := logger.With().Str("collection", name).Logger()
	return &Collection[T]{store: s, codec: codec, name: name, logger: &l}
}

// Name returns the key the collection is stored under.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns the stored sequence, or an empty one if it cannot be read.
func (c *Collection[T]) Load(ctx context.Context) []T {
	items, err := c.Fetch(ctx)
	if err != nil {
		if errors.IsNotFound(err) {
			c.logger.Debug().Msg("Collection not stored yet, starting empty")
		} else {
			c.logger.Warn().Err(err).Msg("Failed to load collection, starting empty")
		}
		return []T{}
	}
	return items
}

// Fetch is Load with the error surfaced.
func (c *Collection[T]) Fetch(ctx context.Context) ([]T, error) {
	data, err := c.store.Get(ctx, c.name)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := c.codec.Unmarshal(data, &items); err != nil {
		return nil, errors.WrapParse(c.codec.Format().String(), c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save overwrites the stored sequence.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := c.codec.Marshal(items)
	if err != nil {
		return errors.WrapIO("encode", c.name, err)
	}

	if err := c.store.Put(ctx, c.name, data); err != nil {
		var ioErr *errors.IOError
		if errors.As(err, &ioErr) {
			return err
		}
		return errors.WrapIO("write", c.name, err)
	}

	c.logger.Debug().Int("count", len(items)).Msg("Collection saved")
	return nil
}
