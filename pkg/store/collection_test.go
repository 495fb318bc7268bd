package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/logging"
)

type record struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// failingStore fails every write.
type failingStore struct {
	*MemoryStore
	err error
}

func (f failingStore) Put(context.Context, string, []byte) error {
	return f.err
}

func TestCollectionRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}

	for _, codec := range []Codec{JSON, YAML} {
		t.Run(codec.Format().String(), func(t *testing.T) {
			c := NewCollection[record](NewMemoryStore(), codec, "records", logging.NewNopLogger())
			require.NoError(t, c.Save(ctx, want))
			assert.Equal(t, want, c.Load(ctx))
		})
	}
}

func TestCollectionJSONLayout(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := NewCollection[record](s, JSON, "records", nil)

	require.NoError(t, c.Save(ctx, []record{{Name: "a", Count: 1}}))
	data, err := s.Get(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"a\",\n    \"count\": 1\n  }\n]", string(data))

	require.NoError(t, c.Save(ctx, nil))
	data, err = s.Get(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCollectionLoadFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		c := NewCollection[record](NewMemoryStore(), JSON, "records", tl.Logger)
		items := c.Load(ctx)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		tl.AssertNotContains(t, `"level":"warn"`)
	})

	t.Run("corrupt", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, "records", []byte("{not json")))

		c := NewCollection[record](s, JSON, "records", tl.Logger)
		assert.Empty(t, c.Load(ctx))
		tl.AssertContains(t, `"level":"warn"`)

		_, err := c.Fetch(ctx)
		var parseErr *pkgerrors.ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("null document", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, "records", []byte("null")))
		c := NewCollection[record](s, JSON, "records", nil)
		items := c.Load(ctx)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestCollectionSaveFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("plain error is wrapped", func(t *testing.T) {
		cause := errors.New("disk full")
		c := NewCollection[record](failingStore{NewMemoryStore(), cause}, JSON, "records", nil)

		err := c.Save(ctx, []record{{Name: "a"}})
		var ioErr *pkgerrors.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "write", ioErr.Operation)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("io error passes through", func(t *testing.T) {
		cause := pkgerrors.NewIOError("rename", "data/records.json", errors.New("busy"))
		c := NewCollection[record](failingStore{NewMemoryStore(), cause}, JSON, "records", nil)

		err := c.Save(ctx, nil)
		assert.Same(t, cause, err)
	})
}

func TestCollectionName(t *testing.T) {
	c := NewCollection[record](NewMemoryStore(), nil, "books", nil)
	assert.Equal(t, "books", c.Name())
}
