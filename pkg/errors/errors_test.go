package errors_test

import (
	"errors"
	"testing"

	pkgerrors "github.com/agentstation/bookshelf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "book",
			ID:       "1234567890",
		}
		assert.Equal(t, "book with ID 1234567890 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("user", "001")
		assert.Equal(t, "user with ID 001 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("book", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestAlreadyExistsError(t *testing.T) {
	err := pkgerrors.NewAlreadyExistsError("book", "1234567890")
	assert.Equal(t, "book with ID 1234567890 already exists", err.Error())
	assert.True(t, pkgerrors.IsAlreadyExists(err))
	assert.False(t, pkgerrors.IsNotFound(err))

	var target *pkgerrors.AlreadyExistsError
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, "1234567890", target.ID)
}

func TestStateError(t *testing.T) {
	err := pkgerrors.NewStateError("book", "1234567890", "already borrowed")
	assert.Equal(t, "book 1234567890: already borrowed", err.Error())
	assert.True(t, pkgerrors.IsInvalidState(err))
	assert.True(t, errors.Is(err, pkgerrors.ErrInvalidState))
	assert.False(t, pkgerrors.IsAlreadyExists(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "isbn",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field isbn: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid book",
		}
		assert.Equal(t, "validation failed: invalid book", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("id", "", "cannot be empty")
		assert.Contains(t, err.Error(), "id")
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestConfigError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.ConfigError{
			Component: "store",
			Message:   "unsupported scheme ftp",
		}
		assert.Contains(t, err.Error(), "store")
		assert.Contains(t, err.Error(), "unsupported scheme")
	})

	t.Run("constructor with cause", func(t *testing.T) {
		cause := errors.New("bad url")
		err := pkgerrors.NewConfigError("store", "cannot parse url", cause)
		assert.Contains(t, err.Error(), "cannot parse url")
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestIOError(t *testing.T) {
	t.Run("with path", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := pkgerrors.NewIOError("write", "data/books.json", cause)
		assert.Equal(t, "IO error during write of data/books.json: permission denied", err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("without path", func(t *testing.T) {
		err := pkgerrors.NewIOError("read", "", errors.New("short read"))
		assert.Equal(t, "IO error during read: short read", err.Error())
	})
}

func TestResourceError(t *testing.T) {
	cause := errors.New("connection refused")
	err := pkgerrors.WrapResource("open", "store", "postgres", cause)
	assert.Equal(t, "failed to open store postgres: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))

	noID := pkgerrors.WrapResource("create", "library", "", cause)
	assert.Equal(t, "failed to create library: connection refused", noID.Error())
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := pkgerrors.WrapParse("json", "users.json", cause)
	assert.Equal(t, "parse error in json file users.json: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, cause))

	noFile := &pkgerrors.ParseError{Format: "yaml", Err: errors.New("bad indent")}
	assert.Equal(t, "yaml parse error: bad indent", noFile.Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("open", "store", "", nil))
	assert.NoError(t, pkgerrors.WrapValidation("isbn", nil))

	cause := errors.New("boom")

	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, pkgerrors.WrapIO("read", "books.json", cause), &ioErr)
	assert.Equal(t, "books.json", ioErr.Path)

	var parseErr *pkgerrors.ParseError
	require.ErrorAs(t, pkgerrors.WrapParse("yaml", "users.yaml", cause), &parseErr)
	assert.Equal(t, "yaml", parseErr.Format)

	var resErr *pkgerrors.ResourceError
	require.ErrorAs(t, pkgerrors.WrapResource("close", "store", "redis", cause), &resErr)
	assert.Equal(t, "close", resErr.Operation)

	assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapValidation("isbn", cause)))
}
