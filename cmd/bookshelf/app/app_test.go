package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
	"github.com/agentstation/bookshelf/pkg/logging"
)

func testConfig() *Config {
	return &Config{
		Store:           "memory://",
		StoreFormat:     "json",
		StoreDriver:     "pgx",
		StoreTable:      constants.DefaultTable,
		StorePrefix:     constants.DefaultKeyPrefix,
		UniqueUserIDs:   true,
		CascadeRemovals: true,
		ServerHost:      constants.DefaultHost,
		ServerPort:      constants.DefaultPort,
		LogOutput:       "discard",
	}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New("1.2.3", "abc123", "2024-01-01", "test",
		WithConfig(testConfig()),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

// run executes the CLI against a and returns what it wrote to stdout.
func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAppAccessors(t *testing.T) {
	a := newTestApp(t)

	assert.Equal(t, "1.2.3", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2024-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	host, port := a.ServerAddress()
	assert.Equal(t, constants.DefaultHost, host)
	assert.Equal(t, constants.DefaultPort, port)
}

func TestAppClientIsShared(t *testing.T) {
	a := newTestApp(t)

	c1, err := a.Client()
	require.NoError(t, err)
	c2, err := a.Client()
	require.NoError(t, err)
	assert.Same(t, c1.Library(), c2.Library())

	require.NoError(t, a.Shutdown(context.Background()))
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestAppClientBadFormat(t *testing.T) {
	a := newTestApp(t)
	a.config.StoreFormat = "xml"

	_, err := a.Library()
	assert.Error(t, err)
}

func TestBookCommands(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "book", "add", "--title", "1984", "--author", "George Orwell", "--isbn", "1234567891", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"isbn": "1234567891"`)

	_, err = run(t, a, "book", "add", "--title", "Again", "--isbn", "1234567891")
	assert.True(t, errors.IsAlreadyExists(err))

	_, err = run(t, a, "book", "add", "--title", "No ISBN")
	assert.Error(t, err)

	out, err = run(t, a, "books", "search", "orwell", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "author: George Orwell")

	out, err = run(t, a, "book", "list", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "George Orwell")

	out, err = run(t, a, "book", "show", "1234567891", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "1984")

	out, err = run(t, a, "book", "remove", "1234567891")
	require.NoError(t, err)
	assert.Equal(t, "Removed book 1234567891\n", out)

	_, err = run(t, a, "book", "show", "1234567891")
	assert.True(t, errors.IsNotFound(err))
}

func TestUserCommands(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "user", "add", "--name", "Alice", "--id", "001", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "001"`)

	out, err = run(t, a, "user", "add", "--name", "Generated", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Generated"`)

	out, err = run(t, a, "user", "list", "--search", "ali", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.NotContains(t, out, "Generated")

	out, err = run(t, a, "user", "remove", "001")
	require.NoError(t, err)
	assert.Equal(t, "Removed user 001\n", out)

	_, err = run(t, a, "user", "remove", "001")
	assert.True(t, errors.IsNotFound(err))
}

func TestLendingCommands(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	lib, err := a.Library()
	require.NoError(t, err)
	require.NoError(t, lib.AddBook(ctx, library.NewBook("The Great Gatsby", "F. Scott Fitzgerald", "1234567890")))
	require.NoError(t, lib.AddUser(ctx, library.NewUser("Alice", "001")))
	require.NoError(t, lib.AddUser(ctx, library.NewUser("Bob", "002")))

	out, err := run(t, a, "borrow", "001", "1234567890", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"reason": "borrowed"`)

	_, err = run(t, a, "borrow", "002", "1234567890")
	assert.True(t, errors.IsInvalidState(err))

	out, err = run(t, a, "available", "1234567890", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"availability": "unavailable"`)

	out, err = run(t, a, "user", "show", "001", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Gatsby")

	_, err = run(t, a, "return", "002", "1234567890")
	assert.True(t, errors.IsInvalidState(err))

	out, err = run(t, a, "return", "001", "1234567890", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "returned")

	out, err = run(t, a, "available", "0000000000", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"availability": "unknown"`)

	_, err = run(t, a, "borrow", "999", "1234567890")
	assert.True(t, errors.IsNotFound(err))
}

func TestDemoCommand(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "demo", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "borrow 001 1234567890: borrowed")
	assert.Contains(t, out, "available 1234567890: false")
	assert.Contains(t, out, "return 001 1234567890: returned")
	assert.Contains(t, out, "available 1234567890: true")

	// seeding again is harmless
	_, err = run(t, a, "demo", "-o", "json")
	require.NoError(t, err)
}

func TestGlobalFlagValidation(t *testing.T) {
	a := newTestApp(t)

	_, err := run(t, a, "book", "list", "-o", "xml")
	assert.Error(t, err)
}

func TestStoreFlag(t *testing.T) {
	a := newTestApp(t)
	a.config.Store = "ftp://nowhere"

	_, err := run(t, a, "--store", "memory://", "book", "list", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "memory://", a.config.Store)
}

func TestVersionCommand(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "version")
	require.NoError(t, err)
	assert.Equal(t, "bookshelf 1.2.3\n", out)

	out, err = run(t, a, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:   abc123")
}

func TestCompletion(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bookshelf")

	_, err = run(t, a, "completion", "tcsh")
	assert.Error(t, err)

	lib, err := a.Library()
	require.NoError(t, err)
	require.NoError(t, lib.AddUser(context.Background(), library.NewUser("Alice", "001")))

	out, err = run(t, a, "__complete", "borrow", "")
	require.NoError(t, err)
	assert.Contains(t, out, "001\tAlice")
}
