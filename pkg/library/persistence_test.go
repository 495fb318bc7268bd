package library_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/bookshelf/pkg/errors"
	"github.com/agentstation/bookshelf/pkg/library"
	"github.com/agentstation/bookshelf/pkg/logging"
	"github.com/agentstation/bookshelf/pkg/store"
)

func openFileLibrary(t *testing.T, dir string, format store.Format) *library.Library {
	t.Helper()
	st, err := store.NewFileStore(dir, store.WithFormat(format), store.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	lib, err := library.New(context.Background(),
		library.NewGateway(st, format.Codec(), logging.NewNopLogger()),
		library.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return lib
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, format := range []store.Format{store.FormatJSON, store.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			dir := t.TempDir()
			lib := openFileLibrary(t, dir, format)
			seed(t, lib)
			_, err := lib.BorrowBook(ctx, "001", "1234567890")
			require.NoError(t, err)

			reopened := openFileLibrary(t, dir, format)
			assert.Equal(t, lib.Books(), reopened.Books())
			assert.Equal(t, lib.Users(), reopened.Users())
			assert.False(t, reopened.IsBookAvailable("1234567890"))

			assert.FileExists(t, filepath.Join(dir, "books"+format.Extension()))
			assert.FileExists(t, filepath.Join(dir, "users"+format.Extension()))
		})
	}
}

func TestPersistedJSONFieldNames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lib := openFileLibrary(t, dir, store.FormatJSON)
	seed(t, lib)
	_, err := lib.BorrowBook(ctx, "001", "1234567891")
	require.NoError(t, err)

	books, err := os.ReadFile(filepath.Join(dir, "books.json"))
	require.NoError(t, err)
	assert.Contains(t, string(books), `"isAvailable": false`)
	assert.Contains(t, string(books), `"title": "1984"`)

	users, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(users), `"borrowedBooks": [`)
	assert.Contains(t, string(users), `"1234567891"`)
}

func TestLegacyBorrowedBookObjects(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.json"), []byte(`[
  {"title": "1984", "author": "George Orwell", "isbn": "1234567891", "isAvailable": false}
]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(`[
  {
    "name": "Alice",
    "id": "001",
    "borrowedBooks": [
      {"title": "1984", "author": "George Orwell", "isbn": "1234567891", "isAvailable": true},
      "1234567890"
    ]
  },
  {"name": "Bob", "id": "002"}
]`), 0o644))

	lib := openFileLibrary(t, dir, store.FormatJSON)

	alice, err := lib.User("001")
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567891", "1234567890"}, alice.BorrowedBooks)

	bob, err := lib.User("002")
	require.NoError(t, err)
	assert.NotNil(t, bob.BorrowedBooks)
	assert.Empty(t, bob.BorrowedBooks)

	outcome, err := lib.ReturnBook(context.Background(), "001", "1234567891")
	require.NoError(t, err)
	assert.True(t, outcome.OK())
	assert.True(t, lib.IsBookAvailable("1234567891"))
}

func TestLoadFallback(t *testing.T) {
	t.Run("missing files", func(t *testing.T) {
		lib := openFileLibrary(t, filepath.Join(t.TempDir(), "absent"), store.FormatJSON)
		assert.Empty(t, lib.Books())
		assert.Empty(t, lib.Users())
	})

	t.Run("corrupt files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "books.json"), []byte("not json"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(`{"name":`), 0o644))

		lib := openFileLibrary(t, dir, store.FormatJSON)
		assert.Empty(t, lib.Books())
		assert.Empty(t, lib.Users())

		require.NoError(t, lib.AddBook(context.Background(), library.NewBook("1984", "George Orwell", "1")))
		assert.Len(t, lib.Books(), 1)
	})
}

// failingGateway loads like its embedded gateway and fails every save.
type failingGateway struct {
	library.Gateway
	err error
}

func (g failingGateway) SaveBooks(context.Context, []library.Book) error { return g.err }
func (g failingGateway) SaveUsers(context.Context, []library.User) error { return g.err }

func TestSaveFailurePropagates(t *testing.T) {
	ctx := context.Background()
	cause := pkgerrors.NewIOError("write", "books", errors.New("read-only file system"))
	gw := failingGateway{
		Gateway: library.NewGateway(store.NewMemoryStore(), store.JSON, logging.NewNopLogger()),
		err:     cause,
	}

	var events []library.Event
	lib, err := library.New(ctx, gw,
		library.WithLogger(logging.NewNopLogger()),
		library.WithEventHandler(func(e library.Event) { events = append(events, e) }))
	require.NoError(t, err)

	err = lib.AddBook(ctx, library.NewBook("1984", "George Orwell", "1"))
	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "write", ioErr.Operation)

	assert.ErrorIs(t, lib.AddUser(ctx, library.NewUser("Alice", "001")), cause)

	_, err = lib.BorrowBook(ctx, "001", "1")
	assert.ErrorIs(t, err, cause)
	_, err = lib.ReturnBook(ctx, "001", "1")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, lib.RemoveBook(ctx, "1"), cause)
	assert.ErrorIs(t, lib.RemoveUser(ctx, "001"), cause)

	assert.Empty(t, events)
}
