package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := NewDatabase(path)
	require.NoError(t, err)
	_, err = db.AddUser("Alice", RoleStudent)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an existing file must not re-run migrations destructively.
	db, err = NewDatabase(path)
	require.NoError(t, err)
	defer db.Close()

	users, err := db.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestAddUserValidation(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddUser("Alice", RoleStudent)
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = db.AddUser("", RoleStudent)
	assert.Error(t, err)

	_, err = db.AddUser("Eve", Role("janitor"))
	assert.Error(t, err)
}

func TestAddBookValidation(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddBook("1984", "George Orwell", 2)
	require.NoError(t, err)
	assert.Positive(t, id)

	// Zero copies is legal; the book just can never be issued.
	_, err = db.AddBook("Rare Folio", "Anon", 0)
	assert.NoError(t, err)

	_, err = db.AddBook("", "Anon", 1)
	assert.Error(t, err)

	_, err = db.AddBook("Bad", "Anon", -1)
	assert.Error(t, err)
}

func TestGetByIDSentinels(t *testing.T) {
	db := tempDB(t)

	_, err := db.GetUser(42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = db.GetBook(42)
	assert.ErrorIs(t, err, ErrBookNotFound)

	_, err = db.GetIssue(42)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestNullableAuthor(t *testing.T) {
	db := tempDB(t)

	id, err := db.AddBook("Beowulf", "", 1)
	require.NoError(t, err)

	b, err := db.GetBook(id)
	require.NoError(t, err)
	assert.Equal(t, "", b.Author)
}

func TestCountActiveIssuesUnknownBook(t *testing.T) {
	db := tempDB(t)

	// Deliberate leaf behavior: unknown book yields 0, not an error.
	n, err := db.CountActiveIssues(9999)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCascadeDeleteRemovesIssues(t *testing.T) {
	db := tempDB(t)

	userID, err := db.AddUser("Alice", RoleStudent)
	require.NoError(t, err)
	bookID, err := db.AddBook("1984", "George Orwell", 1)
	require.NoError(t, err)

	issueID, err := db.IssueBook(userID, bookID, 14, testDate(2024, 3, 1))
	require.NoError(t, err)

	_, err = db.db.Exec(`DELETE FROM books WHERE id=?`, bookID)
	require.NoError(t, err)

	_, err = db.GetIssue(issueID)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}
