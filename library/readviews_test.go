package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooksAvailability(t *testing.T) {
	db := tempDB(t)

	userID, err := db.AddUser("Alice", RoleStudent)
	require.NoError(t, err)
	b1, err := db.AddBook("1984", "George Orwell", 2)
	require.NoError(t, err)
	b2, err := db.AddBook("Clean Code", "Robert C. Martin", 1)
	require.NoError(t, err)

	_, err = db.IssueBook(userID, b1, 14, testDate(2024, 3, 1))
	require.NoError(t, err)

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)

	// Ordered by id ascending, availability derived per book.
	assert.Equal(t, b1, books[0].ID)
	assert.Equal(t, 2, books[0].TotalCopies)
	assert.Equal(t, 1, books[0].Available)
	assert.Equal(t, b2, books[1].ID)
	assert.Equal(t, 1, books[1].Available)
}

func TestListUsersOrdered(t *testing.T) {
	db := tempDB(t)

	_, err := db.AddUser("Bob", RoleStudent)
	require.NoError(t, err)
	_, err = db.AddUser("Libby", RoleLibrarian)
	require.NoError(t, err)

	users, err := db.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob", users[0].Name)
	assert.Equal(t, RoleLibrarian, users[1].Role)
}

func TestListActiveIssues(t *testing.T) {
	db := tempDB(t)

	userID, err := db.AddUser("Alice", RoleStudent)
	require.NoError(t, err)
	bookID, err := db.AddBook("1984", "George Orwell", 2)
	require.NoError(t, err)

	issuedAt := testDate(2024, 3, 1)
	openID, err := db.IssueBook(userID, bookID, 14, issuedAt)
	require.NoError(t, err)
	closedID, err := db.IssueBook(userID, bookID, 14, issuedAt)
	require.NoError(t, err)
	_, err = db.ReturnBook(closedID, issuedAt, 1.0)
	require.NoError(t, err)

	issues, err := db.ListActiveIssues()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, openID, issues[0].IssueID)
	assert.Equal(t, "Alice", issues[0].UserName)
	assert.Equal(t, "1984", issues[0].BookTitle)
	assert.True(t, issues[0].IssueDate.Equal(issuedAt))
	assert.True(t, issues[0].DueDate.Equal(issuedAt.AddDate(0, 0, 14)))
}

func TestSearchBooksMatchesEitherField(t *testing.T) {
	db := tempDB(t)

	orwell1, err := db.AddBook("1984", "George Orwell", 2)
	require.NoError(t, err)
	orwell2, err := db.AddBook("Animal Farm", "George Orwell", 1)
	require.NoError(t, err)
	_, err = db.AddBook("Clean Code", "Robert C. Martin", 1)
	require.NoError(t, err)
	noAuthor, err := db.AddBook("Beowulf", "", 1)
	require.NoError(t, err)

	// Author match (OR semantics across both fields).
	books, err := db.SearchBooks("Orwell")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, orwell1, books[0].ID)
	assert.Equal(t, orwell2, books[1].ID)

	// Title match on a book with a NULL author.
	books, err = db.SearchBooks("Beo")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, noAuthor, books[0].ID)

	// SQLite LIKE is case-insensitive for ASCII.
	books, err = db.SearchBooks("clean")
	require.NoError(t, err)
	assert.Len(t, books, 1)

	books, err = db.SearchBooks("no such book")
	require.NoError(t, err)
	assert.Empty(t, books)
}
