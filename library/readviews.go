package library

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
)

var dialect = goqu.Dialect("sqlite3")

// ListBooks returns every book with its derived available-copies count,
// ordered by id. Availability is computed per row from open issues.
func (d *Database) ListBooks() ([]*BookListing, error) {
	const query = `
        SELECT b.id, b.title, COALESCE(b.author,'') AS author, b.total_copies,
               b.total_copies - (
                   SELECT COUNT(*) FROM issues i
                   WHERE i.book_id = b.id AND i.returned_at IS NULL
               ) AS available
        FROM books b
        ORDER BY b.id`
	var listings []*BookListing
	if err := d.db.Select(&listings, query); err != nil {
		return nil, err
	}
	return listings, nil
}

// ListUsers returns every patron ordered by id.
func (d *Database) ListUsers() ([]*User, error) {
	var users []*User
	if err := d.db.Select(&users, `SELECT id, name, role FROM users ORDER BY id`); err != nil {
		return nil, err
	}
	return users, nil
}

type activeIssueListingRow struct {
	IssueID   int64  `db:"issue_id"`
	UserName  string `db:"user_name"`
	BookTitle string `db:"book_title"`
	IssueDate string `db:"issue_date"`
	DueDate   string `db:"due_date"`
}

// ListActiveIssues returns every open loan joined with the patron name and
// book title, ordered by issue id.
func (d *Database) ListActiveIssues() ([]*ActiveIssueListing, error) {
	const query = `
        SELECT issues.id AS issue_id, users.name AS user_name, books.title AS book_title,
               issues.issue_date, issues.due_date
        FROM issues
        JOIN users ON issues.user_id = users.id
        JOIN books ON issues.book_id = books.id
        WHERE issues.returned_at IS NULL
        ORDER BY issues.id`
	var rows []activeIssueListingRow
	if err := d.db.Select(&rows, query); err != nil {
		return nil, err
	}

	listings := make([]*ActiveIssueListing, 0, len(rows))
	for _, r := range rows {
		issued, err := parseTimestamp(r.IssueDate)
		if err != nil {
			return nil, err
		}
		due, err := parseTimestamp(r.DueDate)
		if err != nil {
			return nil, err
		}
		listings = append(listings, &ActiveIssueListing{
			IssueID:   r.IssueID,
			UserName:  r.UserName,
			BookTitle: r.BookTitle,
			IssueDate: issued,
			DueDate:   due,
		})
	}
	return listings, nil
}

// SearchBooks returns books whose title or author contains the keyword,
// using the store's default LIKE comparison. An empty keyword matches every
// book, as a substring of everything.
func (d *Database) SearchBooks(keyword string) ([]*Book, error) {
	pattern := "%" + keyword + "%"
	query, args, err := dialect.From("books").
		Select(
			goqu.C("id"),
			goqu.C("title"),
			goqu.COALESCE(goqu.C("author"), goqu.V("")).As("author"),
			goqu.C("total_copies"),
		).
		Where(goqu.Or(
			goqu.C("title").Like(pattern),
			goqu.C("author").Like(pattern),
		)).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, err
	}

	var books []*Book
	if err := d.db.Select(&books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}
