package library

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultLoanDays and DefaultFinePerDay mirror the historical defaults of the
// circulation desk.
const (
	DefaultLoanDays   = 14
	DefaultFinePerDay = 1.0
)

// IssueBook lends a book to a user. A zero issuedAt means "now". The
// eligibility check and the insert run in one transaction so a concurrent
// caller cannot drive available copies negative.
//
// Business outcomes: ErrUserNotFound, ErrBookNotFound, ErrNoCopiesAvailable.
// On success the new issue id is returned.
func (d *Database) IssueBook(userID, bookID int64, loanDays int, issuedAt time.Time) (int64, error) {
	if loanDays <= 0 {
		return 0, fmt.Errorf("loan days must be positive, got %d", loanDays)
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	tx, err := d.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id=?)`, userID); err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrUserNotFound
	}

	var totalCopies int
	err = tx.Get(&totalCopies, `SELECT total_copies FROM books WHERE id=?`, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBookNotFound
	}
	if err != nil {
		return 0, err
	}

	var active int
	if err := tx.Get(&active, `SELECT COUNT(*) FROM issues WHERE book_id=? AND returned_at IS NULL`, bookID); err != nil {
		return 0, err
	}
	if active >= totalCopies {
		return 0, ErrNoCopiesAvailable
	}

	dueAt := issuedAt.AddDate(0, 0, loanDays)
	res, err := tx.Exec(`INSERT INTO issues(user_id, book_id, issue_date, due_date) VALUES(?,?,?,?)`,
		userID, bookID, formatTimestamp(issuedAt), formatTimestamp(dueAt))
	if err != nil {
		return 0, err
	}
	issueID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return issueID, tx.Commit()
}

// ReturnBook closes an open issue, computing the late fee. A zero returnedAt
// means "now". A second return attempt is rejected with ErrAlreadyReturned
// rather than silently accepted, so the row is mutated exactly once.
//
// Lateness is measured in whole calendar days between the due date and the
// return date; time-of-day is ignored and early returns clamp to zero.
func (d *Database) ReturnBook(issueID int64, returnedAt time.Time, finePerDay float64) (*ReturnResult, error) {
	if finePerDay < 0 {
		return nil, fmt.Errorf("fine per day must be >= 0, got %g", finePerDay)
	}
	if returnedAt.IsZero() {
		returnedAt = time.Now()
	}

	tx, err := d.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var row issueRow
	err = tx.Get(&row, `SELECT id, user_id, book_id, issue_date, due_date, returned_at, fine FROM issues WHERE id=?`, issueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	if row.ReturnedAt.Valid {
		return nil, ErrAlreadyReturned
	}

	issue, err := row.toIssue()
	if err != nil {
		return nil, err
	}

	lateDays := calendarDaysBetween(issue.DueDate, returnedAt)
	fine := 0.0
	if lateDays > 0 {
		fine = finePerDay * float64(lateDays)
	} else {
		lateDays = 0
	}

	if _, err := tx.Exec(`UPDATE issues SET returned_at=?, fine=? WHERE id=?`,
		formatTimestamp(returnedAt), fine, issueID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &ReturnResult{Fine: fine, LateDays: lateDays}, nil
}

// calendarDaysBetween returns the signed number of whole calendar days from
// a's date to b's date, each taken in its own location.
func calendarDaysBetween(a, b time.Time) int {
	dayA := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	dayB := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(dayB.Sub(dayA).Hours() / 24)
}
