package library

import "time"

// Role classifies a library user. The set is fixed; the database enforces it
// with a CHECK constraint and AddUser validates it up front.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleLibrarian Role = "librarian"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleLibrarian:
		return true
	}
	return false
}

// User is a registered patron.
type User struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Role Role   `db:"role" json:"role"`
}

// Book holds catalog metadata. TotalCopies is fixed at creation; availability
// is always derived from open issues, never stored.
type Book struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Author      string `db:"author" json:"author"`
	TotalCopies int    `db:"total_copies" json:"total_copies"`
}

// Issue is one loan record. ReturnedAt is nil while the book is out; Fine is
// meaningful only once the issue is closed.
type Issue struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Fine       float64    `json:"fine"`
}

// Active reports whether the issue is still open.
func (i *Issue) Active() bool { return i.ReturnedAt == nil }

// BookListing is the list_books read-view row: a book plus its derived
// available-copies count.
type BookListing struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Author      string `db:"author" json:"author"`
	TotalCopies int    `db:"total_copies" json:"total_copies"`
	Available   int    `db:"available" json:"available"`
}

// ActiveIssueListing is the list_active_issues read-view row, denormalized
// with the patron name and book title for display.
type ActiveIssueListing struct {
	IssueID   int64     `json:"issue_id"`
	UserName  string    `json:"user_name"`
	BookTitle string    `json:"book_title"`
	IssueDate time.Time `json:"issue_date"`
	DueDate   time.Time `json:"due_date"`
}

// ReturnResult reports the outcome of a successful return. LateDays is
// clamped to zero for on-time returns.
type ReturnResult struct {
	Fine     float64 `json:"fine"`
	LateDays int     `json:"late_days"`
}
