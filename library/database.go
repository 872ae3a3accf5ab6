package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Database provides high-level helpers around a SQLite connection. It is the
// only component that touches persistent state; every decision the
// circulation operations make is recomputed from stored rows on each call.
type Database struct {
	db *sqlx.DB

	addUserStmt *sqlx.Stmt
	addBookStmt *sqlx.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// SQLite ships with foreign keys off; the issues table relies on them.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.addUserStmt != nil {
		d.addUserStmt.Close()
	}
	if d.addBookStmt != nil {
		d.addBookStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sqlx.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            role TEXT NOT NULL CHECK(role IN ('student','teacher','librarian')),
            created_at TEXT NOT NULL DEFAULT (DATETIME('now'))
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT,
            total_copies INTEGER NOT NULL CHECK(total_copies >= 0),
            created_at TEXT NOT NULL DEFAULT (DATETIME('now'))
        );`,
		`CREATE TABLE IF NOT EXISTS issues (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE,
            issue_date TEXT NOT NULL,
            due_date TEXT NOT NULL,
            returned_at TEXT,
            fine REAL DEFAULT 0
        );`,
		`CREATE INDEX IF NOT EXISTS idx_issues_open ON issues(book_id) WHERE returned_at IS NULL;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addUserStmt, err = d.db.Preparex(`INSERT INTO users(name,role) VALUES(?,?)`); err != nil {
		return err
	}
	if d.addBookStmt, err = d.db.Preparex(`INSERT INTO books(title,author,total_copies) VALUES(?,?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// AddUser registers a patron and returns the generated id.
func (d *Database) AddUser(name string, role Role) (int64, error) {
	if name == "" {
		return 0, errors.New("user name must not be empty")
	}
	if !role.Valid() {
		return 0, fmt.Errorf("invalid role %q", role)
	}
	res, err := d.addUserStmt.Exec(name, string(role))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// AddBook inserts a catalog entry. An empty author is stored as NULL.
func (d *Database) AddBook(title, author string, totalCopies int) (int64, error) {
	if title == "" {
		return 0, errors.New("book title must not be empty")
	}
	if totalCopies < 0 {
		return 0, fmt.Errorf("total copies must be >= 0, got %d", totalCopies)
	}
	var authorVal sql.NullString
	if author != "" {
		authorVal = sql.NullString{String: author, Valid: true}
	}
	res, err := d.addBookStmt.Exec(title, authorVal, totalCopies)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ---------------------------------------------------------------------------
// Single-row reads
// ---------------------------------------------------------------------------

// GetUser fetches a single user; ErrUserNotFound for unknown ids.
func (d *Database) GetUser(id int64) (*User, error) {
	var u User
	err := d.db.Get(&u, `SELECT id, name, role FROM users WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetBook fetches a single book; ErrBookNotFound for unknown ids.
func (d *Database) GetBook(id int64) (*Book, error) {
	var b Book
	err := d.db.Get(&b, `SELECT id, title, COALESCE(author,'') AS author, total_copies FROM books WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetIssue fetches a single loan record; ErrIssueNotFound for unknown ids.
func (d *Database) GetIssue(id int64) (*Issue, error) {
	var row issueRow
	err := d.db.Get(&row, `SELECT id, user_id, book_id, issue_date, due_date, returned_at, fine FROM issues WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toIssue()
}

// ---------------------------------------------------------------------------
// Inventory query
// ---------------------------------------------------------------------------

// CountActiveIssues counts open loans for a book. An unknown book id yields 0,
// not an error; callers that need existence must check the book themselves.
func (d *Database) CountActiveIssues(bookID int64) (int, error) {
	var n int
	if err := d.db.Get(&n, `SELECT COUNT(*) FROM issues WHERE book_id=? AND returned_at IS NULL`, bookID); err != nil {
		return 0, err
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Timestamp handling
// ---------------------------------------------------------------------------

// Timestamps cross the storage boundary as ISO-8601 (RFC 3339) strings.

type issueRow struct {
	ID         int64          `db:"id"`
	UserID     int64          `db:"user_id"`
	BookID     int64          `db:"book_id"`
	IssueDate  string         `db:"issue_date"`
	DueDate    string         `db:"due_date"`
	ReturnedAt sql.NullString `db:"returned_at"`
	Fine       float64        `db:"fine"`
}

func (r *issueRow) toIssue() (*Issue, error) {
	issued, err := parseTimestamp(r.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("issue %d: bad issue_date: %w", r.ID, err)
	}
	due, err := parseTimestamp(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("issue %d: bad due_date: %w", r.ID, err)
	}
	issue := &Issue{
		ID:        r.ID,
		UserID:    r.UserID,
		BookID:    r.BookID,
		IssueDate: issued,
		DueDate:   due,
		Fine:      r.Fine,
	}
	if r.ReturnedAt.Valid {
		returned, err := parseTimestamp(r.ReturnedAt.String)
		if err != nil {
			return nil, fmt.Errorf("issue %d: bad returned_at: %w", r.ID, err)
		}
		issue.ReturnedAt = &returned
	}
	return issue, nil
}

func formatTimestamp(t time.Time) string { return t.Format(time.RFC3339Nano) }

func parseTimestamp(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }
