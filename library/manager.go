package library

import "time"

// Manager is a thin façade over the Database, applying configured defaults so
// CLI code stays simple. The store handle is passed explicitly; there is no
// package-level state.
type Manager struct {
	db  *Database
	cfg Config
}

// NewManager opens (or creates) the SQLite database at cfg.DBPath.
func NewManager(cfg Config) (*Manager, error) {
	db, err := NewDatabase(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if cfg.LoanDays <= 0 {
		cfg.LoanDays = DefaultLoanDays
	}
	if cfg.FinePerDay < 0 {
		cfg.FinePerDay = DefaultFinePerDay
	}
	return &Manager{db: db, cfg: cfg}, nil
}

// Close closes the underlying database.
func (m *Manager) Close() error { return m.db.Close() }

// Config returns the effective configuration.
func (m *Manager) Config() Config { return m.cfg }

// ------------------ Catalog & patrons ------------------

func (m *Manager) AddUser(name string, role Role) (int64, error) { return m.db.AddUser(name, role) }

func (m *Manager) AddBook(title, author string, totalCopies int) (int64, error) {
	return m.db.AddBook(title, author, totalCopies)
}

func (m *Manager) GetUser(id int64) (*User, error)   { return m.db.GetUser(id) }
func (m *Manager) GetBook(id int64) (*Book, error)   { return m.db.GetBook(id) }
func (m *Manager) GetIssue(id int64) (*Issue, error) { return m.db.GetIssue(id) }

// ------------------ Circulation ------------------

// IssueBook lends a book using the configured loan duration, issued now.
func (m *Manager) IssueBook(userID, bookID int64) (int64, error) {
	return m.db.IssueBook(userID, bookID, m.cfg.LoanDays, time.Time{})
}

// IssueBookFor lends a book for an explicit duration; a zero issuedAt means
// "now". loanDays <= 0 falls back to the configured default.
func (m *Manager) IssueBookFor(userID, bookID int64, loanDays int, issuedAt time.Time) (int64, error) {
	if loanDays <= 0 {
		loanDays = m.cfg.LoanDays
	}
	return m.db.IssueBook(userID, bookID, loanDays, issuedAt)
}

// ReturnBook closes an issue using the configured fine rate, returned now.
func (m *Manager) ReturnBook(issueID int64) (*ReturnResult, error) {
	return m.db.ReturnBook(issueID, time.Time{}, m.cfg.FinePerDay)
}

// ReturnBookAt closes an issue with an explicit return time and fine rate; a
// zero returnedAt means "now". A negative finePerDay falls back to the
// configured default.
func (m *Manager) ReturnBookAt(issueID int64, returnedAt time.Time, finePerDay float64) (*ReturnResult, error) {
	if finePerDay < 0 {
		finePerDay = m.cfg.FinePerDay
	}
	return m.db.ReturnBook(issueID, returnedAt, finePerDay)
}

// CountActiveIssues exposes the inventory helper.
func (m *Manager) CountActiveIssues(bookID int64) (int, error) {
	return m.db.CountActiveIssues(bookID)
}

// ------------------ Read views ------------------

func (m *Manager) ListBooks() ([]*BookListing, error) { return m.db.ListBooks() }

func (m *Manager) ListUsers() ([]*User, error) { return m.db.ListUsers() }

func (m *Manager) ListActiveIssues() ([]*ActiveIssueListing, error) { return m.db.ListActiveIssues() }

func (m *Manager) SearchBooks(keyword string) ([]*Book, error) { return m.db.SearchBooks(keyword) }

// ------------------ Seeding ------------------

// SeedIfEmpty loads the sample catalog when the store is empty.
func (m *Manager) SeedIfEmpty() error { return m.db.SeedIfEmpty() }
