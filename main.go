package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"library-circulation/library"
)

var (
	flagDBPath string
	flagSeed   bool
)

var rootCmd = &cobra.Command{
	Use:   "library-circulation",
	Short: "Single-tenant library circulation tracker over SQLite",
	RunE:  runMenu,
}

func init() {
	rootCmd.Flags().StringVar(&flagDBPath, "db", "", "path to the SQLite database (overrides LIBRARY_DB_PATH)")
	rootCmd.Flags().BoolVar(&flagSeed, "seed", false, "load sample users and books into an empty database")
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg := library.LoadConfig()
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}

	mgr, err := library.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer mgr.Close()

	log.Info().Str("db", cfg.DBPath).Int("loan_days", cfg.LoanDays).
		Float64("fine_per_day", cfg.FinePerDay).Msg("database opened")

	if flagSeed {
		if err := mgr.SeedIfEmpty(); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info().Msg("sample data loaded")
	}

	// Interrupt during the menu loop releases the connection and exits 0.
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		fmt.Println("\nInterrupted. Exiting.")
		mgr.Close()
		os.Exit(0)
	}()

	fmt.Println("Welcome to the Library Circulation Tracker (SQLite).")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nMenu:")
		fmt.Println("1. List books")
		fmt.Println("2. List users")
		fmt.Println("3. Add user")
		fmt.Println("4. Add book")
		fmt.Println("5. Search books")
		fmt.Println("6. Issue book")
		fmt.Println("7. Return book")
		fmt.Println("8. List active issues")
		fmt.Println("9. Exit")
		fmt.Print("Choose (1-9): ")

		if !scanner.Scan() {
			return nil
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			handleListBooks(mgr)
		case "2":
			handleListUsers(mgr)
		case "3":
			handleAddUser(scanner, mgr)
		case "4":
			handleAddBook(scanner, mgr)
		case "5":
			handleSearchBooks(scanner, mgr)
		case "6":
			handleIssueBook(scanner, mgr)
		case "7":
			handleReturnBook(scanner, mgr)
		case "8":
			handleListActiveIssues(mgr)
		case "9":
			fmt.Println("Goodbye.")
			return nil
		default:
			fmt.Println("Invalid choice. Try again.")
		}
	}
}

func handleListBooks(mgr *library.Manager) {
	books, err := mgr.ListBooks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books in library.")
		return
	}
	for _, b := range books {
		fmt.Printf("ID:%d | %s by %s | copies:%d | available:%d\n",
			b.ID, b.Title, b.Author, b.TotalCopies, b.Available)
	}
}

func handleListUsers(mgr *library.Manager) {
	users, err := mgr.ListUsers()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No users registered.")
		return
	}
	for _, u := range users {
		fmt.Printf("ID:%d | %s (%s)\n", u.ID, u.Name, u.Role)
	}
}

func handleAddUser(sc *bufio.Scanner, mgr *library.Manager) {
	name := promptLine(sc, "Name: ")
	role := promptLine(sc, "Role (student/teacher/librarian) [student]: ")
	if role == "" {
		role = string(library.RoleStudent)
	}

	id, err := mgr.AddUser(name, library.Role(role))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Added user id: %d\n", id)
}

func handleAddBook(sc *bufio.Scanner, mgr *library.Manager) {
	title := promptLine(sc, "Title: ")
	author := promptLine(sc, "Author: ")
	copies, err := promptInt(sc, "Copies [1]: ", 1)
	if err != nil {
		fmt.Printf("Invalid number: %v\n", err)
		return
	}

	id, err := mgr.AddBook(title, author, copies)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Added book id: %d\n", id)
}

func handleSearchBooks(sc *bufio.Scanner, mgr *library.Manager) {
	keyword := promptLine(sc, "Keyword: ")
	books, err := mgr.SearchBooks(keyword)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Printf("No books found matching %q.\n", keyword)
		return
	}
	for _, b := range books {
		fmt.Printf("ID:%d | %s by %s | total:%d\n", b.ID, b.Title, b.Author, b.TotalCopies)
	}
}

func handleIssueBook(sc *bufio.Scanner, mgr *library.Manager) {
	handleListUsers(mgr)
	userID, err := promptInt64(sc, "User ID: ")
	if err != nil {
		fmt.Printf("Invalid user ID: %v\n", err)
		return
	}

	handleListBooks(mgr)
	bookID, err := promptInt64(sc, "Book ID: ")
	if err != nil {
		fmt.Printf("Invalid book ID: %v\n", err)
		return
	}

	loanDays, err := promptInt(sc, fmt.Sprintf("Loan days [%d]: ", mgr.Config().LoanDays), mgr.Config().LoanDays)
	if err != nil {
		fmt.Printf("Invalid number: %v\n", err)
		return
	}

	issueID, err := mgr.IssueBookFor(userID, bookID, loanDays, time.Time{})
	if err != nil {
		if isBusinessError(err) {
			fmt.Printf("Success: false Info: %v\n", err)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}
	fmt.Printf("Success: true Info: issue id %d\n", issueID)
}

func handleReturnBook(sc *bufio.Scanner, mgr *library.Manager) {
	handleListActiveIssues(mgr)
	issueID, err := promptInt64(sc, "Issue ID to return: ")
	if err != nil {
		fmt.Printf("Invalid issue ID: %v\n", err)
		return
	}

	finePerDay, err := promptFloat(sc, fmt.Sprintf("Fine per late day [%g]: ", mgr.Config().FinePerDay), mgr.Config().FinePerDay)
	if err != nil {
		fmt.Printf("Invalid number: %v\n", err)
		return
	}

	res, err := mgr.ReturnBookAt(issueID, time.Time{}, finePerDay)
	if err != nil {
		if isBusinessError(err) {
			fmt.Printf("Success: false Info: %v\n", err)
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		return
	}
	fmt.Printf("Success: true Info: fine %.2f, late days %d\n", res.Fine, res.LateDays)
}

func handleListActiveIssues(mgr *library.Manager) {
	issues, err := mgr.ListActiveIssues()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(issues) == 0 {
		fmt.Println("No active issues.")
		return
	}
	for _, i := range issues {
		fmt.Printf("IssueID:%d | User:%s | Book:%s | Issued:%s | Due:%s\n",
			i.IssueID, i.UserName, i.BookTitle,
			i.IssueDate.Format("2006-01-02"), i.DueDate.Format("2006-01-02"))
	}
}

// isBusinessError reports whether err is an expected circulation outcome
// rather than a store-level fault.
func isBusinessError(err error) bool {
	return errors.Is(err, library.ErrUserNotFound) ||
		errors.Is(err, library.ErrBookNotFound) ||
		errors.Is(err, library.ErrNoCopiesAvailable) ||
		errors.Is(err, library.ErrIssueNotFound) ||
		errors.Is(err, library.ErrAlreadyReturned)
}

// ------------------ prompt helpers ------------------

func promptLine(sc *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

func promptInt(sc *bufio.Scanner, prompt string, def int) (int, error) {
	s := promptLine(sc, prompt)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func promptInt64(sc *bufio.Scanner, prompt string) (int64, error) {
	s := promptLine(sc, prompt)
	return strconv.ParseInt(s, 10, 64)
}

func promptFloat(sc *bufio.Scanner, prompt string, def float64) (float64, error) {
	s := promptLine(sc, prompt)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}
