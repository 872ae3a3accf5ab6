package library

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the circulation tracker.
type Config struct {
	DBPath     string  // SQLite database file path
	LoanDays   int     // default loan duration in calendar days
	FinePerDay float64 // default fine per late calendar day
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment, falling back to the circulation-desk defaults.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:     getenv("LIBRARY_DB_PATH", "library.db"),
		LoanDays:   getenvInt("LIBRARY_LOAN_DAYS", DefaultLoanDays),
		FinePerDay: getenvFloat("LIBRARY_FINE_PER_DAY", DefaultFinePerDay),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return f
		}
	}
	return def
}
