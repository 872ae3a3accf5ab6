package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LIBRARY_DB_PATH", "")
	t.Setenv("LIBRARY_LOAN_DAYS", "")
	t.Setenv("LIBRARY_FINE_PER_DAY", "")

	cfg := LoadConfig()
	assert.Equal(t, "library.db", cfg.DBPath)
	assert.Equal(t, DefaultLoanDays, cfg.LoanDays)
	assert.Equal(t, DefaultFinePerDay, cfg.FinePerDay)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LIBRARY_DB_PATH", "/tmp/other.db")
	t.Setenv("LIBRARY_LOAN_DAYS", "7")
	t.Setenv("LIBRARY_FINE_PER_DAY", "0.5")

	cfg := LoadConfig()
	assert.Equal(t, "/tmp/other.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.LoanDays)
	assert.Equal(t, 0.5, cfg.FinePerDay)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Setenv("LIBRARY_LOAN_DAYS", "-3")
	t.Setenv("LIBRARY_FINE_PER_DAY", "not-a-number")

	cfg := LoadConfig()
	assert.Equal(t, DefaultLoanDays, cfg.LoanDays)
	assert.Equal(t, DefaultFinePerDay, cfg.FinePerDay)
}
