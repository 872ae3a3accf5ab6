package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"library-circulation/library"
)

// Standalone seeder: loads the sample catalog into an empty database and
// prints what ended up in it.
func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := library.LoadConfig()
	mgr, err := library.NewManager(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("db", cfg.DBPath).Msg("open database")
	}
	defer mgr.Close()

	if err := mgr.SeedIfEmpty(); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Str("db", cfg.DBPath).Msg("sample data loaded")

	books, err := mgr.ListBooks()
	if err != nil {
		log.Fatal().Err(err).Msg("list books")
	}
	users, err := mgr.ListUsers()
	if err != nil {
		log.Fatal().Err(err).Msg("list users")
	}

	fmt.Printf("%d user(s):\n", len(users))
	for _, u := range users {
		fmt.Printf("  ID:%d | %s (%s)\n", u.ID, u.Name, u.Role)
	}
	fmt.Printf("%d book(s):\n", len(books))
	for _, b := range books {
		fmt.Printf("  ID:%d | %s by %s | copies:%d | available:%d\n",
			b.ID, b.Title, b.Author, b.TotalCopies, b.Available)
	}
}
