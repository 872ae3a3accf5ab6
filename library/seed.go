package library

// SeedIfEmpty inserts sample users and books, but only into empty tables, so
// repeated runs leave existing data untouched.
func (d *Database) SeedIfEmpty() error {
	var userCount int
	if err := d.db.Get(&userCount, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if userCount == 0 {
		seedUsers := []struct {
			name string
			role Role
		}{
			{"Alice", RoleStudent},
			{"Bob", RoleStudent},
			{"Libby", RoleLibrarian},
		}
		for _, u := range seedUsers {
			if _, err := d.AddUser(u.name, u.role); err != nil {
				return err
			}
		}
	}

	var bookCount int
	if err := d.db.Get(&bookCount, `SELECT COUNT(*) FROM books`); err != nil {
		return err
	}
	if bookCount == 0 {
		seedBooks := []struct {
			title  string
			author string
			copies int
		}{
			{"1984", "George Orwell", 2},
			{"Clean Code", "Robert C. Martin", 1},
			{"Introduction to Algorithms", "CLRS", 1},
		}
		for _, b := range seedBooks {
			if _, err := d.AddBook(b.title, b.author, b.copies); err != nil {
				return err
			}
		}
	}

	return nil
}
