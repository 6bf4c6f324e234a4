package cli

import (
	"fmt"

	"github.com/mrlokans/librarian/internal/report"
	"github.com/mrlokans/librarian/internal/services"
)

func (m *Menu) bookMenu() error {
	for {
		m.con.clearScreen()
		m.con.println()
		m.con.println("*** Book Management ***")
		m.con.println("1. Add Book")
		m.con.println("2. Update Book")
		m.con.println("3. List Book")
		m.con.println("4. Delete Book")
		m.con.println("5. Search Book")
		m.con.println("6. Back")
		choice, err := m.choose("\nEnter choice: ", "Menu")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.log.Info("Create Book: Start")
			in, err := m.ask("\nEnter Book Title: ", "\nEnter Book Author: ", "\nEnter Book ISBN: ")
			if err != nil {
				return err
			}
			if _, err := m.app.Books.Add(in[0], in[1], in[2]); settle(err) != nil {
				return err
			}
		case "2":
			m.log.Info("Update Book: Start")
			m.con.println("\nEnter value to update OR just press 'Enter' with empty value to not update that.")
			in, err := m.ask(
				"\nEnter ISBN to update (compulsory): ",
				"\nEnter Title to Update or leave it empty: ",
				"\nEnter Author to Update or leave it empty: ",
			)
			if err != nil {
				return err
			}
			if _, err := m.app.Books.Update(in[0], in[1], in[2]); settle(err) != nil {
				return err
			}
		case "3":
			m.log.Info("List Book: Start")
			m.con.println()
			if err := report.Books(m.con.out, m.app.Books.List()); err != nil {
				return err
			}
			m.con.println()
		case "4":
			m.log.Info("Delete Book: Start")
			isbn, err := m.con.prompt("\nEnter isbn of Book to Delete: ")
			if err != nil {
				return err
			}
			if err := settle(m.app.Books.Delete(isbn)); err != nil {
				return err
			}
		case "5":
			m.con.clearScreen()
			m.log.Info("Search Book: Start")
			if err := m.bookSearchMenu(); err != nil {
				return err
			}
			continue
		case "6":
			m.log.Info("Move Back")
			m.con.clearScreen()
			return nil
		default:
			if err := m.invalidChoice(); err != nil {
				return err
			}
			continue
		}

		if err := m.finish(); err != nil {
			return err
		}
	}
}

func (m *Menu) bookSearchMenu() error {
	fields := map[string]struct {
		by    services.BookField
		label string
	}{
		"1": {services.BookByTitle, "\nEnter book title: "},
		"2": {services.BookByAuthor, "\nEnter book author: "},
		"3": {services.BookByISBN, "\nEnter book isbn: "},
	}

	for {
		m.con.println()
		m.con.println("\nChoose search method:-")
		m.con.println("1. Title")
		m.con.println("2. Author")
		m.con.println("3. ISBN")
		m.con.println("4. Back")
		choice, err := m.choose("\nEnter Choice: ", "Search Menu")
		if err != nil {
			return err
		}

		if choice == "4" {
			m.log.Info("Exit Search Menu")
			m.con.clearScreen()
			return nil
		}
		field, ok := fields[choice]
		if !ok {
			m.con.clearScreen()
			m.con.println(fmt.Sprintf("Invalid choice %s, please choose again.", choice))
			m.log.Info(fmt.Sprintf("Invalid choice %s. Retry.", choice))
			continue
		}

		m.log.Info(fmt.Sprintf("User chose to search by %s", field.by))
		value, err := m.con.prompt(field.label)
		if err != nil {
			return err
		}
		books, err := m.app.Books.Find(value, field.by)
		if err := settle(err); err != nil {
			return err
		}
		if err == nil {
			m.con.println("\nBook Found:")
			m.con.println()
			if err := report.Books(m.con.out, books); err != nil {
				return err
			}
		}
		if err := m.finish(); err != nil {
			return err
		}
	}
}
