package cli

import (
	"fmt"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/report"
	"github.com/mrlokans/librarian/internal/services"
)

func (m *Menu) memberMenu() error {
	for {
		m.con.clearScreen()
		m.con.println()
		m.con.println("*** User Management ***")
		m.con.println("1. Create User")
		m.con.println("2. Update User")
		m.con.println("3. List Users")
		m.con.println("4. Delete User")
		m.con.println("5. Search User")
		m.con.println("6. Back")
		choice, err := m.choose("\nEnter choice: ", "Menu")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.log.Info("Create User: Start")
			in, err := m.ask("\nEnter User Name: ", "\nEnter User Email: ")
			if err != nil {
				return err
			}
			if _, err := m.app.Members.Create(in[0], in[1]); settle(err) != nil {
				return err
			}
		case "2":
			m.log.Info("Update User: Start")
			m.con.println("\nEnter value to update OR just press 'Enter' with empty value to not update that.")
			in, err := m.ask(
				"\nEnter User ID to update (compulsory): ",
				"\nEnter Name to Update or leave it empty: ",
				"\nEnter Email to Update or leave it empty: ",
			)
			if err != nil {
				return err
			}
			if _, err := m.app.Members.Update(in[0], in[1], in[2]); settle(err) != nil {
				return err
			}
		case "3":
			m.log.Info("List User: Start")
			m.con.println()
			if err := report.Members(m.con.out, m.app.Members.List()); err != nil {
				return err
			}
			m.con.println()
		case "4":
			m.log.Info("Delete User: Start")
			id, err := m.con.prompt("\nEnter ID of User to Delete: ")
			if err != nil {
				return err
			}
			if err := settle(m.app.Members.Delete(id)); err != nil {
				return err
			}
		case "5":
			m.con.clearScreen()
			m.log.Info("Search User: Start")
			if err := m.memberSearchMenu(); err != nil {
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

func (m *Menu) memberSearchMenu() error {
	fields := map[string]struct {
		by    services.MemberField
		label string
	}{
		"1": {services.MemberByID, "\nEnter user id: "},
		"2": {services.MemberByName, "\nEnter user name: "},
		"3": {services.MemberByEmail, "\nEnter user email: "},
	}

	for {
		m.con.println()
		m.con.println("\nChoose search method")
		m.con.println("1. User ID")
		m.con.println("2. Name")
		m.con.println("3. Email")
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
			m.con.println(fmt.Sprintf("\nInvalid Choice %s, please choose again.", choice))
			m.log.Info(fmt.Sprintf("Invalid choice %s. Retry.", choice))
			continue
		}

		m.log.Info(fmt.Sprintf("User chose to search by %s", field.by))
		value, err := m.con.prompt(field.label)
		if err != nil {
			return err
		}
		member, err := m.app.Members.Find(value, field.by)
		if err := settle(err); err != nil {
			return err
		}
		if err == nil {
			m.con.println("\nUser Found:")
			m.con.println()
			if err := report.Members(m.con.out, []*entities.Member{member}); err != nil {
				return err
			}
		}
		if err := m.finish(); err != nil {
			return err
		}
	}
}
