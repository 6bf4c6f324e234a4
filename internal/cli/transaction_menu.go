package cli

import (
	"fmt"

	"github.com/mrlokans/librarian/internal/report"
)

func (m *Menu) transactionMenu() error {
	for {
		m.con.clearScreen()
		m.con.println()
		m.con.println("*** Transaction Management ***")
		m.con.println("1. Checkout Book")
		m.con.println("2. Checkin Book")
		m.con.println("3. List Checkins and checkouts")
		m.con.println("4. List Available Books")
		m.con.println("5. Back")
		choice, err := m.choose("\nEnter choice: ", "Menu")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.log.Info("Checkout Book: Start")
			in, err := m.ask("\nInput user id: ", "\nEnter the isbn of book: ")
			if err != nil {
				return err
			}
			if _, err := m.app.Transactions.Checkout(in[0], in[1]); settle(err) != nil {
				return err
			}
		case "2":
			m.log.Info("Checkin Book: Start")
			in, err := m.ask("\nInput user id: ", "\nEnter the isbn of book: ")
			if err != nil {
				return err
			}
			if _, err := m.app.Transactions.Checkin(in[0], in[1]); settle(err) != nil {
				return err
			}
		case "3":
			m.log.Info("List checkins and checkouts: Start")
			id, err := m.con.prompt("\nInput user id: ")
			if err != nil {
				return err
			}
			txs, err := m.app.Transactions.ListForMember(id)
			if err := settle(err); err != nil {
				return err
			}
			if err == nil {
				m.con.println(fmt.Sprintf("All checkins and checkouts of User %s:\n", normalizeID(id)))
				if err := report.Transactions(m.con.out, txs); err != nil {
					return err
				}
				m.con.println()
			}
		case "4":
			m.log.Info("List Available Books: Start")
			m.con.println("Following are the currently available books:")
			if err := report.Books(m.con.out, m.app.Transactions.ListAvailable()); err != nil {
				return err
			}
			m.con.println()
		case "5":
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
