package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/entrypoint"
	"github.com/mrlokans/librarian/internal/logging"
	"github.com/mrlokans/librarian/internal/report"
	"github.com/mrlokans/librarian/internal/services"
)

// MenuCommand runs the interactive menus until the user exits.
type MenuCommand struct {
	NoClear bool
}

func NewMenuCommand() *MenuCommand {
	return &MenuCommand{}
}

func (cmd *MenuCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)

	fs.BoolVar(&cmd.NoClear, "no-clear", false, "Do not clear the screen between menus")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [menu] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Start the interactive library management menus.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MenuCommand) Run() error {
	return entrypoint.Run(config.NewConfig(), func(app *entrypoint.App) error {
		return NewMenu(app, !cmd.NoClear).Run()
	})
}

// Menu is the interactive front end over the three services.
type Menu struct {
	app *entrypoint.App
	con *console
	log logging.Logger
}

func NewMenu(app *entrypoint.App, clearScreen bool) *Menu {
	return &Menu{
		app: app,
		con: newConsole(app.In, app.Out, clearScreen),
		log: app.Log,
	}
}

// Run shows the main menu until the user exits or input runs out. The store
// is reloaded from disk before every main menu iteration.
func (m *Menu) Run() error {
	m.log.Info("--LMS Start--")
	err := m.main()
	if errors.Is(err, errQuit) {
		err = nil
	}
	if err == nil {
		m.summary()
		m.log.Info("--LMS Stopped--")
	}
	return err
}

// summary prints the audit events recorded during this session. Nothing is
// printed when the audit trail is disabled.
func (m *Menu) summary() {
	if m.app.Audit == nil {
		return
	}
	events, err := m.app.Audit.SessionEvents()
	if err != nil {
		m.log.Warn("Failed to load session audit events", "error", err)
		return
	}
	m.con.println("\nActivity this session:")
	if err := report.AuditEvents(m.con.out, events); err != nil {
		m.log.Warn("Failed to print session audit events", "error", err)
	}
}

func (m *Menu) main() error {
	m.con.clearScreen()
	for {
		if err := m.app.Store.Refresh(); err != nil {
			return err
		}
		m.log.Info("Enter LMS Main Menu")

		m.con.println("\n\n****** Library Management System *****")
		m.con.println("1. Book Management Menu")
		m.con.println("2. User Management Menu")
		m.con.println("3. Checkout/Checkin Book Menu")
		m.con.println("4. Exit")
		m.con.println()
		choice, err := m.choose("Enter choice: ", "Main Menu")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.submenu("Book Management Menu", m.bookMenu)
		case "2":
			err = m.submenu("User Management Menu", m.memberMenu)
		case "3":
			err = m.submenu("Transaction Management Menu", m.transactionMenu)
		case "4":
			m.con.clearScreen()
			m.con.println("Exiting. Thank you for using LMS.")
			m.log.Info("Exit LMS Main Menu")
			return nil
		default:
			m.con.clearScreen()
			m.con.println("Invalid choice, please try again.")
			m.log.Info(fmt.Sprintf("Invalid choice: %s for LMS main menu", choice))
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) submenu(name string, run func() error) error {
	m.log.Info("Enter " + name)
	m.con.clearScreen()
	if err := run(); err != nil {
		return err
	}
	m.log.Info("Exit " + name)
	return nil
}

// choose reads a menu selection.
func (m *Menu) choose(label, menu string) (string, error) {
	choice, err := m.con.prompt(label)
	if err != nil {
		return "", err
	}
	choice = strings.TrimSpace(choice)
	m.log.Info(fmt.Sprintf("User chose option %s from %s", choice, menu))
	return choice, nil
}

// settle swallows rejections, which the services already reported, and
// passes anything else up to the session boundary.
func settle(err error) error {
	if err == nil || services.IsRejection(err) {
		return nil
	}
	return err
}

// finish waits for Enter after an action and clears the screen.
func (m *Menu) finish() error {
	if err := m.con.pause("\nPress Enter to continue"); err != nil {
		return err
	}
	m.con.clearScreen()
	return nil
}

func (m *Menu) invalidChoice() error {
	m.log.Info("Invalid choice made. Retry")
	if err := m.con.pause("\nInvalid choice, please try again. Press Enter to continue."); err != nil {
		return err
	}
	m.con.clearScreen()
	return nil
}

// ask collects one answer per label, in order.
func (m *Menu) ask(labels ...string) ([]string, error) {
	answers := make([]string, 0, len(labels))
	for _, label := range labels {
		answer, err := m.con.prompt(label)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
	}
	return answers, nil
}
