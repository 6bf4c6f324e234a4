package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/librarian/internal/cli"
	"github.com/mrlokans/librarian/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "menu" command, run the interactive menus
	if len(os.Args) < 2 || os.Args[1] == "menu" {
		var args []string
		if len(os.Args) > 1 {
			args = os.Args[2:]
		}
		execute(cli.NewMenuCommand(), args)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	switch name {
	case "books":
		execute(cli.NewBooksCommand(), args)
	case "members":
		execute(cli.NewMembersCommand(), args)
	case "available":
		execute(cli.NewAvailableCommand(), args)
	case "history":
		execute(cli.NewHistoryCommand(), args)
	case "checkout":
		execute(cli.NewCheckoutCommand(), args)
	case "checkin":
		execute(cli.NewCheckinCommand(), args)
	case "backup":
		execute(cli.NewBackupCommand(), args)
	case "audit":
		execute(cli.NewAuditCommand(), args)

	case "version":
		fmt.Printf("lms %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
}

func execute(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		if !entrypoint.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(entrypoint.ExitCode(err))
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  menu        Interactive library management menus (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  books       List the catalog\n")
	fmt.Fprintf(os.Stderr, "  members     List registered members\n")
	fmt.Fprintf(os.Stderr, "  available   List books that can be checked out\n")
	fmt.Fprintf(os.Stderr, "  history     List a member's checkouts and checkins\n")
	fmt.Fprintf(os.Stderr, "  checkout    Lend a book to a member\n")
	fmt.Fprintf(os.Stderr, "  checkin     Return a borrowed book\n")
	fmt.Fprintf(os.Stderr, "  backup      Write a snapshot of all data to BACKUP_DIR\n")
	fmt.Fprintf(os.Stderr, "  audit       Show or prune the audit trail\n")
	fmt.Fprintf(os.Stderr, "  version     Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nExit status is 1 after a fatal error and 2 when an operation is rejected.\n")
}
