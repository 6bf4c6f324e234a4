package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/librarian/internal/audit"
	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/entrypoint"
	"github.com/mrlokans/librarian/internal/report"
)

func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func usage(fs *flag.FlagSet, synopsis, description string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s\n\n", os.Args[0], synopsis)
		fmt.Fprintf(os.Stderr, "%s\n", description)
		if hasFlags(fs) {
			fmt.Fprintf(os.Stderr, "\nOptions:\n")
			fs.PrintDefaults()
		}
	}
}

func hasFlags(fs *flag.FlagSet) bool {
	found := false
	fs.VisitAll(func(*flag.Flag) { found = true })
	return found
}

func run(fn func(app *entrypoint.App) error) error {
	return entrypoint.Run(config.NewConfig(), fn)
}

// BooksCommand prints the whole catalog.
type BooksCommand struct{}

func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)
	fs.Usage = usage(fs, "books", "List every book in the catalog.")
	return fs.Parse(args)
}

func (cmd *BooksCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		return report.Books(app.Out, app.Books.List())
	})
}

// MembersCommand prints the member directory.
type MembersCommand struct{}

func NewMembersCommand() *MembersCommand {
	return &MembersCommand{}
}

func (cmd *MembersCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("members", flag.ExitOnError)
	fs.Usage = usage(fs, "members", "List every registered member.")
	return fs.Parse(args)
}

func (cmd *MembersCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		return report.Members(app.Out, app.Members.List())
	})
}

// AvailableCommand prints the books that can be checked out.
type AvailableCommand struct{}

func NewAvailableCommand() *AvailableCommand {
	return &AvailableCommand{}
}

func (cmd *AvailableCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("available", flag.ExitOnError)
	fs.Usage = usage(fs, "available", "List the books currently on the shelf.")
	return fs.Parse(args)
}

func (cmd *AvailableCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		fmt.Fprintln(app.Out, "Following are the currently available books:")
		return report.Books(app.Out, app.Transactions.ListAvailable())
	})
}

// HistoryCommand prints one member's checkouts and checkins.
type HistoryCommand struct {
	MemberID string
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	fs.StringVar(&cmd.MemberID, "member", "", "Member id (required)")
	fs.Usage = usage(fs, "history -member <id>", "List all checkins and checkouts of a member, oldest first.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.MemberID) == "" {
		return fmt.Errorf("required flag -member not provided")
	}
	return nil
}

func (cmd *HistoryCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		txs, err := app.Transactions.ListForMember(cmd.MemberID)
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "All checkins and checkouts of User %s:\n\n", normalizeID(cmd.MemberID))
		return report.Transactions(app.Out, txs)
	})
}

// LendCommand is shared by checkout and checkin.
type LendCommand struct {
	Action   entities.TransactionAction
	MemberID string
	ISBN     string
}

func NewCheckoutCommand() *LendCommand {
	return &LendCommand{Action: entities.ActionCheckout}
}

func NewCheckinCommand() *LendCommand {
	return &LendCommand{Action: entities.ActionCheckin}
}

func (cmd *LendCommand) ParseFlags(args []string) error {
	name := string(cmd.Action)
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&cmd.MemberID, "member", "", "Member id (required)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "Book ISBN (required)")

	description := "Lend a book to a member."
	if cmd.Action == entities.ActionCheckin {
		description = "Return a book a member has borrowed."
	}
	fs.Usage = usage(fs, name+" -member <id> -isbn <isbn>", description)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(cmd.MemberID) == "" {
		return fmt.Errorf("required flag -member not provided")
	}
	if strings.TrimSpace(cmd.ISBN) == "" {
		return fmt.Errorf("required flag -isbn not provided")
	}
	return nil
}

func (cmd *LendCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		var err error
		if cmd.Action == entities.ActionCheckout {
			_, err = app.Transactions.Checkout(cmd.MemberID, cmd.ISBN)
		} else {
			_, err = app.Transactions.Checkin(cmd.MemberID, cmd.ISBN)
		}
		return err
	})
}

// BackupCommand writes a snapshot of the dataset to the backup directory.
type BackupCommand struct{}

func NewBackupCommand() *BackupCommand {
	return &BackupCommand{}
}

func (cmd *BackupCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	fs.Usage = usage(fs, "backup", "Write users, books and transactions to one timestamped JSON file in BACKUP_DIR.")
	return fs.Parse(args)
}

func (cmd *BackupCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		path, err := app.Backup()
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Snapshot written to %s\n", path)
		return nil
	})
}

// AuditCommand shows, and optionally prunes, the audit trail.
type AuditCommand struct {
	Limit      int
	EntityType entities.AuditEntityType
	MemberID   string
	Prune      bool
}

func NewAuditCommand() *AuditCommand {
	return &AuditCommand{}
}

func (cmd *AuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	var entityType string
	fs.IntVar(&cmd.Limit, "limit", 20, "Number of events to show")
	fs.StringVar(&entityType, "type", "", "Only show events for: book, member, transaction or dataset")
	fs.StringVar(&cmd.MemberID, "member", "", "Only show transactions of this member")
	fs.BoolVar(&cmd.Prune, "prune", false, "Delete events older than AUDIT_RETENTION_DAYS first")
	fs.Usage = usage(fs, "audit [options]", "Show the most recent catalog changes and rejections.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	t, ok := audit.ParseEntityType(entityType)
	if !ok {
		return fmt.Errorf("unknown entity type %q", entityType)
	}
	cmd.EntityType = t
	return nil
}

func (cmd *AuditCommand) Run() error {
	return run(func(app *entrypoint.App) error {
		if app.Audit == nil {
			fmt.Fprintln(app.Out, "Audit trail is disabled (AUDIT_ENABLED=false).")
			return nil
		}

		if cmd.Prune {
			deleted, err := app.Audit.DeleteOldEvents(app.AuditRetention())
			if err != nil {
				return fmt.Errorf("failed to prune audit events: %w", err)
			}
			fmt.Fprintf(app.Out, "Pruned %d audit events older than %d days\n\n", deleted, app.Config.Audit.RetentionDays)
		}

		var (
			events []entities.AuditEvent
			total  int64
			err    error
		)
		if cmd.MemberID != "" {
			events, total, err = app.Audit.GetEventsForMember(normalizeID(cmd.MemberID), cmd.Limit, 0)
		} else {
			events, total, err = app.Audit.GetEvents(cmd.EntityType, cmd.Limit, 0)
		}
		if err != nil {
			return fmt.Errorf("failed to read audit events: %w", err)
		}

		if err := report.AuditEvents(app.Out, events); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "\nShowing %d of %d events\n", len(events), total)
		return nil
	})
}
