package entrypoint

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/librarian/internal/audit"
	"github.com/mrlokans/librarian/internal/config"
	"github.com/mrlokans/librarian/internal/database"
	auditRepo "github.com/mrlokans/librarian/internal/database/audit"
	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
	"github.com/mrlokans/librarian/internal/services"
	"github.com/mrlokans/librarian/internal/storage"
	"github.com/mrlokans/librarian/internal/validation"
)

// App is one fully wired LMS session: a loaded store and the services
// sharing it.
type App struct {
	Config *config.Config
	Log    logging.Logger
	In     io.Reader
	Out    io.Writer

	Store        *storage.Store
	Books        *services.BookService
	Members      *services.MemberService
	Transactions *services.TransactionService

	// Audit is nil when the audit trail is disabled.
	Audit     *audit.Service
	Snapshots *audit.Snapshotter

	closers []io.Closer
}

// New loads the store and wires every service around it. Any error here is
// fatal: the catalog cannot be trusted without all three collections.
func New(cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	app := &App{
		Config:    cfg,
		Log:       log,
		In:        in,
		Out:       out,
		Snapshots: audit.NewSnapshotter(cfg.Backup.Dir),
	}

	store, err := storage.Open(storage.Options{
		Dir:          cfg.Storage.DataDir,
		AtomicWrites: cfg.Storage.AtomicWrites,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	app.Store = store

	var auditor services.Auditor = services.NopAuditor{}
	if cfg.Audit.Enabled {
		db, err := database.NewDatabase(cfg.Audit.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		app.closers = append(app.closers, db)
		app.Audit = audit.NewService(auditRepo.NewRepository(db.DB), log)
		auditor = app.Audit
		log.Debug("Audit trail enabled", "path", cfg.Audit.DatabasePath, "session", app.Audit.Session())
	}

	validator := validation.New(out, log)

	if app.Books, err = services.NewBookService(store, validator, auditor, out, log); err != nil {
		app.Close()
		return nil, err
	}
	if app.Members, err = services.NewMemberService(store, validator, auditor, out, log); err != nil {
		app.Close()
		return nil, err
	}
	if app.Transactions, err = services.NewTransactionService(store, auditor, out, log); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// Backup writes a snapshot of the dataset as it is on disk right now.
func (a *App) Backup() (string, error) {
	if err := a.Store.Refresh(); err != nil {
		return "", err
	}
	path, err := a.Snapshots.Save(a.Store.Dataset())
	if err != nil {
		return "", err
	}

	a.Log.Info("Dataset snapshot written", "path", path)
	if a.Audit != nil {
		a.Audit.Record(&entities.AuditEvent{
			EntityType:  entities.AuditEntityDataset,
			EntityID:    path,
			Action:      "backup",
			Description: "Wrote dataset snapshot",
			Status:      entities.AuditStatusSuccess,
		})
	}
	return path, nil
}

// AuditRetention is how long `audit -prune` keeps events.
func (a *App) AuditRetention() time.Duration {
	return time.Duration(a.Config.Audit.RetentionDays) * 24 * time.Hour
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run sets up logging, builds the App and hands it to fn inside Guard.
// Standard input and output are the console.
func Run(cfg *config.Config, fn func(app *App) error) error {
	logger, closer, err := logging.New(logging.Config{
		Dir:         cfg.Logging.Dir,
		Level:       cfg.Logging.Level,
		BackupCount: cfg.Logging.BackupCount,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer closer.Close()

	return Guard(logger, os.Stdout, func() error {
		app, err := New(cfg, logger, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logger.Warn("Failed to close resources", "error", err)
			}
		}()
		return fn(app)
	})
}
