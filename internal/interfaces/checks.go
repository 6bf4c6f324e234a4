package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"io"
	"log/slog"

	"github.com/mrlokans/librarian/internal/audit"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/logging"
	"github.com/mrlokans/librarian/internal/services"
	"github.com/mrlokans/librarian/internal/storage"
)

// =============================================================================
// Record Store
// =============================================================================

// Store implementations
var _ services.Store = (*storage.Store)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

// Auditor implementations
var _ services.Auditor = (*audit.Service)(nil)
var _ services.Auditor = services.NopAuditor{}

// Closed by the entrypoint on shutdown
var _ io.Closer = (*database.Database)(nil)

// =============================================================================
// Logging
// =============================================================================

// Logger implementations
var _ logging.Logger = (*slog.Logger)(nil)
