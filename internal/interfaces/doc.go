// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Record Store
//
//   - Store: the dataset the services mutate, plus Save and the presence
//     guard (internal/services/interfaces.go). Implemented by storage.Store,
//     which mirrors the dataset onto users.json, books.json and
//     transactions.json.
//
// ## Audit
//
//   - Auditor: receives one event per catalog change or rejection
//     (internal/services/interfaces.go). audit.Service stores events in
//     SQLite; services.NopAuditor drops them when AUDIT_ENABLED=false.
//
// ## Logging
//
//   - Logger: leveled sink injected into the store, the validator and every
//     service (internal/logging/logging.go). *slog.Logger satisfies it.
//
// # Adding a New Service
//
//  1. Take the Store, an Auditor, the user-facing io.Writer and a Logger in
//     the constructor, and call store.ValidatePresence() there.
//
//  2. Report each outcome to both the writer and the log. Return one of the
//     services rejection errors for outcomes the user can recover from.
//
//  3. Wire it in entrypoint.New and add a menu or command in internal/cli.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
