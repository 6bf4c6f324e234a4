// Package database owns the SQLite connection behind the audit trail.
//
// The catalog itself lives in JSON files (see the storage package); this
// database only holds an append-mostly log of what changed and what was
// rejected.
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── audit/           # Audit event queries and retention
//
// Sub-packages follow one pattern: a Repository struct wrapping *gorm.DB,
// built with NewRepository(db *gorm.DB).
package database
