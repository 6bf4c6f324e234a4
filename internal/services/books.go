package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
	"github.com/mrlokans/librarian/internal/validation"
)

// BookService manages the catalog. Every input is trimmed and lower-cased
// before it is validated or compared.
type BookService struct {
	store     Store
	validator *validation.Validator
	audit     Auditor
	notify    notifier
}

// NewBookService fails if the store has not loaded every collection.
func NewBookService(store Store, validator *validation.Validator, audit Auditor, out io.Writer, log logging.Logger) (*BookService, error) {
	if err := store.ValidatePresence(); err != nil {
		return nil, fmt.Errorf("book catalog: %w", err)
	}
	return &BookService{
		store:     store,
		validator: validator,
		audit:     audit,
		notify:    notifier{out: out, log: log},
	}, nil
}

func (s *BookService) books() map[string]*entities.Book {
	return s.store.Dataset().Books
}

// Add inserts a new, available book.
func (s *BookService) Add(title, author, isbn string) (*entities.Book, error) {
	title, author, isbn = normalize(title), normalize(author), normalize(isbn)

	books := s.books()
	if !s.validator.BookData(title, author, isbn, books) {
		return nil, s.invalid(isbn, actionBookAdd)
	}

	books[isbn] = &entities.Book{
		ISBN:      isbn,
		Title:     title,
		Author:    author,
		Available: true,
	}
	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to save book %s: %w", isbn, err)
	}

	s.notify.info("New Book added with ISBN: %s - Title: %s - Author: %s", isbn, title, author)
	s.audit.Record(auditEvent(entities.AuditEntityBook, isbn, actionBookAdd, entities.AuditStatusSuccess,
		fmt.Sprintf("Added book %q by %s", title, author)))
	return s.books()[isbn], nil
}

// Update replaces the title and/or author of a book. Empty fields are left
// untouched. Both provided fields are validated before either is applied.
func (s *BookService) Update(isbn, title, author string) (*entities.Book, error) {
	isbn = normalize(isbn)
	book, ok := s.books()[isbn]
	if !ok {
		return nil, s.reject(isbn, actionBookUpdate, ErrNotFound, "Book with ISBN %s does not exist", isbn)
	}

	title, author = normalize(title), normalize(author)
	if title != "" && !s.validator.Title(title) {
		return nil, s.invalid(isbn, actionBookUpdate)
	}
	if author != "" && !s.validator.AuthorName(author) {
		return nil, s.invalid(isbn, actionBookUpdate)
	}

	if title != "" {
		book.Title = title
	}
	if author != "" {
		book.Author = author
	}
	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to save book %s: %w", isbn, err)
	}

	s.notify.info("Book data with ISBN: %s, updated", isbn)
	s.audit.Record(auditEvent(entities.AuditEntityBook, isbn, actionBookUpdate, entities.AuditStatusSuccess,
		fmt.Sprintf("Updated book %s", isbn)))
	return s.books()[isbn], nil
}

// Delete removes a book. Borrowed lists and transactions that reference it
// are left as they are.
func (s *BookService) Delete(isbn string) error {
	isbn = normalize(isbn)
	books := s.books()
	if _, ok := books[isbn]; !ok {
		return s.reject(isbn, actionBookDelete, ErrNotFound, "Book with ISBN %s does not exist", isbn)
	}

	delete(books, isbn)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to delete book %s: %w", isbn, err)
	}

	s.notify.info("Book data with ID: %s, deleted", isbn)
	s.audit.Record(auditEvent(entities.AuditEntityBook, isbn, actionBookDelete, entities.AuditStatusSuccess,
		fmt.Sprintf("Deleted book %s", isbn)))
	return nil
}

// List returns every book ordered by ISBN.
func (s *BookService) List() []*entities.Book {
	books := sortedBooks(s.books(), nil)
	s.notify.log.Info("Books Listed")
	s.notify.dump("Books", bookRows(books))
	return books
}

// Find matches value against one field, case-insensitively and in full.
// An isbn lookup yields at most one book; title and author may match many.
func (s *BookService) Find(value string, by BookField) ([]*entities.Book, error) {
	value = normalize(value)

	var found []*entities.Book
	switch by {
	case BookByISBN:
		if book, ok := s.books()[value]; ok {
			found = []*entities.Book{book}
		}
	case BookByTitle:
		found = sortedBooks(s.books(), func(b *entities.Book) bool {
			return strings.ToLower(b.Title) == value
		})
	case BookByAuthor:
		found = sortedBooks(s.books(), func(b *entities.Book) bool {
			return strings.ToLower(b.Author) == value
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSearchField, by)
	}

	if len(found) == 0 {
		return nil, s.notify.reject(ErrNotFound, "Book with %s: %s not found", by, value)
	}
	s.notify.log.Info(fmt.Sprintf("Book Found with %s: %s", by, value))
	s.notify.dump("Found books", bookRows(found))
	return found, nil
}

func (s *BookService) reject(isbn, action string, kind error, format string, args ...any) error {
	err := s.notify.reject(kind, format, args...)
	s.audit.Record(auditEvent(entities.AuditEntityBook, isbn, action, entities.AuditStatusRejected, err.Error()))
	return err
}

// invalid follows a failed validator check, which has already reported why.
func (s *BookService) invalid(isbn, action string) error {
	s.audit.Record(auditEvent(entities.AuditEntityBook, isbn, action, entities.AuditStatusRejected, msgValidationFailed))
	return rejection(ErrInvalidInput, msgValidationFailed)
}

// sortedBooks returns the books accepted by keep (all if nil) in ISBN order.
func sortedBooks(books map[string]*entities.Book, keep func(*entities.Book) bool) []*entities.Book {
	out := make([]*entities.Book, 0, len(books))
	for _, b := range books {
		if keep == nil || keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ISBN < out[j].ISBN
	})
	return out
}

func bookRows(books []*entities.Book) []map[string]any {
	rows := make([]map[string]any, 0, len(books))
	for _, b := range books {
		rows = append(rows, map[string]any{
			"isbn":      b.ISBN,
			"title":     b.Title,
			"author":    b.Author,
			"available": b.Available,
		})
	}
	return rows
}
