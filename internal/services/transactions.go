package services

import (
	"fmt"
	"io"
	"time"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
)

// TransactionService moves books between members and the shelf. A checkout
// or checkin updates the transaction log, the book's availability and the
// member's borrowed list together, then persists all three in one Save.
type TransactionService struct {
	store  Store
	audit  Auditor
	notify notifier
	now    func() time.Time
}

// NewTransactionService fails if the store has not loaded every collection.
func NewTransactionService(store Store, audit Auditor, out io.Writer, log logging.Logger) (*TransactionService, error) {
	if err := store.ValidatePresence(); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	return &TransactionService{
		store:  store,
		audit:  audit,
		notify: notifier{out: out, log: log},
		now:    time.Now,
	}, nil
}

// Checkout lends an available book to a member.
func (s *TransactionService) Checkout(memberID, isbn string) (*entities.Transaction, error) {
	memberID, isbn = normalize(memberID), normalize(isbn)
	action := entities.ActionCheckout

	member, book, err := s.lookup(memberID, isbn, action)
	if err != nil {
		return nil, err
	}
	if !book.Available {
		return nil, s.reject(memberID, isbn, action, ErrUnavailable, "Book with isbn: %s is not available", isbn)
	}

	tx := s.logTransaction(memberID, isbn, action)
	book.Available = false
	member.Borrowed = append(member.Borrowed, isbn)

	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to save checkout of %s by %s: %w", isbn, memberID, err)
	}

	s.notify.info("User: %s checked out Book: %s", memberID, isbn)
	s.record(memberID, isbn, action, entities.AuditStatusSuccess, fmt.Sprintf("Member %s checked out %s", memberID, isbn))
	return &tx, nil
}

// Checkin returns a book the member currently holds. Holding means the isbn
// is on the member's borrowed list.
func (s *TransactionService) Checkin(memberID, isbn string) (*entities.Transaction, error) {
	memberID, isbn = normalize(memberID), normalize(isbn)
	action := entities.ActionCheckin

	member, book, err := s.lookup(memberID, isbn, action)
	if err != nil {
		return nil, err
	}
	if !member.HasBorrowed(isbn) {
		return nil, s.reject(memberID, isbn, action, ErrNotBorrowed, "User %s has not borrowed book %s at the moment", memberID, isbn)
	}

	tx := s.logTransaction(memberID, isbn, action)
	book.Available = true
	member.Borrowed = removeFirst(member.Borrowed, isbn)

	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to save checkin of %s by %s: %w", isbn, memberID, err)
	}

	s.notify.info("User: %s checked in Book: %s", memberID, isbn)
	s.record(memberID, isbn, action, entities.AuditStatusSuccess, fmt.Sprintf("Member %s checked in %s", memberID, isbn))
	return &tx, nil
}

// ListForMember returns the member's transactions in the order they happened.
func (s *TransactionService) ListForMember(memberID string) ([]entities.Transaction, error) {
	memberID = normalize(memberID)
	ds := s.store.Dataset()
	if _, ok := ds.Members[memberID]; !ok {
		return nil, s.notify.reject(ErrNotFound, "User with ID %s does not exist", memberID)
	}

	var txs []entities.Transaction
	for _, tx := range ds.Transactions {
		if tx.MemberID == memberID {
			txs = append(txs, tx)
		}
	}

	s.notify.log.Info("Listed all the checkins and checkout of User: " + memberID)
	s.notify.dump("Transactions", transactionRows(txs))
	return txs, nil
}

// ListAvailable returns the books on the shelf, ordered by ISBN.
func (s *TransactionService) ListAvailable() []*entities.Book {
	books := sortedBooks(s.store.Dataset().Books, func(b *entities.Book) bool {
		return b.Available
	})
	s.notify.log.Info("Listed all the available books")
	s.notify.dump("Available books", bookRows(books))
	return books
}

func (s *TransactionService) lookup(memberID, isbn string, action entities.TransactionAction) (*entities.Member, *entities.Book, error) {
	ds := s.store.Dataset()
	member, ok := ds.Members[memberID]
	if !ok {
		return nil, nil, s.reject(memberID, isbn, action, ErrNotFound, "No User with user id: %s", memberID)
	}
	book, ok := ds.Books[isbn]
	if !ok {
		return nil, nil, s.reject(memberID, isbn, action, ErrNotFound, "No Book with isbn: %s", isbn)
	}
	return member, book, nil
}

func (s *TransactionService) logTransaction(memberID, isbn string, action entities.TransactionAction) entities.Transaction {
	tx := entities.Transaction{
		MemberID:  memberID,
		ISBN:      isbn,
		Action:    action,
		Timestamp: s.now().Format(entities.TimestampLayout),
	}
	ds := s.store.Dataset()
	ds.Transactions = append(ds.Transactions, tx)
	s.notify.log.Debug("Transaction data added to storage", "member", memberID, "isbn", isbn, "action", action, "timestamp", tx.Timestamp)
	return tx
}

func (s *TransactionService) reject(memberID, isbn string, action entities.TransactionAction, kind error, format string, args ...any) error {
	err := s.notify.reject(kind, format, args...)
	s.record(memberID, isbn, action, entities.AuditStatusRejected, err.Error())
	return err
}

func (s *TransactionService) record(memberID, isbn string, action entities.TransactionAction, status entities.AuditStatus, description string) {
	event := auditEvent(entities.AuditEntityTransaction, isbn, string(action), status, description)
	event.MemberID = memberID
	s.audit.Record(event)
}

func removeFirst(list []string, value string) []string {
	for i, v := range list {
		if v == value {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

func transactionRows(txs []entities.Transaction) []map[string]any {
	rows := make([]map[string]any, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, map[string]any{
			"user_id":   tx.MemberID,
			"isbn":      tx.ISBN,
			"action":    string(tx.Action),
			"timestamp": tx.Timestamp,
		})
	}
	return rows
}
