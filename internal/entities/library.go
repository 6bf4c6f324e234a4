package entities

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

type TransactionAction string

const (
	ActionCheckout TransactionAction = "checkout"
	ActionCheckin  TransactionAction = "checkin"
)

// TimestampLayout is the on-disk format of transaction timestamps
// (ISO-8601, local time, microsecond precision).
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Collection names double as the backing file names.
type Collection string

const (
	CollectionMembers      Collection = "users"
	CollectionBooks        Collection = "books"
	CollectionTransactions Collection = "transactions"
)

// Collections lists every collection the dataset must hold, in load order.
var Collections = []Collection{CollectionMembers, CollectionBooks, CollectionTransactions}

type Book struct {
	ISBN      string `json:"-"` // Map key on disk
	Title     string `json:"title"`
	Author    string `json:"author"`
	Available bool   `json:"available"`
}

type Member struct {
	ID       string   `json:"-"` // Map key on disk
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Borrowed []string `json:"borrowed"` // Created on first checkout; see MarshalJSON
}

// MarshalJSON leaves "borrowed" out until the list is created and keeps it,
// possibly empty, from then on.
func (m Member) MarshalJSON() ([]byte, error) {
	out := struct {
		Name     string    `json:"name"`
		Email    string    `json:"email"`
		Borrowed *[]string `json:"borrowed,omitempty"`
	}{Name: m.Name, Email: m.Email}
	if m.Borrowed != nil {
		out.Borrowed = &m.Borrowed
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(out)
}

// HasBorrowed reports whether isbn is in the member's borrowed list.
func (m *Member) HasBorrowed(isbn string) bool {
	for _, b := range m.Borrowed {
		if b == isbn {
			return true
		}
	}
	return false
}

// Transaction is append-only; nothing mutates or deletes one after it is logged.
type Transaction struct {
	MemberID  string            `json:"user_id"`
	ISBN      string            `json:"isbn"`
	Action    TransactionAction `json:"action"`
	Timestamp string            `json:"timestamp"`
}

// Time parses the stored timestamp. Zero time if it is malformed.
func (t Transaction) Time() time.Time {
	ts, err := time.ParseInLocation(TimestampLayout, t.Timestamp, time.Local)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// Dataset is the in-memory mirror of the three collection files.
// A nil map or slice means the collection was never loaded.
type Dataset struct {
	Books        map[string]*Book
	Members      map[string]*Member
	Transactions []Transaction
}

// Has reports whether the named collection is present.
func (d *Dataset) Has(c Collection) bool {
	switch c {
	case CollectionBooks:
		return d.Books != nil
	case CollectionMembers:
		return d.Members != nil
	case CollectionTransactions:
		return d.Transactions != nil
	}
	return false
}
