package storage

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"

	"github.com/mrlokans/librarian/internal/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// prettyOptions matches the 4-space indentation of files written by earlier
// versions; keys are sorted so rewrites of unchanged data are byte-identical.
var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: true,
}

// Encode renders v as indented, human-readable JSON.
func Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(raw, prettyOptions), nil
}

// emptyForm is what a freshly created backing file holds.
func emptyForm(c entities.Collection) []byte {
	if c == entities.CollectionTransactions {
		return []byte("[]\n")
	}
	return []byte("{}\n")
}

func checkShape(c entities.Collection, data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrCorruptFile, c)
	}
	if !jsoniter.ConfigFastest.Valid(trimmed) {
		return fmt.Errorf("%w: %s is not valid JSON", ErrCorruptFile, c)
	}
	return nil
}

func decodeBooks(data []byte) (map[string]*entities.Book, error) {
	if err := checkShape(entities.CollectionBooks, data); err != nil {
		return nil, err
	}
	var books map[string]*entities.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, fmt.Errorf("%w: books: %v", ErrCorruptFile, err)
	}
	if books == nil {
		return nil, fmt.Errorf("%w: books holds null", ErrCorruptFile)
	}
	for isbn, b := range books {
		if b == nil {
			delete(books, isbn)
			continue
		}
		b.ISBN = isbn
	}
	return books, nil
}

func decodeMembers(data []byte) (map[string]*entities.Member, error) {
	if err := checkShape(entities.CollectionMembers, data); err != nil {
		return nil, err
	}
	var members map[string]*entities.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("%w: users: %v", ErrCorruptFile, err)
	}
	if members == nil {
		return nil, fmt.Errorf("%w: users holds null", ErrCorruptFile)
	}
	for id, m := range members {
		if m == nil {
			delete(members, id)
			continue
		}
		m.ID = id
	}
	return members, nil
}

func decodeTransactions(data []byte) ([]entities.Transaction, error) {
	if err := checkShape(entities.CollectionTransactions, data); err != nil {
		return nil, err
	}
	// Older versions created a missing transactions file holding an object.
	if bytes.Equal(bytes.TrimSpace(data), []byte("{}")) {
		return []entities.Transaction{}, nil
	}
	var txs []entities.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("%w: transactions: %v", ErrCorruptFile, err)
	}
	if txs == nil {
		return nil, fmt.Errorf("%w: transactions holds null", ErrCorruptFile)
	}
	return txs, nil
}
