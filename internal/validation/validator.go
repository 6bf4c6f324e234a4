// Package validation holds the field format and uniqueness checks for books
// and members. Each check returns false after printing and logging a
// diagnostic; callers abort the operation on false. The composite checks
// short-circuit in a fixed order and later checks assume earlier ones passed.
package validation

import (
	"fmt"
	"io"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
)

const MinISBNLength = 5

var (
	// Letters, digits and whitespace. Used for author and member names.
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	// Word characters, whitespace and a little punctuation, 1-100 characters.
	titlePattern = regexp.MustCompile(`^[\p{L}\p{N}_\s.,'!?:;-]{1,100}$`)
	// Anchored at the start only: anything after a well-formed prefix passes.
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)
)

const (
	MsgInvalidAuthor  = "Invalid Author Name"
	MsgInvalidTitle   = "Invalid or unsupported title format"
	MsgInvalidISBN    = "Invalid isbn. Minimum length 5 characters. All lower. No special characters. Atleast one alphabet should be there."
	MsgDuplicateISBN  = "Book already exists with provided ISBN"
	MsgInvalidName    = "Invalid name format"
	MsgInvalidEmail   = "Invalid email format"
	MsgDuplicateEmail = "User with this email already exists"
)

type Validator struct {
	out io.Writer
	log logging.Logger
}

// New returns a validator printing diagnostics to out.
func New(out io.Writer, log logging.Logger) *Validator {
	return &Validator{out: out, log: log}
}

func (v *Validator) reject(msg string) bool {
	fmt.Fprintln(v.out, msg)
	v.log.Info(msg)
	return false
}

func (v *Validator) AuthorName(name string) bool {
	if !namePattern.MatchString(name) {
		return v.reject(MsgInvalidAuthor)
	}
	return true
}

func (v *Validator) Title(title string) bool {
	if !titlePattern.MatchString(title) {
		return v.reject(MsgInvalidTitle)
	}
	return true
}

// ISBN requires at least five characters, all letters or digits, with at
// least one letter and no upper-case letters.
func (v *Validator) ISBN(isbn string) bool {
	if !isValidISBN(isbn) {
		return v.reject(MsgInvalidISBN)
	}
	return true
}

func isValidISBN(isbn string) bool {
	if utf8.RuneCountInString(isbn) < MinISBNLength {
		return false
	}
	hasLower := false
	for _, r := range isbn {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			return false
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsLetter(r) || unicode.IsNumber(r):
		default:
			return false
		}
	}
	return hasLower
}

// UniqueISBN fails if the catalog already holds isbn.
func (v *Validator) UniqueISBN(books map[string]*entities.Book, isbn string) bool {
	if _, exists := books[isbn]; exists {
		return v.reject(MsgDuplicateISBN)
	}
	return true
}

// BookData checks author, title, isbn format, then isbn uniqueness.
func (v *Validator) BookData(title, author, isbn string, books map[string]*entities.Book) bool {
	return v.AuthorName(author) &&
		v.Title(title) &&
		v.ISBN(isbn) &&
		v.UniqueISBN(books, isbn)
}

func (v *Validator) Name(name string) bool {
	if !namePattern.MatchString(name) {
		return v.reject(MsgInvalidName)
	}
	return true
}

func (v *Validator) Email(email string) bool {
	if !emailPattern.MatchString(email) {
		return v.reject(MsgInvalidEmail)
	}
	return true
}

// UniqueEmail fails if a member other than exceptID already uses email.
// Pass an empty exceptID when creating a member.
func (v *Validator) UniqueEmail(members map[string]*entities.Member, email, exceptID string) bool {
	for id, m := range members {
		if id == exceptID {
			continue
		}
		if m.Email == email {
			return v.reject(MsgDuplicateEmail)
		}
	}
	return true
}

// MemberData checks name, email format, then email uniqueness.
func (v *Validator) MemberData(name, email string, members map[string]*entities.Member) bool {
	return v.Name(name) &&
		v.Email(email) &&
		v.UniqueEmail(members, email, "")
}
