package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/validation"
)

func TestBookService_Add(t *testing.T) {
	f := setupFixture(t)

	book, err := f.books.Add("  Pride AND Prejudice ", " Jane Austen", "ABCDE ")
	require.NoError(t, err)

	assert.Equal(t, &entities.Book{ISBN: "abcde", Title: "pride and prejudice", Author: "jane austen", Available: true}, book)
	assert.Equal(t, 1, f.store.saves)
	assert.Contains(t, f.out.String(), "New Book added with ISBN: abcde - Title: pride and prejudice - Author: jane austen")

	event := f.audit.last()
	require.NotNil(t, event)
	assert.Equal(t, entities.AuditEntityBook, event.EntityType)
	assert.Equal(t, "abcde", event.EntityID)
	assert.Equal(t, "book_add", event.Action)
	assert.Equal(t, entities.AuditStatusSuccess, event.Status)
}

func TestBookService_Add_ThenFindByISBN(t *testing.T) {
	f := setupFixture(t)
	f.addBook(t, "Dune", "Frank Herbert", "dune1")

	found, err := f.books.Find("DUNE1", BookByISBN)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "dune", found[0].Title)
	assert.Equal(t, "frank herbert", found[0].Author)
	assert.True(t, found[0].Available)
}

func TestBookService_Add_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		author  string
		isbn    string
		message string
	}{
		{"duplicate isbn", "another", "someone", "abcde", validation.MsgDuplicateISBN},
		{"duplicate isbn in other case", "another", "someone", " ABCDE", validation.MsgDuplicateISBN},
		{"short isbn", "title", "author", "abc", validation.MsgInvalidISBN},
		{"digits only isbn", "title", "author", "123456", validation.MsgInvalidISBN},
		{"bad author", "title", "o'brien", "fghij", validation.MsgInvalidAuthor},
		{"bad title", "c++ (3rd)", "author", "fghij", validation.MsgInvalidTitle},
		{"empty title", "   ", "author", "fghij", validation.MsgInvalidTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupFixture(t)
			f.addBook(t, "original", "author", "abcde")
			f.out.Reset()

			book, err := f.books.Add(tt.title, tt.author, tt.isbn)
			require.Error(t, err)
			assert.Nil(t, book)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.True(t, IsRejection(err))

			assert.Len(t, f.store.data.Books, 1)
			assert.Equal(t, "original", f.store.data.Books["abcde"].Title)
			assert.Equal(t, 1, f.store.saves, "rejections do not persist")
			assert.Contains(t, f.out.String(), tt.message)
			assert.Equal(t, entities.AuditStatusRejected, f.audit.last().Status)
		})
	}
}

func TestBookService_Update(t *testing.T) {
	t.Run("unknown isbn", func(t *testing.T) {
		f := setupFixture(t)

		_, err := f.books.Update("zzzzz", "title", "")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, f.out.String(), "Book with ISBN zzzzz does not exist")
		assert.Equal(t, 0, f.store.saves)
	})

	t.Run("title only", func(t *testing.T) {
		f := setupFixture(t)
		f.addBook(t, "old title", "author", "abcde")

		book, err := f.books.Update(" ABCDE", "  New Title ", "")
		require.NoError(t, err)
		assert.Equal(t, "new title", book.Title)
		assert.Equal(t, "author", book.Author)
		assert.Equal(t, 2, f.store.saves)
		assert.Contains(t, f.out.String(), "Book data with ISBN: abcde, updated")
	})

	t.Run("author only", func(t *testing.T) {
		f := setupFixture(t)
		f.addBook(t, "title", "old author", "abcde")

		book, err := f.books.Update("abcde", "", "New Author")
		require.NoError(t, err)
		assert.Equal(t, "title", book.Title)
		assert.Equal(t, "new author", book.Author)
	})

	t.Run("one invalid field aborts the whole update", func(t *testing.T) {
		f := setupFixture(t)
		f.addBook(t, "title", "author", "abcde")

		_, err := f.books.Update("abcde", "valid new title", "bad-author!")
		assert.ErrorIs(t, err, ErrInvalidInput)

		book := f.store.data.Books["abcde"]
		assert.Equal(t, "title", book.Title)
		assert.Equal(t, "author", book.Author)
		assert.Equal(t, 1, f.store.saves)
	})

	t.Run("nothing to change still persists", func(t *testing.T) {
		f := setupFixture(t)
		f.addBook(t, "title", "author", "abcde")

		_, err := f.books.Update("abcde", "", "")
		require.NoError(t, err)
		assert.Equal(t, 2, f.store.saves)
	})
}

func TestBookService_Delete(t *testing.T) {
	f := setupFixture(t)
	f.addBook(t, "title", "author", "abcde")
	member := f.addMember(t, "alice", "alice@example.com")
	_, err := f.txs.Checkout(member.ID, "abcde")
	require.NoError(t, err)

	err = f.books.Delete("zzzzz")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.books.Delete("ABCDE"))
	assert.NotContains(t, f.store.data.Books, "abcde")
	assert.Contains(t, f.out.String(), "Book data with ID: abcde, deleted")

	// Nothing referencing the book is cleaned up.
	assert.Equal(t, []string{"abcde"}, f.store.data.Members[member.ID].Borrowed)
	assert.Len(t, f.store.data.Transactions, 1)
}

func TestBookService_List(t *testing.T) {
	f := setupFixture(t)
	assert.Empty(t, f.books.List())

	f.addBook(t, "b", "author", "bbbbb")
	f.addBook(t, "a", "author", "aaaaa")
	f.addBook(t, "c", "author", "ccccc")

	var isbns []string
	for _, b := range f.books.List() {
		isbns = append(isbns, b.ISBN)
	}
	assert.Equal(t, []string{"aaaaa", "bbbbb", "ccccc"}, isbns)
}

func TestBookService_Find(t *testing.T) {
	f := setupFixture(t)
	f.addBook(t, "emma", "jane austen", "emma1")
	f.addBook(t, "persuasion", "Jane Austen", "pers1")
	f.addBook(t, "emma", "someone else", "emma2")

	t.Run("by author matches every book", func(t *testing.T) {
		found, err := f.books.Find("JANE AUSTEN ", BookByAuthor)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "emma1", found[0].ISBN)
		assert.Equal(t, "pers1", found[1].ISBN)
	})

	t.Run("by title", func(t *testing.T) {
		found, err := f.books.Find("Emma", BookByTitle)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("no substring matching", func(t *testing.T) {
		f.out.Reset()
		_, err := f.books.Find("jane", BookByAuthor)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, f.out.String(), "Book with author: jane not found")
	})

	t.Run("unknown isbn", func(t *testing.T) {
		_, err := f.books.Find("zzzzz", BookByISBN)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid field", func(t *testing.T) {
		_, err := f.books.Find("emma", BookField("publisher"))
		require.ErrorIs(t, err, ErrInvalidSearchField)
		assert.False(t, IsRejection(err))
	})
}
