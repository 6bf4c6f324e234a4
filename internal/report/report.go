// Package report renders records as aligned console tables.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mrlokans/librarian/internal/entities"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Books writes one row per book, keyed by ISBN.
func Books(w io.Writer, books []*entities.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "isbn\ttitle\tauthor\tavailable")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", b.ISBN, b.Title, b.Author, b.Available)
	}
	return tw.Flush()
}

// Members writes one row per member, keyed by id. Members that never
// borrowed anything show an empty borrowed column.
func Members(w io.Writer, members []*entities.Member) error {
	if len(members) == 0 {
		_, err := fmt.Fprintln(w, "No users.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "id\tname\temail\tborrowed")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, strings.Join(m.Borrowed, ", "))
	}
	return tw.Flush()
}

// Transactions writes the records in the order given.
func Transactions(w io.Writer, txs []entities.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, "No transactions.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "user_id\tisbn\taction\ttimestamp")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", tx.MemberID, tx.ISBN, tx.Action, tx.Timestamp)
	}
	return tw.Flush()
}

// AuditEvents writes the audit trail, newest first as stored.
func AuditEvents(w io.Writer, events []entities.AuditEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No audit events.")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "time\ttype\tentity\taction\tstatus\tdescription")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.EntityType, e.EntityID, e.Action, e.Status, e.Description)
	}
	return tw.Flush()
}
