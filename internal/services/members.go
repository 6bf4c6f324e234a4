package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mrlokans/librarian/internal/entities"
	"github.com/mrlokans/librarian/internal/logging"
	"github.com/mrlokans/librarian/internal/validation"
)

// MemberService manages the member directory. Member ids are assigned here,
// never supplied by the caller.
type MemberService struct {
	store     Store
	validator *validation.Validator
	audit     Auditor
	notify    notifier
}

// NewMemberService fails if the store has not loaded every collection.
func NewMemberService(store Store, validator *validation.Validator, audit Auditor, out io.Writer, log logging.Logger) (*MemberService, error) {
	if err := store.ValidatePresence(); err != nil {
		return nil, fmt.Errorf("member directory: %w", err)
	}
	return &MemberService{
		store:     store,
		validator: validator,
		audit:     audit,
		notify:    notifier{out: out, log: log},
	}, nil
}

func (s *MemberService) members() map[string]*entities.Member {
	return s.store.Dataset().Members
}

// Create registers a member under the next free id. The borrowed list is
// only created by the first checkout.
func (s *MemberService) Create(name, email string) (*entities.Member, error) {
	name, email = normalize(name), normalize(email)

	members := s.members()
	if !s.validator.MemberData(name, email, members) {
		return nil, s.invalid("", actionMemberCreate)
	}

	id := NextMemberID(members)
	members[id] = &entities.Member{ID: id, Name: name, Email: email}
	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to save member %s: %w", id, err)
	}

	s.notify.info("New user added with ID: %s - Name: %s - Email: %s", id, name, email)
	s.audit.Record(auditEvent(entities.AuditEntityMember, id, actionMemberCreate, entities.AuditStatusSuccess,
		fmt.Sprintf("Created member %s <%s>", name, email)))
	return s.members()[id], nil
}

// Update replaces the name and/or email of a member. Empty fields are left
// untouched. A new email must be well formed and not used by anyone else.
func (s *MemberService) Update(id, name, email string) (*entities.Member, error) {
	id = normalize(id)
	members := s.members()
	member, ok := members[id]
	if !ok {
		return nil, s.reject(id, actionMemberUpdate, ErrNotFound, "User with ID %s does not exist", id)
	}

	name, email = normalize(name), normalize(email)
	if name != "" && !s.validator.Name(name) {
		return nil, s.invalid(id, actionMemberUpdate)
	}
	if email != "" && !(s.validator.Email(email) && s.validator.UniqueEmail(members, email, id)) {
		return nil, s.invalid(id, actionMemberUpdate)
	}

	if name != "" {
		member.Name = name
	}
	if email != "" {
		member.Email = email
	}
	if err := s.store.Save(); err != nil {
		return nil, fmt.Errorf("failed to save member %s: %w", id, err)
	}

	s.notify.info("User data with ID: %s, updated", id)
	s.audit.Record(auditEvent(entities.AuditEntityMember, id, actionMemberUpdate, entities.AuditStatusSuccess,
		fmt.Sprintf("Updated member %s", id)))
	return s.members()[id], nil
}

// Delete removes a member. Books the member still holds stay unavailable.
func (s *MemberService) Delete(id string) error {
	id = normalize(id)
	members := s.members()
	if _, ok := members[id]; !ok {
		return s.reject(id, actionMemberDelete, ErrNotFound, "User with ID %s does not exist", id)
	}

	delete(members, id)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("failed to delete member %s: %w", id, err)
	}

	s.notify.info("User data with ID: %s, deleted", id)
	s.audit.Record(auditEvent(entities.AuditEntityMember, id, actionMemberDelete, entities.AuditStatusSuccess,
		fmt.Sprintf("Deleted member %s", id)))
	return nil
}

// List returns every member in ascending id order.
func (s *MemberService) List() []*entities.Member {
	members := sortedMembers(s.members())
	s.notify.log.Info("Users Listed")
	s.notify.dump("Users", memberRows(members))
	return members
}

// Find looks a member up by id, or by a case-insensitive full match on name
// or email. Name and email lookups return the lowest id that matches.
func (s *MemberService) Find(value string, by MemberField) (*entities.Member, error) {
	value = normalize(value)

	var found *entities.Member
	switch by {
	case MemberByID:
		found = s.members()[value]
	case MemberByName, MemberByEmail:
		for _, m := range sortedMembers(s.members()) {
			field := m.Name
			if by == MemberByEmail {
				field = m.Email
			}
			if strings.ToLower(field) == value {
				found = m
				break
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSearchField, by)
	}

	if found == nil {
		return nil, s.notify.reject(ErrNotFound, "User with %s: %s not found", by, value)
	}
	s.notify.log.Info(fmt.Sprintf("User Found with %s: %s", by, value))
	s.notify.dump("Found user", memberRows([]*entities.Member{found}))
	return found, nil
}

func (s *MemberService) reject(id, action string, kind error, format string, args ...any) error {
	err := s.notify.reject(kind, format, args...)
	s.audit.Record(auditEvent(entities.AuditEntityMember, id, action, entities.AuditStatusRejected, err.Error()))
	return err
}

func (s *MemberService) invalid(id, action string) error {
	s.audit.Record(auditEvent(entities.AuditEntityMember, id, action, entities.AuditStatusRejected, msgValidationFailed))
	return rejection(ErrInvalidInput, msgValidationFailed)
}

// NextMemberID returns one more than the largest numeric id, or "1" when
// there is none. Gaps left by deletions are never reused.
func NextMemberID(members map[string]*entities.Member) string {
	highest := 0
	for id := range members {
		n, ok := numericID(id)
		if ok && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

// numericID parses ids made only of ASCII digits.
func numericID(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0, false
	}
	return n, true
}

// sortedMembers orders numeric ids numerically, followed by any other ids
// in lexical order.
func sortedMembers(members map[string]*entities.Member) []*entities.Member {
	out := make([]*entities.Member, 0, len(members))
	for _, m := range members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, aok := numericID(out[i].ID)
		b, bok := numericID(out[j].ID)
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}

func memberRows(members []*entities.Member) []map[string]any {
	rows := make([]map[string]any, 0, len(members))
	for _, m := range members {
		row := map[string]any{
			"id":    m.ID,
			"name":  m.Name,
			"email": m.Email,
		}
		if m.Borrowed != nil {
			row["borrowed"] = strings.Join(m.Borrowed, " ")
		}
		rows = append(rows, row)
	}
	return rows
}
