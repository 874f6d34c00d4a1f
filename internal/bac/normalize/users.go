package normalize

import (
	"strings"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
)

// UserRecord flattens one entry of the upstream users list.
func UserRecord(u map[string]any) domain.UserRecord {
	return domain.UserRecord{
		ID:          textOrEmpty(u["primary_id"]),
		Name:        fullName(u),
		Status:      status(u["status"]),
		ProfileLink: nonEmpty(Text(Attr(u, "link"))),
	}
}

// UserDetail flattens a single upstream user document.
func UserDetail(u map[string]any) domain.UserDetail {
	contact := Map(u["contact_info"])

	emails := AsList(Child(contact, "emails", "email"))
	phones := AsList(Child(contact, "phones", "phone"))
	addresses := AsList(Child(contact, "addresses", "address"))
	notes := AsList(Child(u, "user_notes", "user_note"))

	return domain.UserDetail{
		ID:               textOrEmpty(u["primary_id"]),
		Name:             fullName(u),
		Status:           status(u["status"]),
		ProfileLink:      nonEmpty(Text(Attr(u, "link"))),
		BirthDate:        nonEmpty(Text(u["birth_date"])),
		PreferredEmail:   Preferred(emails, Field("email_address")),
		PreferredPhone:   Preferred(phones, Field("phone_number")),
		PreferredAddress: Preferred(addresses, address),
		Notes:            joinNotes(notes),
	}
}

func fullName(u map[string]any) string {
	first := strings.TrimSpace(textOrEmpty(u["first_name"]))
	last := strings.TrimSpace(textOrEmpty(u["last_name"]))
	return strings.TrimSpace(first + " " + last)
}

// status accepts a bare label or a {code, description} pair and returns the
// text form.
func status(v any) *string {
	m, ok := v.(map[string]any)
	if !ok {
		return nonEmpty(Text(v))
	}
	for _, key := range []string{"#text", "-desc", "desc", "value"} {
		if s := nonEmpty(Text(m[key])); s != nil {
			return s
		}
	}
	return nil
}

func address(a map[string]any) *string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"line1", "line2", "city"} {
		if s := nonEmpty(Text(a[key])); s != nil {
			parts = append(parts, strings.TrimSpace(*s))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return ptr(strings.Join(parts, ", "))
}

func joinNotes(notes []map[string]any) *string {
	texts := make([]string, 0, len(notes))
	for _, n := range notes {
		if s := nonEmpty(Text(n["note_text"])); s != nil {
			texts = append(texts, *s)
		}
	}
	if len(texts) == 0 {
		return nil
	}
	return ptr(strings.Join(texts, " | "))
}

func textOrEmpty(v any) string {
	s, _ := Scalar(v)
	return s
}
