package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ID is an identifier exactly as the backend sent it. The API returns the same
// id as a JSON string in some endpoints and a number in others, so it decodes
// from either and keeps the textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*id = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	*id = ID(s)
	return nil
}

func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Key is the canonical comparison form: trimmed and lowercased, matching how
// the backend compares ids regardless of numeric or GUID casing.
func (id ID) Key() string {
	return strings.ToLower(strings.TrimSpace(string(id)))
}

func (id ID) String() string { return string(id) }

// Amount is a money value that tolerates the backend's habit of sending
// prices as numbers in one endpoint and numeric strings in another.
// Anything unparseable decodes to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*a = 0
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(v)), &f); err != nil {
			*a = 0
			return nil
		}
		*a = Amount(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTime accepts the date formats the backend mixes across endpoints.
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// firstNonEmpty returns the first string with content, for folding the
// backend's alternative field spellings into one canonical value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstID(ids ...ID) ID {
	for _, id := range ids {
		if !id.IsZero() {
			return id
		}
	}
	return ""
}
