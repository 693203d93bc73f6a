package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Builtin field names, reserved for vault-managed metadata.
const (
	FieldLastModified = "last_modified"
	FieldLastRevealed = "last_revealed"
)

// FieldPassword is the one property every entry must carry.
const FieldPassword = "password"

// PasswordFiller replaces the password property when an entry is
// returned without revealing it.
const PasswordFiller = "********"

// Record is a single vault entry: user properties plus the builtin
// timestamp fields, which are struct members rather than map keys so
// user properties cannot collide with them in memory.
type Record struct {
	Properties   map[string]string
	LastModified float64  // epoch seconds
	LastRevealed *float64 // epoch seconds, nil until the first reveal
}

func isBuiltin(name string) bool {
	return name == FieldLastModified || name == FieldLastRevealed
}

// clone returns a copy sharing nothing with the original.
func (r Record) clone() Record {
	props := make(map[string]string, len(r.Properties))
	for k, v := range r.Properties {
		props[k] = v
	}
	out := Record{Properties: props, LastModified: r.LastModified}
	if r.LastRevealed != nil {
		ts := *r.LastRevealed
		out.LastRevealed = &ts
	}
	return out
}

// MarshalJSON flattens the record into the persisted form: one object
// holding the user properties and the builtin timestamps side by side.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Properties)+2)
	for k, v := range r.Properties {
		flat[k] = v
	}
	flat[FieldLastModified] = r.LastModified
	if r.LastRevealed != nil {
		flat[FieldLastRevealed] = *r.LastRevealed
	} else {
		flat[FieldLastRevealed] = nil
	}
	return json.Marshal(flat)
}

// UnmarshalJSON splits the flat persisted object back into user
// properties and builtin fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	r.Properties = make(map[string]string, len(flat))
	r.LastRevealed = nil

	for name, raw := range flat {
		switch name {
		case FieldLastModified:
			if err := json.Unmarshal(raw, &r.LastModified); err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
		case FieldLastRevealed:
			if err := json.Unmarshal(raw, &r.LastRevealed); err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
		default:
			var value string
			if err := json.Unmarshal(raw, &value); err != nil {
				return fmt.Errorf("invalid property %s: %w", name, err)
			}
			r.Properties[name] = value
		}
	}
	return nil
}

// FormatTimestamp renders an epoch-seconds timestamp for display. It
// is display-only and never part of the persisted format.
func FormatTimestamp(ts *float64) string {
	if ts == nil {
		return "never"
	}
	sec := int64(*ts)
	nsec := int64((*ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).Format("2006-01-02 15:04:05")
}
