package entry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/w0rmh013/PassVault/internal/crypto"
	"github.com/w0rmh013/PassVault/internal/vault"
)

var (
	ErrNotLoaded       = errors.New("vault data not loaded")
	ErrEntryExists     = errors.New("entry already exists")
	ErrEntryNotFound   = errors.New("entry does not exist")
	ErrBuiltinKey      = errors.New("property name collides with a builtin field")
	ErrMissingPassword = errors.New("entry has no password property")
)

// Clock supplies the current time as epoch seconds.
type Clock func() float64

// Confirm asks the user a yes/no question and reports the answer.
// Injected so the store works without a terminal.
type Confirm func(message string) bool

// Store maintains the entry table on top of an encrypted vault file.
type Store struct {
	file    *vault.File
	clock   Clock
	confirm Confirm

	table map[string]Record
	order []string // entry ids in insertion order
}

// NewStore creates a store over the vault file. A nil clock defaults
// to the wall clock; a nil confirm declines every prompt.
func NewStore(file *vault.File, clock Clock, confirm Confirm) *Store {
	if clock == nil {
		clock = func() float64 {
			return float64(time.Now().UnixNano()) / 1e9
		}
	}
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Store{file: file, clock: clock, confirm: confirm}
}

// Load reads the vault file and decodes the entry table.
func (s *Store) Load() error {
	data, err := s.file.Read()
	if err != nil {
		return err
	}
	defer crypto.ClearBytes(data)
	return s.decode(data)
}

// Save encodes the table into the vault file, then discards it.
// Further mutation fails with ErrNotLoaded until the next Load.
func (s *Store) Save() error {
	if s.table == nil {
		return ErrNotLoaded
	}

	data, err := s.encode()
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	defer crypto.ClearBytes(data)

	if err := s.file.Write(data); err != nil {
		return err
	}

	s.table = nil
	s.order = nil
	return nil
}

// AddEntry adds a new entry. Properties must include a password and
// may not shadow builtin field names.
func (s *Store) AddEntry(id string, properties map[string]string) error {
	if s.table == nil {
		return ErrNotLoaded
	}
	if _, ok := s.table[id]; ok {
		return ErrEntryExists
	}
	if err := validateProperties(properties); err != nil {
		return err
	}

	s.table[id] = Record{
		Properties:   copyProperties(properties),
		LastModified: s.clock(),
	}
	s.order = append(s.order, id)
	return nil
}

// EditEntry replaces an entry's properties wholesale, recomputing
// last_modified and resetting last_revealed. Unless confirmed is set
// the injected prompt is consulted first; declining aborts without an
// error.
func (s *Store) EditEntry(id string, properties map[string]string, confirmed bool) error {
	if s.table == nil {
		return ErrNotLoaded
	}
	if _, ok := s.table[id]; !ok {
		return ErrEntryNotFound
	}
	if err := validateProperties(properties); err != nil {
		return err
	}
	if !confirmed && !s.confirm(fmt.Sprintf("Overwrite entry %q?", id)) {
		return nil
	}

	s.table[id] = Record{
		Properties:   copyProperties(properties),
		LastModified: s.clock(),
	}
	return nil
}

// DeleteEntry removes an entry, consulting the injected prompt unless
// pre-confirmed. Declining aborts without an error.
func (s *Store) DeleteEntry(id string, confirmed bool) error {
	if s.table == nil {
		return ErrNotLoaded
	}
	if _, ok := s.table[id]; !ok {
		return ErrEntryNotFound
	}
	if !confirmed && !s.confirm(fmt.Sprintf("Delete entry %q?", id)) {
		return nil
	}

	delete(s.table, id)
	for i, eid := range s.order {
		if eid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetEntry returns a copy of an entry. Without reveal the password
// property is replaced by PasswordFiller. Revealing updates the
// entry's last_revealed timestamp and returns the true password.
func (s *Store) GetEntry(id string, reveal bool) (Record, error) {
	if s.table == nil {
		return Record{}, ErrNotLoaded
	}
	rec, ok := s.table[id]
	if !ok {
		return Record{}, ErrEntryNotFound
	}

	if reveal {
		ts := s.clock()
		rec.LastRevealed = &ts
		s.table[id] = rec
		return rec.clone(), nil
	}

	out := rec.clone()
	out.Properties[FieldPassword] = PasswordFiller
	return out, nil
}

// GetPassword returns the entry's raw password. Always counts as a
// reveal.
func (s *Store) GetPassword(id string) (string, error) {
	rec, err := s.GetEntry(id, true)
	if err != nil {
		return "", err
	}
	return rec.Properties[FieldPassword], nil
}

// ListEntries returns entry ids in insertion order. No side effects.
func (s *Store) ListEntries() ([]string, error) {
	if s.table == nil {
		return nil, ErrNotLoaded
	}
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids, nil
}

// Summary returns a copy of every entry keyed by id. With onlyBuiltins
// the copies carry just the builtin timestamps; otherwise the full
// record is included, masking passwords when hidePasswords is set.
// Returning passwords unmasked counts as a reveal for every entry.
func (s *Store) Summary(onlyBuiltins, hidePasswords bool) (map[string]Record, error) {
	if s.table == nil {
		return nil, ErrNotLoaded
	}

	out := make(map[string]Record, len(s.table))
	for _, id := range s.order {
		rec := s.table[id]
		if !onlyBuiltins && !hidePasswords {
			ts := s.clock()
			rec.LastRevealed = &ts
			s.table[id] = rec
		}

		c := rec.clone()
		if onlyBuiltins {
			c.Properties = map[string]string{}
		} else if hidePasswords {
			c.Properties[FieldPassword] = PasswordFiller
		}
		out[id] = c
	}
	return out, nil
}

func validateProperties(properties map[string]string) error {
	for name := range properties {
		if isBuiltin(name) {
			return ErrBuiltinKey
		}
	}
	if _, ok := properties[FieldPassword]; !ok {
		return ErrMissingPassword
	}
	return nil
}

func copyProperties(properties map[string]string) map[string]string {
	props := make(map[string]string, len(properties))
	for k, v := range properties {
		props[k] = v
	}
	return props
}

// decode parses the vault payload into the table. A freshly created
// vault holds an empty payload, which decodes to an empty table. The
// id order of the payload object is preserved.
func (s *Store) decode(data []byte) error {
	s.table = make(map[string]Record)
	s.order = nil

	if len(data) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", vault.ErrCorrupted, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: payload is not an object", vault.ErrCorrupted)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", vault.ErrCorrupted, err)
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: invalid entry id", vault.ErrCorrupted)
		}

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("%w: entry %s: %v", vault.ErrCorrupted, id, err)
		}

		s.table[id] = rec
		s.order = append(s.order, id)
	}

	return nil
}

// encode serializes the table in insertion order.
func (s *Store) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(s.table[id])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
