package entry

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecordJSONShape(t *testing.T) {
	rec := Record{
		Properties:   map[string]string{"password": "abc123", "note": "personal"},
		LastModified: 1700000000.5,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// The persisted form is a flat object: properties and builtins side
	// by side, last_revealed null until the first reveal.
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if flat["note"] != "personal" || flat["password"] != "abc123" {
		t.Errorf("properties missing from flat form: %v", flat)
	}
	if flat[FieldLastModified] != 1700000000.5 {
		t.Errorf("expected numeric last_modified, got %v", flat[FieldLastModified])
	}
	if v, ok := flat[FieldLastRevealed]; !ok || v != nil {
		t.Errorf("expected null last_revealed, got %v", v)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Properties["note"] != "personal" {
		t.Errorf("note lost in round trip: %v", back.Properties)
	}
	if _, ok := back.Properties[FieldLastModified]; ok {
		t.Error("builtin fields must not end up in Properties")
	}
	if back.LastModified != 1700000000.5 || back.LastRevealed != nil {
		t.Errorf("builtin fields lost in round trip: %v %v", back.LastModified, back.LastRevealed)
	}
}

func TestRecordUnmarshalRevealedTimestamp(t *testing.T) {
	var rec Record
	payload := `{"password":"x","last_modified":10,"last_revealed":20}`
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if rec.LastRevealed == nil || *rec.LastRevealed != 20 {
		t.Errorf("expected last_revealed 20, got %v", rec.LastRevealed)
	}
}

func TestRecordUnmarshalRejectsNonStringProperty(t *testing.T) {
	var rec Record
	if err := json.Unmarshal([]byte(`{"password":"x","count":7}`), &rec); err == nil {
		t.Error("expected error for non-string property value")
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(nil); got != "never" {
		t.Errorf("expected never, got %q", got)
	}

	ts := 1700000000.0
	got := FormatTimestamp(&ts)
	if !strings.HasPrefix(got, "2023-11-1") {
		t.Errorf("unexpected formatted timestamp %q", got)
	}
}

func TestDiffRecordsMasksPasswords(t *testing.T) {
	old := Record{Properties: map[string]string{"password": "oldsecret", "note": "a"}}
	updated := Record{Properties: map[string]string{"password": "newsecret", "note": "b"}}

	diff := DiffRecords("site", old, updated)
	if diff == "" {
		t.Fatal("expected a non-empty diff for changed note")
	}
	if strings.Contains(diff, "oldsecret") || strings.Contains(diff, "newsecret") {
		t.Error("diff must never contain plaintext passwords")
	}

	// A password-only change renders identically on both sides.
	same := Record{Properties: map[string]string{"password": "another", "note": "a"}}
	if diff := DiffRecords("site", old, same); diff != "" {
		t.Errorf("password-only change must produce no diff, got %q", diff)
	}
}
