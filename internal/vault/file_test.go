package vault

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/w0rmh013/PassVault/internal/crypto"
)

func newTestVault(t *testing.T, password []byte) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pvlt")
	file, err := New(path, password)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := file.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return file, path
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New("", []byte("pw")); !errors.Is(err, ErrNoVaultFile) {
		t.Errorf("expected ErrNoVaultFile, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	file, path := newTestVault(t, []byte("hunter2"))

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read vault file: %v", err)
	}
	if string(raw[:MagicSize]) != Magic {
		t.Error("vault file must begin with the magic")
	}
	// Empty payload pads to one block: header + block + two tags.
	if len(raw) != HeaderSize+16+2*crypto.TagSize {
		t.Errorf("unexpected file size %d for empty vault", len(raw))
	}

	// Create again must fail.
	if err := file.Create(); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestReadNotFound(t *testing.T) {
	file, err := New(filepath.Join(t.TempDir(), "missing.pvlt"), []byte("pw"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := file.Read(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pvlt")
	if err := os.WriteFile(path, []byte("not a vault at all"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	file, err := New(path, []byte("pw"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := file.Read(); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 15, 16, 17, 10000} {
		file, _ := newTestVault(t, []byte("hunter2"))

		data := bytes.Repeat([]byte{0x33}, size)
		if err := file.Write(data); err != nil {
			t.Fatalf("size %d: Write failed: %v", size, err)
		}

		got, err := file.Read()
		if err != nil {
			t.Fatalf("size %d: Read failed: %v", size, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("size %d: payload did not round trip", size)
		}
	}
}

func TestReadWrongPassword(t *testing.T) {
	file, path := newTestVault(t, []byte("hunter2"))
	if err := file.Write([]byte("payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	wrong, err := New(path, []byte("wrong"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := wrong.Read(); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

func TestRewriteOnReadFreshness(t *testing.T) {
	file, path := newTestVault(t, []byte("hunter2"))
	if err := file.Write([]byte("stable payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read vault file: %v", err)
	}

	if _, err := file.Read(); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read vault file: %v", err)
	}

	saltBefore := before[MagicSize : MagicSize+crypto.SaltSize]
	saltAfter := after[MagicSize : MagicSize+crypto.SaltSize]
	if bytes.Equal(saltBefore, saltAfter) {
		t.Error("salt must change on every read")
	}

	ivBefore := before[HeaderSize-crypto.IVSize : HeaderSize]
	ivAfter := after[HeaderSize-crypto.IVSize : HeaderSize]
	if bytes.Equal(ivBefore, ivAfter) {
		t.Error("IV must change on every read")
	}

	if bytes.Equal(before[HeaderSize:], after[HeaderSize:]) {
		t.Error("ciphertext must change on every read even for identical payloads")
	}

	// Logical content survives the rewrite.
	got, err := file.Read()
	if err != nil {
		t.Fatalf("second Read failed: %v", err)
	}
	if string(got) != "stable payload" {
		t.Errorf("payload changed across rewrites: %q", got)
	}
}

func TestTamperDetection(t *testing.T) {
	file, path := newTestVault(t, []byte("hunter2"))
	if err := file.Write([]byte("do not touch")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read vault file: %v", err)
	}
	// Flip one ciphertext byte.
	raw[HeaderSize] ^= 0xFF
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatalf("failed to write tampered file: %v", err)
	}

	if _, err := file.Read(); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("tampered vault must fail the tag comparison, got %v", err)
	}
}

func TestTruncatedFileIsCorrupted(t *testing.T) {
	file, path := newTestVault(t, []byte("hunter2"))

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read vault file: %v", err)
	}
	if err := os.WriteFile(path, raw[:HeaderSize+8], 0600); err != nil {
		t.Fatalf("failed to truncate file: %v", err)
	}

	if _, err := file.Read(); !errors.Is(err, ErrCorrupted) {
		t.Errorf("expected ErrCorrupted for truncated vault, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	file, path := newTestVault(t, []byte("old password"))
	if err := file.Write([]byte("carried over")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if err := file.ChangePassword([]byte("new password")); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	old, err := New(path, []byte("old password"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := old.Read(); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("old password should no longer open the vault, got %v", err)
	}

	reopened, err := New(path, []byte("new password"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got, err := reopened.Read()
	if err != nil {
		t.Fatalf("Read with new password failed: %v", err)
	}
	if string(got) != "carried over" {
		t.Errorf("payload lost across password change: %q", got)
	}
}

func TestNoStrayTempFiles(t *testing.T) {
	file, path := newTestVault(t, []byte("hunter2"))
	if err := file.Write([]byte("payload")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := file.Read(); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("failed to list vault directory: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".pvlt-") {
			t.Errorf("stray temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the vault file in the directory, found %d entries", len(entries))
	}
}
