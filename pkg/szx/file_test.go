package szx

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteFileReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "full.szx")
	want := fullSnapshot()
	loss, err := WriteFile(path, want, &Creator{Program: "szx", Major: 1}, Options{})
	if err != nil {
		t.Fatalf("write file: %v", err)
	}
	if loss != 0 {
		t.Fatalf("loss flags: got %v want 0", loss)
	}

	got, err := ReadFile(path, Options{})
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	m, err := InspectFile(path)
	if err != nil {
		t.Fatalf("inspect file: %v", err)
	}
	if m.Creator == nil || m.Creator.Program != "szx" {
		t.Fatalf("creator: got %+v", m.Creator)
	}
}

func TestReadFrom(t *testing.T) {
	t.Parallel()

	want := fullSnapshot()
	data, _ := encode(t, want, Options{})
	got, err := ReadFrom(bytes.NewReader(data), int64(len(data)), Options{})
	if err != nil {
		t.Fatalf("read from: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	// A size past the end of the reader is a short read.
	if _, err := ReadFrom(bytes.NewReader(data), int64(len(data))+4, Options{}); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("short read: got %v want %v", err, ErrCorrupt)
	}
	if _, err := ReadFrom(bytes.NewReader(data), -1, Options{}); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("negative size: got %v want %v", err, ErrCorrupt)
	}
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := ReadFile(filepath.Join(dir, "missing.szx"), Options{}); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file: got %v want %v", err, fs.ErrNotExist)
	}

	short := filepath.Join(dir, "short.szx")
	if err := os.WriteFile(short, []byte("ZXS"), 0o644); err != nil {
		t.Fatalf("write short file: %v", err)
	}
	if _, err := ReadFile(short, Options{}); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("short file: got %v want %v", err, ErrCorrupt)
	}

	bad := filepath.Join(dir, "bad.szx")
	if err := os.WriteFile(bad, []byte("ZXSX\x01\x05\x01\x00"), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}
	if _, err := InspectFile(bad); !errors.Is(err, ErrSignature) {
		t.Fatalf("bad signature: got %v want %v", err, ErrSignature)
	}
}

func TestWriteFileEncodeError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nil.szx")
	if _, err := WriteFile(path, nil, nil, Options{}); !errors.Is(err, ErrLogic) {
		t.Fatalf("nil snapshot: got %v want %v", err, ErrLogic)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("file created on encode failure: %v", err)
	}
}
