package artifact

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := map[string]any{"path": "a > b & c", "title": "Sīlakkhandhavaggapāḷi", "n": nil}
	if err := Encode(&buf, v); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := "{\n  \"n\": null,\n  \"path\": \"a > b & c\",\n  \"title\": \"Sīlakkhandhavaggapāḷi\"\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestWriteRead(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "out", "a.json")
	in := []string{"s0101m.mul.xml", "s0101a.att.xml"}

	n, err := Write(path, in)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() != n {
		t.Errorf("Write reported %d bytes, file has %d", n, info.Size())
	}

	var out []string
	if err := Read(path, &out); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("Read = %v, want %v", out, in)
	}
}

func TestWrite_Unencodable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	if _, err := Write(path, func() {}); err == nil {
		t.Fatal("Write of a func succeeded")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("partial file left behind (stat err = %v)", err)
	}
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	var v []string
	if err := Read(filepath.Join(dir, "missing.json"), &v); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Read(bad, &v); err == nil {
		t.Error("Read of malformed JSON succeeded")
	}
}
