package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.lr", []byte("hello world"), 0)
	id2 := fs.Add("test.lr", []byte("hello universe"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetByPath("test.lr")
	if !ok {
		t.Fatal("expected file to exist after Add")
	}
	if latest.ID != id2 {
		t.Errorf("expected latest id %d, got %d", id2, latest.ID)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("old version lost: %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("expected 2 files, got %d", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.lr", []byte("first\nsecond\n\nlast")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, ""},
		{4, "last"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		raw   []byte
		want  string
		flags FileFlags
	}{
		{"plain", []byte("let x = 1;\n"), "let x = 1;\n", 0},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "a\n"...), "a\n", FileHadBOM},
		{"crlf", []byte("a\r\nb\r\n"), "a\nb\n", FileNormalizedCRLF},
		{"lone cr kept", []byte("a\rb"), "a\rb", 0},
		{"utf16le", []byte{0xFF, 0xFE, 'o', 0, 'k', 0}, "ok", FileHadBOM | FileDecodedUTF16},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'o', 0, 'k'}, "ok", FileHadBOM | FileDecodedUTF16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".lr")
			if err := os.WriteFile(path, tt.raw, 0o600); err != nil {
				t.Fatal(err)
			}
			fs := NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			f := fs.Get(id)
			if string(f.Content) != tt.want {
				t.Errorf("content = %q, want %q", f.Content, tt.want)
			}
			if f.Flags != tt.flags {
				t.Errorf("flags = %b, want %b", f.Flags, tt.flags)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.lr")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatPath(t *testing.T) {
	if got := FormatPath("/very/long/absolute/path/that/goes/on/and/on/main.lr", "auto", ""); got != "main.lr" {
		t.Errorf("auto: got %q", got)
	}
	if got := FormatPath("src/main.lr", "auto", ""); got != "src/main.lr" {
		t.Errorf("auto short: got %q", got)
	}
	if got := FormatPath("src/main.lr", "basename", ""); got != "main.lr" {
		t.Errorf("basename: got %q", got)
	}
}
