package highscore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoad(t *testing.T) {
	tests := []struct {
		name    string
		content *string // nil = no file
		want    int
		wantOK  bool
	}{
		{"missing file", nil, 0, false},
		{"plain", strp("1250"), 1250, true},
		{"trailing newline", strp("42\n"), 42, true},
		{"padded", strp("  7  "), 7, true},
		{"zero", strp("0"), 0, true},
		{"garbage", strp("abc"), 0, false},
		{"empty", strp(""), 0, false},
		{"negative", strp("-5"), 0, false},
		{"float", strp("12.5"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "highscore.txt")
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got, ok := NewFile(path).Load()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Load() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFileReadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.txt")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFile(path).Read(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Read() error = %v, want ErrCorrupt", err)
	}
}

func TestFileSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "highscore.txt")
	store := NewFile(path)

	if err := store.Save(300); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(42); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "42" {
		t.Errorf("file content = %q, want %q", data, "42")
	}
	if got, ok := store.Load(); got != 42 || !ok {
		t.Errorf("Load() = %d, %v", got, ok)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestFileSaveRejectsNegative(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "highscore.txt"))
	if err := store.Save(-1); err == nil {
		t.Error("expected error for negative score")
	}
}

func TestMemory(t *testing.T) {
	var m Memory
	if _, ok := m.Load(); ok {
		t.Error("zero Memory should hold no score")
	}
	if err := m.Save(10); err != nil {
		t.Fatal(err)
	}
	if got, ok := m.Load(); got != 10 || !ok || m.Saves != 1 {
		t.Errorf("Load() = %d, %v; Saves = %d", got, ok, m.Saves)
	}

	pre := NewMemory(99)
	if got, ok := pre.Load(); got != 99 || !ok {
		t.Errorf("NewMemory(99).Load() = %d, %v", got, ok)
	}
}

func strp(s string) *string { return &s }
