package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadSnapshot(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version:   SnapshotVersion,
		RNGSeed:   12345,
		Tick:      1000,
		Session:   2,
		Phase:     "playing",
		Score:     140,
		HighScore: 300,
		Next:      "mouse",
		Pieces: []PieceState{
			{Species: "mouse", X: 100, Y: 700, Origin: "dropped"},
			{Species: "rabbit", X: 140.5, Y: 690, Origin: "merged"},
		},
		Bookmark: &Bookmark{
			Type:        BookmarkCloseCall,
			Tick:        1000,
			Description: "Test bookmark",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != snapshot.RNGSeed || loaded.Tick != snapshot.Tick {
		t.Errorf("header mismatch: got seed %d tick %d", loaded.RNGSeed, loaded.Tick)
	}
	if loaded.Score != 140 || loaded.HighScore != 300 || loaded.Next != "mouse" {
		t.Errorf("score fields = %d/%d/%q", loaded.Score, loaded.HighScore, loaded.Next)
	}
	if len(loaded.Pieces) != 2 || loaded.Pieces[1] != snapshot.Pieces[1] {
		t.Errorf("Pieces = %+v", loaded.Pieces)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkCloseCall {
		t.Errorf("Bookmark = %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	withBookmark := &Snapshot{
		Version:  SnapshotVersion,
		Tick:     5000,
		Bookmark: &Bookmark{Type: BookmarkNewSpecies, Tick: 5000},
	}
	path, err := SaveSnapshot(withBookmark, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_5000_new_species.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_3000.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestLoadSnapshotRejectsBadInput(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "abc"},
		{"future version", `{"version": 99}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSnapshot(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadSnapshot(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
