package telemetry

import (
	"fmt"
	"log/slog"
	"time"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkNewSpecies BookmarkType = "new_species"
	BookmarkMergeBurst BookmarkType = "merge_burst"
	BookmarkCloseCall  BookmarkType = "close_call"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Session     int          `csv:"session"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"session", b.Session,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable windows: a species reached for the first
// time, an unusual burst of merges, or a pile that nearly ended the game.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	grace    time.Duration
	bestRank int // highest rank seen in any window so far
}

// NewBookmarkDetector creates a detector with the given history size.
// grace is the game-over grace period used to judge close calls.
func NewBookmarkDetector(historySize int, grace time.Duration) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
		grace:       grace,
		bestRank:    -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkNewSpecies(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkMergeBurst(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkCloseCall(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkNewSpecies(stats WindowStats) *Bookmark {
	if stats.MaxRank <= bd.bestRank {
		return nil
	}
	first := bd.bestRank < 0
	bd.bestRank = stats.MaxRank
	if first {
		// The opening window always sets the baseline
		return nil
	}
	return &Bookmark{
		Type:        BookmarkNewSpecies,
		Tick:        stats.WindowEndTick,
		Session:     stats.Session,
		Description: fmt.Sprintf("First %s on the board (rank %d)", stats.MaxSpecies, stats.MaxRank),
	}
}

func (bd *BookmarkDetector) checkMergeBurst(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Merges
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Merges) > avg*2.0 && stats.Merges >= 3 {
		return &Bookmark{
			Type:        BookmarkMergeBurst,
			Tick:        stats.WindowEndTick,
			Session:     stats.Session,
			Description: fmt.Sprintf("%d merges is %.1fx average (%.1f)", stats.Merges, float64(stats.Merges)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkCloseCall(stats WindowStats) *Bookmark {
	if bd.grace <= 0 || stats.Phase != "playing" {
		return nil
	}
	half := bd.grace.Seconds() / 2
	if stats.PeakOverLineSec < half {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkCloseCall,
		Tick:        stats.WindowEndTick,
		Session:     stats.Session,
		Description: fmt.Sprintf("Pile held over the line for %.2fs of %.2fs", stats.PeakOverLineSec, bd.grace.Seconds()),
	}
}
