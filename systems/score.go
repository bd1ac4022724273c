package systems

import "github.com/pthm-cable/zoodrop/species"

// ScoreTracker accumulates score from merges. Score only grows within
// a session.
type ScoreTracker struct {
	perRank int
	score   int
	merges  int
}

// NewScoreTracker creates a tracker awarding perRank*(rank+1) per merge.
func NewScoreTracker(perRank int) *ScoreTracker {
	return &ScoreTracker{perRank: perRank}
}

// OnMerge credits a merge into sp and returns the points awarded.
func (s *ScoreTracker) OnMerge(sp *species.Species) int {
	points := s.perRank * (sp.Rank + 1)
	s.score += points
	s.merges++
	return points
}

// Score returns the current session score.
func (s *ScoreTracker) Score() int {
	return s.score
}

// Merges returns the number of merges credited this session.
func (s *ScoreTracker) Merges() int {
	return s.merges
}

// Reset starts a new session.
func (s *ScoreTracker) Reset() {
	s.score = 0
	s.merges = 0
}

// Restore sets the running totals, for loading a saved board.
func (s *ScoreTracker) Restore(score, merges int) {
	s.score = score
	s.merges = merges
}
