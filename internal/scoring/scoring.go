package scoring

import (
	"fmt"
	"time"
)

// Scoring keeps the best-time history of one difficulty and records the
// result of the game in progress.
type Scoring struct {
	// public
	Difficulty string
	GameID     string
	// private
	storage ScoreStorage // The interface for loading/saving scores.
	history ScoreHistory
	saved   bool
}

// InitScoring loads the history of the given difficulty from storage.
func InitScoring(difficulty string, gameID string, storage ScoreStorage) (*Scoring, error) {
	s := &Scoring{
		Difficulty: difficulty,
		GameID:     gameID,
		storage:    storage,
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("could not load score history: %w", err)
	}

	filtered := []ScoreHistoryEntry{}
	for _, entry := range allEntries {
		if entry.Difficulty == difficulty {
			filtered = append(filtered, entry)
		}
	}

	s.history.Entries = filtered
	s.history.Attempts = len(filtered)
	s.history.BestEntry = bestOf(s.history.Entries)

	return s, nil
}

// Record stores the result of the current game. Only the first call counts.
func (s *Scoring) Record(seconds int, won bool) {
	if s.history.Current != nil {
		return
	}
	s.history.Current = &ScoreHistoryEntry{
		GameID:     s.GameID,
		Difficulty: s.Difficulty,
		Seconds:    seconds,
		Won:        won,
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

// SaveEntries appends the recorded result to storage. It does nothing when
// no result was recorded or it was already saved.
func (s *Scoring) SaveEntries() error {
	if s.history.Current == nil || s.saved {
		return nil
	}

	allEntries, err := s.storage.LoadAll()
	if err != nil {
		return fmt.Errorf("could not load scores for saving: %w", err)
	}

	updated := make([]ScoreHistoryEntry, 0, len(allEntries)+1)
	for _, entry := range allEntries {
		if entry.GameID != s.GameID {
			updated = append(updated, entry)
		}
	}
	updated = append(updated, *s.history.Current)

	if err := s.storage.SaveAll(updated); err != nil {
		return err
	}
	s.saved = true
	return nil
}

// Accessor methods for score history, delegating to the history object.
func (s *Scoring) GetBestEntry() *ScoreHistoryEntry {
	return s.history.GetBestEntry()
}

func (s *Scoring) GetAttempts() int {
	return s.history.Attempts
}

func (s *Scoring) GotBestTime() bool {
	return s.history.GotBestTime()
}

func (s *Scoring) GetNScoreEntries(n int) []ScoreHistoryEntry {
	return s.history.GetNScoreEntries(n)
}

// Current returns the recorded result, or nil while the game is running.
func (s *Scoring) Current() *ScoreHistoryEntry {
	return s.history.Current
}
