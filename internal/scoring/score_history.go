package scoring

import (
	"sort"
)

// ScoreHistory holds the finished games of one difficulty, including the
// current game once it has been recorded.
type ScoreHistory struct {
	Entries   []ScoreHistoryEntry
	BestEntry *ScoreHistoryEntry
	Current   *ScoreHistoryEntry
	Attempts  int
}

// ScoreHistoryEntry is a single finished game.
type ScoreHistoryEntry struct {
	GameID     string `json:"game_id"`
	Difficulty string `json:"difficulty"`
	Seconds    int    `json:"seconds"`
	Won        bool   `json:"won"`
	Timestamp  string `json:"timestamp"`
}

// GetBestEntry returns the fastest win loaded from history, or nil.
func (sh ScoreHistory) GetBestEntry() *ScoreHistoryEntry {
	return sh.BestEntry
}

// GetNScoreEntries returns up to n wins, fastest first, including the
// current game if it was a win.
func (sh ScoreHistory) GetNScoreEntries(n int) []ScoreHistoryEntry {
	wins := make([]ScoreHistoryEntry, 0, len(sh.Entries)+1)
	for _, e := range sh.Entries {
		if e.Won {
			wins = append(wins, e)
		}
	}
	if sh.Current != nil && sh.Current.Won {
		wins = append(wins, *sh.Current)
	}

	sort.SliceStable(wins, func(i, j int) bool {
		return wins[i].Seconds < wins[j].Seconds
	})

	if len(wins) < n {
		return wins
	}
	return wins[:n]
}

// GotBestTime reports whether the current game is a win at least as fast
// as every earlier win.
func (sh ScoreHistory) GotBestTime() bool {
	if sh.Current == nil || !sh.Current.Won {
		return false
	}
	if sh.BestEntry == nil {
		return true
	}
	return sh.Current.Seconds <= sh.BestEntry.Seconds
}

func bestOf(entries []ScoreHistoryEntry) *ScoreHistoryEntry {
	var best *ScoreHistoryEntry
	for i := range entries {
		e := &entries[i]
		if !e.Won {
			continue
		}
		if best == nil || e.Seconds < best.Seconds {
			best = e
		}
	}
	return best
}
