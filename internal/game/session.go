package game

import (
	"go-mines/internal/scoring"

	"github.com/sirupsen/logrus"
)

// Session owns the single active game and replaces it on restart. It is
// passed explicitly to whoever drives the game.
type Session struct {
	Preset       Preset
	CurrentGame  *Game
	ScoreStorage scoring.ScoreStorage

	// Aggregate State
	Played int
	Wins   int
	Losses int

	counted bool
	log     logrus.FieldLogger
}

// NewSession starts the first game of preset.
func NewSession(preset Preset, storage scoring.ScoreStorage, log logrus.FieldLogger) (*Session, error) {
	if err := preset.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if storage == nil {
		storage = scoring.NewMemoryStorage()
	}

	s := &Session{
		Preset:       preset,
		ScoreStorage: storage,
		log:          log,
	}
	if err := s.NextGame(); err != nil {
		return nil, err
	}
	return s, nil
}

// NextGame discards the current game and starts a new one with the same
// preset.
func (s *Session) NextGame() error {
	return s.start(s.Preset)
}

// Restart starts a new game, optionally switching difficulty. On error the
// session keeps its current preset and game.
func (s *Session) Restart(preset *Preset) error {
	next := s.Preset
	if preset != nil {
		if err := preset.Validate(); err != nil {
			return err
		}
		next = *preset
	}
	s.log.WithField("difficulty", next.Name).Info("restarting")
	return s.start(next)
}

func (s *Session) start(preset Preset) error {
	g, err := NewGame(preset, s.ScoreStorage, s.log)
	if err != nil {
		return err
	}
	s.Preset = preset
	s.CurrentGame = g
	s.counted = false
	return nil
}

// Update folds the outcome of a finished game into the session totals.
// It counts each game once.
func (s *Session) Update() {
	g := s.CurrentGame
	if g == nil || s.counted || !g.IsOver() {
		return
	}
	s.counted = true
	s.Played++
	if g.Won() {
		s.Wins++
	} else {
		s.Losses++
	}
}

func (s *Session) IsFinished() bool {
	return s.CurrentGame != nil && s.CurrentGame.IsOver()
}
