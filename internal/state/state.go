package state

import (
	"context"

	"go-mines/internal/grid"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Lifecycle states of a game.
const (
	Ready     = "ready"
	Playing   = "playing"
	Resolving = "resolving"
	Flagging  = "flagging"
	TimeCheck = "timeCheck"
	Won       = "won"
	Lost      = "lost"
)

// State is the per-game state: the grid plus the lifecycle machine that
// routes commands into it.
type State struct {
	Grid       *grid.Grid
	FSM        *fsm.FSM
	Win        bool
	Loss       bool
	Elapsed    int // seconds spent in the playing state
	LastResult grid.RevealResult
	LastFlag   bool // whether the last flag command changed a tile
	ExplodedAt *grid.Coordinate
	OnEnd      func(s *State) // called once when the game is won or lost

	log logrus.FieldLogger
}

// NewState wraps g in a fresh lifecycle machine. A nil logger uses the
// logrus standard logger.
func NewState(g *grid.Grid, log logrus.FieldLogger) *State {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &State{
		Grid: g,
		log:  log,
	}

	s.FSM = fsm.NewFSM(
		Ready,
		getStateTransitions(),
		getStateCallbacks(s),
	)

	return s
}

// Current returns the name of the current lifecycle state.
func (s *State) Current() string {
	return s.FSM.Current()
}

// IsOver reports whether the game has been won or lost.
func (s *State) IsOver() bool {
	return s.Win || s.Loss
}

// Start moves a ready game into play. Later calls do nothing.
func (s *State) Start(ctx context.Context) {
	if s.FSM.Current() == Ready {
		s.event(ctx, "start")
	}
}

// Reveal uncovers c and resolves the outcome. Commands on a finished game
// return an empty result.
func (s *State) Reveal(ctx context.Context, c grid.Coordinate) grid.RevealResult {
	if s.IsOver() {
		return grid.RevealResult{}
	}
	s.Start(ctx)
	s.LastResult = grid.RevealResult{}
	s.event(ctx, "reveal", c)
	return s.LastResult
}

// ToggleFlag flips the flag on c and reports whether anything changed.
func (s *State) ToggleFlag(ctx context.Context, c grid.Coordinate) bool {
	if s.IsOver() {
		return false
	}
	s.Start(ctx)
	s.LastFlag = false
	s.event(ctx, "flag", c)
	return s.LastFlag
}

// Tick advances the elapsed time by one second while the game is in play.
func (s *State) Tick(ctx context.Context) {
	if s.FSM.Current() != Playing {
		return
	}
	s.event(ctx, "tick")
}

func (s *State) event(ctx context.Context, name string, args ...interface{}) {
	if err := s.FSM.Event(ctx, name, args...); err != nil {
		s.log.WithError(err).WithField("event", name).Debug("event not applied")
	}
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{Ready}, Dst: Playing},

		// Reveal
		{Name: "reveal", Src: []string{Playing}, Dst: Resolving},
		{Name: "mineHit", Src: []string{Resolving}, Dst: Lost},
		{Name: "cleared", Src: []string{Resolving}, Dst: Won},
		{Name: "continue", Src: []string{Resolving}, Dst: Playing},

		// Flag
		{Name: "flag", Src: []string{Playing}, Dst: Flagging},
		{Name: "flagged", Src: []string{Flagging}, Dst: Playing},

		// Timer
		{Name: "tick", Src: []string{Playing}, Dst: TimeCheck},
		{Name: "timePassed", Src: []string{TimeCheck}, Dst: Playing},
	}
}

func coordinateArg(e *fsm.Event) (grid.Coordinate, bool) {
	if len(e.Args) == 0 {
		return grid.Coordinate{}, false
	}
	c, ok := e.Args[0].(grid.Coordinate)
	return c, ok
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_resolving": func(ctx context.Context, e *fsm.Event) {
			c, ok := coordinateArg(e)
			if !ok {
				e.FSM.Event(ctx, "continue")
				return
			}
			res := s.Grid.Reveal(c)
			s.LastResult = res

			if res.HitMine() {
				s.Loss = true
				s.ExplodedAt = &c
				swept := s.Grid.RevealAllMines()
				s.log.WithFields(logrus.Fields{
					"row":    c.Row,
					"column": c.Column,
					"mines":  len(swept) + 1,
				}).Info("mine hit")
				e.FSM.Event(ctx, "mineHit")
				return
			}

			if res.Content != nil && s.Grid.IsCleared() {
				s.Win = true
				e.FSM.Event(ctx, "cleared")
				return
			}

			s.log.WithFields(logrus.Fields{
				"row":       c.Row,
				"column":    c.Column,
				"content":   res.Content,
				"uncovered": len(res.Uncovered),
			}).Debug("revealed")
			e.FSM.Event(ctx, "continue")
		},
		"enter_flagging": func(ctx context.Context, e *fsm.Event) {
			c, _ := coordinateArg(e)
			s.LastFlag = s.Grid.ToggleFlag(c)
			e.FSM.Event(ctx, "flagged")
		},
		"enter_timeCheck": func(ctx context.Context, e *fsm.Event) {
			s.Elapsed++
			e.FSM.Event(ctx, "timePassed")
		},
		"enter_won": func(ctx context.Context, e *fsm.Event) {
			s.log.WithField("elapsed", s.Elapsed).Info("board cleared")
			if s.OnEnd != nil {
				s.OnEnd(s)
			}
		},
		"enter_lost": func(ctx context.Context, e *fsm.Event) {
			if s.OnEnd != nil {
				s.OnEnd(s)
			}
		},
	}
}
