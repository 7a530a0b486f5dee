package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go-mines/internal/game"
	"go-mines/internal/grid"
	"go-mines/internal/scoring"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

var (
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Loss message, mines
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Win message
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Status line
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	coveredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boomStyle    = lipgloss.NewStyle().Background(lipgloss.Color("9")).Bold(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)

	hintColors = []lipgloss.Color{"12", "10", "9", "13", "1", "6", "15", "7"}
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Reveal  key.Binding
	Flag    key.Binding
	Restart key.Binding
	Easy    key.Binding
	Medium  key.Binding
	Hard    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Flag, k.Restart, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reveal, k.Flag, k.Restart},
		{k.Easy, k.Medium, k.Hard},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Reveal:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "reveal")),
	Flag:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag")),
	Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Easy:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "easy")),
	Medium:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "medium")),
	Hard:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "hard")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type LocalState struct {
	Session *game.Session
	Cursor  grid.Coordinate
	Err     error // last restart error, shown until the next restart

	keys keyMap
	help help.Model
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func initialModel(preset game.Preset, storage scoring.ScoreStorage, log logrus.FieldLogger) (*LocalState, error) {
	sess, err := game.NewSession(preset, storage, log)
	if err != nil {
		return nil, err
	}

	return &LocalState{
		Session: sess,
		keys:    keys,
		help:    help.New(),
	}, nil
}

func (s *LocalState) Init() tea.Cmd {
	return tickCmd()
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	g := s.Session.CurrentGame

	switch msg := msg.(type) {
	case TickMsg:
		g.HandleTick()
		s.Session.Update()
		return s, tickCmd()
	case tea.WindowSizeMsg:
		s.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keys.Help):
			s.help.ShowAll = !s.help.ShowAll
		case key.Matches(msg, s.keys.Up):
			s.move(-1, 0)
		case key.Matches(msg, s.keys.Down):
			s.move(1, 0)
		case key.Matches(msg, s.keys.Left):
			s.move(0, -1)
		case key.Matches(msg, s.keys.Right):
			s.move(0, 1)
		case key.Matches(msg, s.keys.Reveal):
			g.Reveal(s.Cursor)
		case key.Matches(msg, s.keys.Flag):
			g.ToggleFlag(s.Cursor)
		case key.Matches(msg, s.keys.Restart):
			s.restart(nil)
		case key.Matches(msg, s.keys.Easy):
			s.restart(&game.Easy)
		case key.Matches(msg, s.keys.Medium):
			s.restart(&game.Medium)
		case key.Matches(msg, s.keys.Hard):
			s.restart(&game.Hard)
		}
		s.Session.Update()
	}

	return s, nil
}

// move shifts the cursor, clamped to the board.
func (s *LocalState) move(dr, dc int) {
	size := s.Session.CurrentGame.Size()
	s.Cursor.Row = clamp(s.Cursor.Row+dr, 0, size.Rows-1)
	s.Cursor.Column = clamp(s.Cursor.Column+dc, 0, size.Columns-1)
}

func (s *LocalState) restart(p *game.Preset) {
	s.Err = s.Session.Restart(p)
	s.move(0, 0)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *LocalState) RenderBoard() string {
	var b strings.Builder
	g := s.Session.CurrentGame
	size := g.Size()

	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Columns; c++ {
			at := grid.Coordinate{Row: r, Column: c}
			tile, _ := g.Tile(at)
			cell := renderTile(tile, g.State.IsExploded(at))
			if !g.IsOver() && at == s.Cursor {
				cell = lipgloss.NewStyle().Reverse(true).Render(" " + tileGlyph(tile) + " ")
			}
			b.WriteString(cell)
		}
		if r < size.Rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func tileGlyph(t grid.Tile) string {
	if t.Covered {
		if t.Flagged {
			return "F"
		}
		return "■"
	}
	switch c := t.Content.(type) {
	case grid.Mine:
		return "*"
	case grid.Hint:
		return strconv.Itoa(c.Count)
	}
	return " "
}

func renderTile(t grid.Tile, exploded bool) string {
	glyph := " " + tileGlyph(t) + " "
	if t.Covered {
		if t.Flagged {
			return flagStyle.Render(glyph)
		}
		return coveredStyle.Render(glyph)
	}
	switch c := t.Content.(type) {
	case grid.Mine:
		if exploded {
			return boomStyle.Render(glyph)
		}
		return redStyle.Render(glyph)
	case grid.Hint:
		color := hintColors[(c.Count-1)%len(hintColors)]
		return lipgloss.NewStyle().Foreground(color).Render(glyph)
	}
	return glyph
}

func (s *LocalState) View() string {
	g := s.Session.CurrentGame

	// 1. Banner
	display := boldStyle.Render("MINES: "+g.Preset.String()) + "\n"

	// 2. Board
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		Padding(0, 1)
	display += borderStyle.Render(s.RenderBoard())

	// 3. Status line
	elapsed := g.State.Elapsed
	statusLine := fmt.Sprintf("MINES LEFT: %d | TIME: %02d:%02d | WINS: %d | LOSSES: %d",
		g.MinesLeft(), elapsed/60, elapsed%60, s.Session.Wins, s.Session.Losses)
	display += "\n" + scoreStyle.Render(statusLine) + "\n"

	if best := g.Score.GetBestEntry(); best != nil {
		display += fmt.Sprintf("\nAttempt: %d | Best time (%s): %ds\n", g.Score.GetAttempts()+1, g.Preset.Name, best.Seconds)
	} else {
		display += "\nNo wins on this difficulty yet. Good luck!\n"
	}

	// 4. Final messages
	if msg := g.State.ResultMessage(); msg != "" {
		if g.Won() {
			display += "\n" + greenStyle.Render(fmt.Sprintf("%s Time: %ds", msg, elapsed))
			if g.Score.GotBestTime() {
				display += "\nNew best time! Fastest wins:"
				for _, entry := range g.Score.GetNScoreEntries(5) {
					display += fmt.Sprintf("\n  * %ds on %s", entry.Seconds, entry.Timestamp)
				}
			}
		} else {
			display += "\n" + redStyle.Render(msg)
		}
		display += "\nPress r to play again."
		if err := g.SaveErr(); err != nil {
			display += "\n" + redStyle.Render("Could not save score: "+err.Error())
		}
		display += "\n"
	}

	if s.Err != nil {
		display += "\n" + redStyle.Render(s.Err.Error()) + "\n"
	}

	return display + "\n" + s.help.View(s.keys)
}

func newLogger(path, level string) (*logrus.Logger, io.Closer, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(lvl)

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if path == "" {
		log.SetOutput(io.Discard)
		return log, io.NopCloser(strings.NewReader("")), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return log, f, nil
}

func main() {
	cfg, err := game.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	var presetPath string

	flag.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "Difficulty: easy, medium, hard or custom")
	flag.StringVar(&cfg.Difficulty, "d", cfg.Difficulty, "Difficulty (shorthand)")
	flag.StringVar(&presetPath, "preset", "", "Load a custom board from a .env-style file")
	flag.StringVar(&cfg.ScoresPath, "scores", cfg.ScoresPath, "Path of the score history file")
	flag.BoolVar(&cfg.NoScores, "no-scores", cfg.NoScores, "Keep scores in memory only")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "   -d, --difficulty=NAME   easy (5x3, 3 mines), medium (7x5, 6), hard (10x6, 8) or custom\n")
		fmt.Fprintf(os.Stderr, "       --preset=FILE       Custom board from MINES_ROWS, MINES_COLUMNS and MINES_MINES\n")
		fmt.Fprintf(os.Stderr, "       --scores=FILE       Score history file (default ~/.config/go-mines/scores.json)\n")
		fmt.Fprintf(os.Stderr, "       --no-scores         Do not read or write the score history\n")
		fmt.Fprintf(os.Stderr, "       --log-file=FILE     Write logs to FILE\n")
		fmt.Fprintf(os.Stderr, "       --log-level=LEVEL   debug, info, warn or error\n")
		fmt.Fprintf(os.Stderr, "   -h, --help              Show this help message\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment and ./.env: MINES_DIFFICULTY, MINES_ROWS, MINES_COLUMNS, MINES_MINES,\n")
		fmt.Fprintf(os.Stderr, "MINES_SCORES_PATH, MINES_NO_SCORES, MINES_LOG_FILE, MINES_LOG_LEVEL\n")
	}

	flag.Parse()

	log, closer, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Printf("Error configuring logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	var preset game.Preset
	if presetPath != "" {
		preset, err = game.LoadPreset(presetPath)
	} else {
		preset, err = cfg.ResolvePreset()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	var storage scoring.ScoreStorage
	if cfg.NoScores {
		storage = scoring.NewMemoryStorage()
	} else {
		fileStorage, err := scoring.NewJSONFileStorage(cfg.ScoresPath)
		if err != nil {
			fmt.Printf("Failed to create score storage: %v\n", err)
			os.Exit(1)
		}
		log.WithField("path", fileStorage.Path()).Debug("using score file")
		storage = fileStorage
	}

	model, err := initialModel(preset, storage, log)
	if err != nil {
		fmt.Printf("Error initializing model: %v\n", err)
		os.Exit(1)
	}
	log.WithField("preset", preset.String()).Info("starting")

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error starting the program: %v\n", err)
	}

	fmt.Printf("Played %d, won %d, lost %d\n", model.Session.Played, model.Session.Wins, model.Session.Losses)
}
