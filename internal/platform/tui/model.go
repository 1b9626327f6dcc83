package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"gauntlet-arcade/internal/auth"
	"gauntlet-arcade/internal/config"
	"gauntlet-arcade/internal/core"
	"gauntlet-arcade/internal/persist"
	"gauntlet-arcade/internal/playlist"
	"gauntlet-arcade/internal/registry"
	"gauntlet-arcade/internal/session"
)

// playlistLoadedMsg resolves a playlist fetch.
type playlistLoadedMsg struct {
	pl *playlist.Playlist
}

// playlistFailedMsg reports a failed playlist fetch.
type playlistFailedMsg struct {
	err error
}

// loadPlaylistCmd fetches a playlist off the UI loop.
func loadPlaylistCmd(store persist.RemoteStore, playlistID string) tea.Cmd {
	return func() tea.Msg {
		pl, err := store.LoadPlaylist(playlistID)
		if err != nil {
			return playlistFailedMsg{err: err}
		}
		return playlistLoadedMsg{pl: pl}
	}
}

// SessionOptions configures a session model.
type SessionOptions struct {
	Config  config.SessionConfig
	Runtime core.RuntimeConfig
	Store   persist.RemoteStore
	Gateway *persist.Gateway

	// Auth is the interactive sign-in service. Nil over SSH, where the
	// connection's username is already the identity.
	Auth *auth.Service

	// PlaylistID selects curated mode; empty means random draw.
	PlaylistID string

	// Resume seeds rounds a guest already completed in this playlist, so
	// a reloaded session picks up where the draft left off.
	Resume []session.RoundRecord

	Logger *log.Logger
}

// SessionModel is the Bubble Tea model hosting one arcade session.
type SessionModel struct {
	controller *session.Controller
	gateway    *persist.Gateway
	authSvc    *auth.Service
	store      persist.RemoteStore
	screen     *core.Screen
	keymap     *KeyMapper
	frame      core.InputFrame
	cfg        core.RuntimeConfig
	playlistID string
	logger     *log.Logger

	signIn    textinput.Model
	signingIn bool
	quitting  bool
}

// NewSessionModel creates a session model and starts the controller at
// round 1.
func NewSessionModel(opts SessionOptions) SessionModel {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var ctrl *session.Controller
	if opts.PlaylistID != "" {
		ctrl = session.NewForPlaylist(opts.Config, rt, opts.Gateway, logger)
		ctrl.Resume(opts.Resume)
	} else {
		catalog := make([]string, 0)
		for _, info := range registry.List() {
			catalog = append(catalog, info.Slug)
		}
		ctrl = session.NewRandom(opts.Config, rt, catalog, opts.Gateway, logger)
	}
	ctrl.Start()

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 32
	ti.Width = 24

	return SessionModel{
		controller: ctrl,
		gateway:    opts.Gateway,
		authSvc:    opts.Auth,
		store:      opts.Store,
		screen:     core.NewScreen(rt.ScreenW, rt.ScreenH),
		keymap:     NewKeyMapper(),
		frame:      core.NewInputFrame(),
		cfg:        rt,
		playlistID: opts.PlaylistID,
		logger:     logger,
		signIn:     ti,
	}
}

// Init starts the tick loop and, in curated mode, the playlist fetch.
func (m SessionModel) Init() tea.Cmd {
	if m.playlistID != "" {
		return tea.Batch(tickCmd(m.cfg.TickRate), loadPlaylistCmd(m.store, m.playlistID))
	}
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case playlistLoadedMsg:
		m.controller.PlaylistLoaded(msg.pl, playlist.TableFunc(registry.SlugForID))
		return m, nil

	case playlistFailedMsg:
		m.controller.PlaylistFailed(msg.err)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.signingIn {
		return m.handleSignInKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.controller.Quit()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.controller.State().Phase {
	case session.PhasePlaying:
		switch msg.String() {
		case "esc":
			m.controller.Quit()
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.controller.Skip()
		default:
			m.keymap.MapKeyToFrame(msg, &m.frame)
		}

	case session.PhaseResults:
		switch msg.String() {
		case "enter", " ":
			if evt := m.controller.ConfirmResults(); evt == session.EventAbort {
				m.quitting = true
				return m, tea.Quit
			}
		case "l":
			if m.canSignIn() {
				m.signingIn = true
				return m, m.signIn.Focus()
			}
		}

	case session.PhaseComplete:
		switch msg.String() {
		case "l":
			if m.canSignIn() {
				m.signingIn = true
				return m, m.signIn.Focus()
			}
		case "enter", "q", "esc":
			m.controller.Unmount()
			m.quitting = true
			return m, tea.Quit
		}

	default:
		if msg.String() == "q" || msg.String() == "esc" {
			m.controller.Unmount()
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SessionModel) handleSignInKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := m.signIn.Value()
		if name != "" {
			if _, err := m.authSvc.SignIn(name); err != nil {
				m.logger.Error("tui: sign-in failed", "error", err)
			}
		}
		m.signingIn = false
		m.signIn.Blur()
		return m, nil
	case "esc":
		m.gateway.DeclinePending()
		m.signingIn = false
		m.signIn.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.signIn, cmd = m.signIn.Update(msg)
	return m, cmd
}

func (m SessionModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	evt := m.controller.Tick(m.frame)
	m.frame.Clear()

	switch evt {
	case session.EventAbort:
		m.quitting = true
		return m, tea.Quit
	case session.EventSignInPrompt:
		if m.canSignIn() && m.gateway.Pending() {
			m.signingIn = true
			return m, tea.Batch(tickCmd(m.cfg.TickRate), m.signIn.Focus())
		}
	}

	return m, tickCmd(m.cfg.TickRate)
}

// canSignIn reports whether the interactive sign-in overlay applies:
// there is an auth service and the player is still anonymous.
func (m SessionModel) canSignIn() bool {
	return m.authSvc != nil && m.authSvc.Current() == nil
}

// View renders the current phase.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.controller.State().Phase {
	case session.PhaseIntro:
		body = m.viewIntro()
	case session.PhasePlaying:
		body = m.viewPlaying()
	case session.PhaseResults:
		body = m.viewResults()
	case session.PhaseComplete:
		body = m.viewComplete()
	}

	if m.signingIn {
		body += "\n" + m.viewSignIn()
	}
	return body
}

// RunSession starts the Bubble Tea program for a local session.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func (m SessionModel) viewPlaying() string {
	game := m.controller.CurrentGame()
	if game == nil {
		return ""
	}

	m.screen.Clear()
	game.Render(m.screen)

	hud := fmt.Sprintf(" %s  │  time %2.0fs  │  session total %.0f ",
		game.Title(),
		m.controller.TimeRemaining(),
		m.controller.State().RunningTotal(),
	)
	return hudStyle.Render(hud) + "\n" + RenderScreen(m.screen)
}
