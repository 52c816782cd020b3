package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/supernova"
	"github.com/fwojciec/supernova/ingest"
	"github.com/fwojciec/supernova/markdown"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the supernova TUI. It renders from
// Store snapshots; all conversation mutations go through the Engine.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test
	// access.
	Viewport viewport.Model

	engine   *supernova.Engine
	store    *supernova.Store
	ingestor *ingest.Ingestor
	theme    supernova.Theme
	styles   Styles
	updates  <-chan struct{}

	sending bool
	notice  string
	ready   bool
}

// New creates a TUI Model. The updates channel carries the engine's
// onUpdate notifications into the program loop.
func New(engine *supernova.Engine, store *supernova.Store, ingestor *ingest.Ingestor, theme supernova.Theme, updates <-chan struct{}) Model {
	ti := textinput.New()
	ti.Placeholder = "Envie uma mensagem..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	return Model{
		Input:    ti,
		engine:   engine,
		store:    store,
		ingestor: ingestor,
		theme:    theme,
		styles:   NewStyles(theme),
		updates:  updates,
	}
}

// Sending returns whether a send is in flight. Exported for tests.
func (m Model) Sending() bool { return m.sending }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForUpdate(m.updates))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case UpdateMsg:
		m = m.refresh()
		return m, listenForUpdate(m.updates)

	case SendDoneMsg:
		m.sending = false
		m = m.refresh()
		return m, m.Input.Focus()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.sending {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	chromeHeight := 4 // header, status, input, separators
	vpHeight := msg.Height - chromeHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = msg.Width
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if strings.HasPrefix(text, "/") {
			return m.handleCommand(text)
		}
		return m.submitInput()

	case tea.KeyCtrlN:
		m.engine.NewSession(context.Background())
		m.Input.SetValue("")
		m.notice = ""
		return m.refresh(), nil

	case tea.KeyCtrlO:
		m.selectNextSession()
		return m.refresh(), nil

	case tea.KeyCtrlX:
		if m.sending {
			// Deleting the session under an in-flight stream would
			// orphan the pending message.
			return m, nil
		}
		m.store.DeleteSession(context.Background(), m.store.CurrentID())
		return m.refresh(), nil

	case tea.KeyCtrlP:
		m = m.cycleModel()
		return m.refresh(), nil
	}

	if !m.sending {
		var cmd tea.Cmd
		var cmds []tea.Cmd
		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// handleCommand handles slash commands typed into the input. Only
// /attach exists today.
func (m Model) handleCommand(text string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(text)
	switch fields[0] {
	case "/attach":
		if len(fields) < 2 {
			m.notice = "Uso: /attach <arquivo> [...]"
			return m, nil
		}
		atts := m.ingestor.Files(fields[1:]...)
		m.engine.Attach(atts...)
		m.notice = fmt.Sprintf("%d imagem(ns) anexada(s)", len(atts))
		m.Input.SetValue("")
		return m, nil
	default:
		m.notice = fmt.Sprintf("Comando desconhecido: %s", fields[0])
		return m, nil
	}
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.Input.Value()
	if strings.TrimSpace(text) == "" && len(m.engine.Attachments()) == 0 {
		return m, nil
	}
	m.engine.SetInput(text)
	m.Input.SetValue("")
	m.Input.Blur()
	m.notice = ""
	m.sending = true
	return m.refresh(), send(m.engine)
}

// selectNextSession cycles the current pointer through the collection.
func (m *Model) selectNextSession() {
	sessions := m.store.Sessions()
	if len(sessions) < 2 {
		return
	}
	cur := m.store.CurrentID()
	for i, s := range sessions {
		if s.ID == cur {
			m.store.SelectSession(sessions[(i+1)%len(sessions)].ID)
			return
		}
	}
}

// cycleModel advances the selection to the next model in picker order,
// skipping premium profiles when not entitled and noting the lock.
func (m Model) cycleModel() Model {
	cur := m.engine.Model()
	start := 0
	for i, id := range supernova.ModelIDs {
		if id == cur {
			start = i
			break
		}
	}
	skippedPremium := false
	for i := 1; i <= len(supernova.ModelIDs); i++ {
		id := supernova.ModelIDs[(start+i)%len(supernova.ModelIDs)]
		if m.engine.SelectModel(id) {
			if skippedPremium {
				m.notice = "Modelos premium bloqueados — faça upgrade para desbloquear"
			} else {
				m.notice = ""
			}
			return m
		}
		skippedPremium = true
	}
	return m
}

func (m Model) refresh() Model {
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) renderContent() string {
	cur, ok := m.store.Current()
	if !ok {
		return ""
	}
	width := m.Viewport.Width
	var b strings.Builder
	for i, msg := range cur.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg, width))
	}
	return b.String()
}

func (m Model) renderMessage(msg supernova.Message, width int) string {
	switch {
	case msg.Role == supernova.RoleUser:
		var b strings.Builder
		b.WriteString(m.styles.UserMsg.Render("> ") + msg.Content)
		for _, att := range msg.Attachments {
			b.WriteString("\n" + m.styles.Muted.Render("[imagem: "+att.MimeType+"]"))
		}
		return b.String()
	case msg.IsError:
		return m.styles.Error.Render(msg.Content)
	case msg.Content == "":
		// Placeholder assistant message before the first fragment.
		return m.styles.Muted.Render("…")
	default:
		return markdown.Render(msg.Content, width, m.theme)
	}
}

func (m Model) headerLine() string {
	cur, _ := m.store.Current()
	sessions := m.store.Sessions()
	pos := ""
	for i, s := range sessions {
		if s.ID == cur.ID {
			pos = fmt.Sprintf("%d/%d", i+1, len(sessions))
			break
		}
	}
	profile := supernova.ResolveProfile(m.engine.Model())
	model := profile.DisplayName
	if profile.RequiresPremium {
		model += " ✦"
	}
	return m.styles.Accent.Render("Supernova") + " " +
		m.styles.Muted.Render(pos) + "  " + cur.Title + "  " +
		m.styles.Muted.Render("["+model+"]")
}

func (m Model) statusLine() string {
	if m.sending {
		return m.styles.Muted.Render("Gerando resposta...")
	}
	if m.notice != "" {
		return m.styles.Success.Render(m.notice)
	}
	if n := len(m.engine.Attachments()); n > 0 {
		return m.styles.Muted.Render(fmt.Sprintf("%d anexo(s) pendente(s)", n))
	}
	return m.styles.Muted.Render("Enter envia • /attach <arquivo> • ^N nova • ^O alterna • ^X apaga • ^P modelo • ^C sai")
}

// send runs the engine's send flow to its terminal state. There is no
// cancellation: once streaming begins the exchange runs to completion or
// failure, so the command uses a background context.
func send(engine *supernova.Engine) tea.Cmd {
	return func() tea.Msg {
		engine.Send(context.Background())
		return SendDoneMsg{}
	}
}

// listenForUpdate waits for the next engine notification.
func listenForUpdate(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return UpdateMsg{}
	}
}
