// Package tui renders the interactive terminal front end: it solicits answers
// and displays questions, candidates, and guesses. All decision-making stays
// in the engine; this layer is purely I/O.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pokedexlabs/pokenator/internal/catalog"
	"github.com/pokedexlabs/pokenator/internal/domain"
	"github.com/pokedexlabs/pokenator/internal/engine"
	"github.com/pokedexlabs/pokenator/internal/game"
)

type phase int

const (
	phaseAsking phase = iota
	phaseGuessing
	phaseWon
	phaseLost
)

// responseOptions maps the five answer keys to responses, in display order.
var responseOptions = []struct {
	Key      string
	Label    string
	Response domain.Response
}{
	{"1", "Yes", domain.ResponseYes},
	{"2", "Somewhat", domain.ResponseSomewhat},
	{"3", "Not really", domain.ResponseNotReally},
	{"4", "No", domain.ResponseNo},
	{"5", "Don't know", domain.ResponseDontKnow},
}

type keyMap struct {
	Answer  key.Binding
	Yes     key.Binding
	No      key.Binding
	Restart key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Answer, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Answer, k.Yes, k.No}, {k.Restart, k.Quit}}
}

var keys = keyMap{
	Answer: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5"),
		key.WithHelp("1-5", "answer"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "correct"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "wrong"),
	),
	Restart: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "new game"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model drives one local game session.
type Model struct {
	catalog *catalog.Catalog
	session *game.Session

	phase    phase
	question *domain.Question
	guess    *domain.Candidate
	ranked   []engine.RankedCandidate

	keys keyMap
	help help.Model
	err  error
}

// NewModel starts a session over the catalog and queues its first question.
func NewModel(cat *catalog.Catalog) (Model, error) {
	session, err := game.NewSession(cat)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		catalog: cat,
		session: session,
		keys:    keys,
		help:    help.New(),
	}
	m.advance()
	return m, nil
}

// advance moves to the next question or a terminal phase.
func (m *Model) advance() {
	m.ranked = m.session.TopCandidates(game.DefaultTopCandidates)

	if guess := m.session.ShouldGuess(); guess != nil {
		m.guess = guess
		m.phase = phaseGuessing
		return
	}

	if m.session.Over() {
		m.phase = phaseLost
		m.session.Finish(false)
		return
	}

	q := m.session.NextQuestion()
	if q == nil {
		// Nothing left worth asking; commit to the best candidate if any.
		if guess := m.session.ShouldGuess(); guess != nil {
			m.guess = guess
			m.phase = phaseGuessing
			return
		}
		m.phase = phaseLost
		return
	}

	m.question = q
	m.phase = phaseAsking
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Restart):
			fresh, err := NewModel(m.catalog)
			if err != nil {
				m.err = err
				return m, nil
			}
			return fresh, nil
		}

		switch m.phase {
		case phaseAsking:
			return m.updateAsking(msg)
		case phaseGuessing:
			return m.updateGuessing(msg)
		}
	}

	return m, nil
}

func (m Model) updateAsking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Answer) || m.question == nil {
		return m, nil
	}

	for _, opt := range responseOptions {
		if msg.String() != opt.Key {
			continue
		}
		if err := m.session.RecordAnswer(m.question.ID, opt.Response); err != nil {
			m.err = err
			return m, nil
		}
		m.advance()
		break
	}
	return m, nil
}

func (m Model) updateGuessing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.session.Finish(true)
		m.phase = phaseWon
	case key.Matches(msg, m.keys.No):
		m.session.RecordWrongGuess(m.guess.Name)
		m.guess = nil
		m.advance()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pokenator"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("error: %v\n\n", m.err))
	}

	switch m.phase {
	case phaseAsking:
		b.WriteString(m.viewAsking())
	case phaseGuessing:
		b.WriteString(m.viewGuessing())
	case phaseWon:
		b.WriteString(resultStyle.Render("Got it! Thanks for playing."))
		b.WriteString("\n")
	case phaseLost:
		b.WriteString(m.viewLost())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewAsking() string {
	var b strings.Builder

	round := m.session.QuestionsAsked() + 1
	b.WriteString(faintStyle.Render(fmt.Sprintf("Question %d of %d", round, engine.MaxRounds)))
	b.WriteString("\n\n")
	b.WriteString(questionStyle.Render(m.question.Text))
	b.WriteString("\n\n")

	for _, opt := range responseOptions {
		b.WriteString(optionKeyStyle.Render("["+opt.Key+"] "))
		b.WriteString(optionStyle.Render(opt.Label))
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
	b.WriteString(m.viewCandidates())
	return b.String()
}

func (m Model) viewGuessing() string {
	var b strings.Builder
	b.WriteString(guessStyle.Render(fmt.Sprintf("Is it %s?", m.guess.Name)))
	b.WriteString("\n\n")
	b.WriteString(optionKeyStyle.Render("[y] "))
	b.WriteString(optionStyle.Render("Yes!"))
	b.WriteString("   ")
	b.WriteString(optionKeyStyle.Render("[n] "))
	b.WriteString(optionStyle.Render("No, keep trying"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewLost() string {
	var b strings.Builder
	b.WriteString(resultStyle.Render("You win, I couldn't figure it out."))
	b.WriteString("\n\n")
	if len(m.ranked) > 0 {
		b.WriteString(faintStyle.Render("My best candidates were:"))
		b.WriteString("\n")
		b.WriteString(m.viewCandidates())
	}
	return b.String()
}

func (m Model) viewCandidates() string {
	var b strings.Builder
	for i, rc := range m.ranked {
		line := fmt.Sprintf("%-16s %5.1f%%", rc.Candidate.Name, rc.Probability*100)
		if i == 0 {
			b.WriteString(candidateTopStyle.Render(line))
		} else {
			b.WriteString(candidateStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
