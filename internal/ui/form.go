package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/models"
)

const (
	fieldTitle = iota
	fieldArtist
	fieldAlbum
	fieldImage
)

var formLabels = []string{"Title", "Artist", "Album", "Image"}

// songForm holds the inputs of the add and edit view.
type songForm struct {
	editing *models.Song // nil when adding
	inputs  []textinput.Model
	focus   int
	details []string
	err     error
}

// newSongForm builds a form, prefilled from song when editing.
func newSongForm(song *models.Song) songForm {
	f := songForm{editing: song, inputs: make([]textinput.Model, len(formLabels))}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.inputs[fieldImage].Placeholder = "optional, defaults to a placeholder"

	if song != nil {
		f.inputs[fieldTitle].SetValue(song.Title)
		f.inputs[fieldArtist].SetValue(song.Artist)
		f.inputs[fieldAlbum].SetValue(song.Album)
		f.inputs[fieldImage].SetValue(song.ImageURL)
	}
	return f
}

func (f *songForm) input() models.SongInput {
	return models.SongInput{
		Title:    f.inputs[fieldTitle].Value(),
		Artist:   f.inputs[fieldArtist].Value(),
		Album:    f.inputs[fieldAlbum].Value(),
		ImageURL: strings.TrimSpace(f.inputs[fieldImage].Value()),
	}
}

func (f *songForm) last() bool { return f.focus == len(f.inputs)-1 }

// move shifts focus by delta, wrapping around.
func (f *songForm) move(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *songForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (m *Model) openForm(song *models.Song) tea.Cmd {
	m.formReturn = m.view
	m.form = newSongForm(song)
	m.view = FormView
	return m.form.inputs[fieldTitle].Focus()
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = m.formReturn
		return m, nil
	case key.Matches(msg, m.keys.save):
		return m, m.submitForm()
	case key.Matches(msg, m.keys.nextField):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.prevField):
		return m, m.form.move(-1)
	case msg.Type == tea.KeyEnter:
		if m.form.last() {
			return m, m.submitForm()
		}
		return m, m.form.move(1)
	}
	return m, m.form.update(msg)
}

// submitForm checks the required fields locally before sending anything.
func (m *Model) submitForm() tea.Cmd {
	in := m.form.input()
	m.form.err = nil
	if m.form.details = catalog.Validate(in); len(m.form.details) > 0 {
		return nil
	}
	if m.form.editing == nil {
		return m.createSong(in)
	}
	return m.updateSong(m.form.editing.ID, in)
}

func (m *Model) renderForm() string {
	heading := "Add Song"
	if m.form.editing != nil {
		heading = fmt.Sprintf("Edit '%s'", m.form.editing.Title)
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(heading))
	b.WriteString("\n")
	for i, in := range m.form.inputs {
		label := styles.label.Render(formLabels[i])
		if i == m.form.focus {
			label = styles.ok.Width(10).Render(formLabels[i])
		}
		fmt.Fprintf(&b, "%s %s\n", label, in.View())
	}
	b.WriteString("\n")

	for _, d := range m.form.details {
		b.WriteString(styles.err.Render("• " + d))
		b.WriteString("\n")
	}
	if m.form.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.form.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.nextField, m.keys.prevField, m.keys.save, m.keys.back}))
	return b.String()
}
