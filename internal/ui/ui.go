package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/services"
	"github.com/desertthunder/songman/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
	ConfirmView
	FormView
)

// sortFields is the cycle order of the sort key binding.
var sortFields = []string{"title", "artist", "album", "createdAt"}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	api        services.SongAPI
	view       ViewState
	returnTo   ViewState
	query      models.SongQuery
	page       *models.SongPage
	stats      *models.Stats
	songs      list.Model
	search     textinput.Model
	searching  bool
	selected   *models.Song
	form       songForm
	formReturn ViewState
	status     string
	err        error
	width      int
	height     int
	help       help.Model
	keys       keyMap
}

// NewModel creates a new TUI model that browses api, pageSize songs at a time.
func NewModel(ctx context.Context, api services.SongAPI, pageSize int) *Model {
	if pageSize < 1 {
		pageSize = models.DefaultLimit
	}

	songs := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	songs.Title = "Song Catalog"
	songs.SetFilteringEnabled(false)
	songs.SetShowHelp(false)
	songs.SetShowStatusBar(false)
	songs.DisableQuitKeybindings()

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title, artist or album"

	return &Model{
		ctx:  ctx,
		api:  api,
		view: ListView,
		query: models.SongQuery{
			Page:      models.DefaultPage,
			Limit:     pageSize,
			SortBy:    models.DefaultSortBy,
			SortOrder: models.SortAsc,
		},
		songs:  songs,
		search: search,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init fetches the first page and the catalog statistics.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchSongs(), m.fetchStats())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songs.SetSize(msg.Width-4, msg.Height-8)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	if m.searching {
		m.search, cmd = m.search.Update(msg)
	} else if m.view == FormView {
		cmd = m.form.update(msg)
	} else if m.view == ListView {
		m.songs, cmd = m.songs.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsFetched:
		data := msg.data.(songsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil

		// deleting the last song of the last page leaves the current page empty
		if len(data.page.Songs) == 0 && m.query.Page > 1 {
			m.query.Page--
			return m, m.fetchSongs()
		}

		m.page = data.page
		return m, m.songs.SetItems(songItems(data.page.Songs))

	case MsgStatsFetched:
		data := msg.data.(statsFetched)
		if data.err == nil {
			m.stats = data.stats
		}
		return m, nil

	case MsgSongDeleted:
		data := msg.data.(songDeleted)
		m.view = ListView
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.selected = nil
		m.status = fmt.Sprintf("Deleted %q by %s", data.song.Title, data.song.Artist)
		return m, tea.Batch(m.fetchSongs(), m.fetchStats())

	case MsgSongSaved:
		data := msg.data.(songSaved)
		if data.err != nil {
			var verr *shared.ValidationError
			if errors.As(data.err, &verr) {
				m.form.details = verr.Details
			} else {
				m.form.err = data.err
			}
			return m, nil
		}

		m.err = nil
		if data.created {
			m.status = fmt.Sprintf("Added %q by %s", data.song.Title, data.song.Artist)
			m.view = ListView
		} else {
			m.status = fmt.Sprintf("Updated %q by %s", data.song.Title, data.song.Artist)
			m.selected = data.song
			m.view = m.formReturn
		}
		return m, tea.Batch(m.fetchSongs(), m.fetchStats())
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	case ConfirmView:
		return m.renderConfirm()
	case FormView:
		return m.renderForm()
	default:
		return m.renderList()
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if song := m.selectedSong(); song != nil {
			m.selected = song
			m.view = DetailView
		}
		return m, nil
	case key.Matches(msg, m.keys.del):
		if song := m.selectedSong(); song != nil {
			m.selected = song
			m.returnTo = ListView
			m.view = ConfirmView
		}
		return m, nil
	case key.Matches(msg, m.keys.create):
		return m, m.openForm(nil)
	case key.Matches(msg, m.keys.edit):
		if song := m.selectedSong(); song != nil {
			return m, m.openForm(song)
		}
		return m, nil
	case key.Matches(msg, m.keys.next):
		if m.page != nil && m.page.Pagination.HasNext {
			m.query.Page++
			return m, m.fetchSongs()
		}
		return m, nil
	case key.Matches(msg, m.keys.prev):
		if m.query.Page > 1 {
			m.query.Page--
			return m, m.fetchSongs()
		}
		return m, nil
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.search.SetValue(m.query.Search)
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.sort):
		m.query.SortBy = nextSortField(m.query.SortBy)
		m.query.Page = 1
		return m, m.fetchSongs()
	case key.Matches(msg, m.keys.order):
		if m.query.SortOrder == models.SortDesc {
			m.query.SortOrder = models.SortAsc
		} else {
			m.query.SortOrder = models.SortDesc
		}
		m.query.Page = 1
		return m, m.fetchSongs()
	case key.Matches(msg, m.keys.refresh):
		m.status = ""
		return m, tea.Batch(m.fetchSongs(), m.fetchStats())
	case key.Matches(msg, m.keys.back):
		if m.query.Search != "" {
			m.query.Search = ""
			m.query.Page = 1
			return m, m.fetchSongs()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songs, cmd = m.songs.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.query.Search = strings.TrimSpace(m.search.Value())
		m.query.Page = 1
		return m, m.fetchSongs()
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
	case key.Matches(msg, m.keys.del):
		m.returnTo = DetailView
		m.view = ConfirmView
	case key.Matches(msg, m.keys.edit):
		return m, m.openForm(m.selected)
	}
	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m, m.deleteSong(m.selected.ID)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = m.returnTo
	}
	return m, nil
}

func (m *Model) selectedSong() *models.Song {
	item, ok := m.songs.SelectedItem().(songItem)
	if !ok {
		return nil
	}
	song := item.song
	return &song
}

func (m *Model) fetchSongs() tea.Cmd {
	q := m.query
	return func() tea.Msg {
		return songsFetchedMsg(m.api.List(m.ctx, q))
	}
}

func (m *Model) fetchStats() tea.Cmd {
	return func() tea.Msg {
		return statsFetchedMsg(m.api.Stats(m.ctx))
	}
}

func (m *Model) deleteSong(id string) tea.Cmd {
	return func() tea.Msg {
		return songDeletedMsg(m.api.Delete(m.ctx, id))
	}
}

func (m *Model) createSong(in models.SongInput) tea.Cmd {
	return func() tea.Msg {
		song, err := m.api.Create(m.ctx, in)
		return songSavedMsg(song, true, err)
	}
}

func (m *Model) updateSong(id string, in models.SongInput) tea.Cmd {
	return func() tea.Msg {
		song, err := m.api.Update(m.ctx, id, in)
		return songSavedMsg(song, false, err)
	}
}

func nextSortField(current string) string {
	for i, f := range sortFields {
		if f == current {
			return sortFields[(i+1)%len(sortFields)]
		}
	}
	return sortFields[0]
}

func (m *Model) renderList() string {
	var b strings.Builder

	b.WriteString(m.songs.View())
	b.WriteString("\n\n")

	if m.page != nil {
		p := m.page.Pagination
		totalPages := max(p.TotalPages, 1)
		fmt.Fprintf(&b, "Page %d/%d • %d songs • sorted by %s %s", p.CurrentPage, totalPages, p.TotalSongs, m.query.SortBy, m.query.SortOrder)
		if m.query.Search != "" {
			fmt.Fprintf(&b, " • search %q", m.query.Search)
		}
		b.WriteString("\n")
	}
	if m.stats != nil {
		b.WriteString(styles.help.Render(statsLine(m.stats)))
		b.WriteString("\n")
	}

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(styles.ok.Render(m.status))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.next, m.keys.prev, m.keys.search, m.keys.sort, m.keys.order, m.keys.create, m.keys.edit, m.keys.del, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDetail() string {
	s := m.selected
	title := styles.title.Render(s.Title)

	rows := []struct{ label, value string }{
		{"Artist", s.Artist},
		{"Album", s.Album},
		{"Image", s.ImageURL},
		{"Added", s.CreatedAt.Local().Format(time.DateTime)},
		{"Updated", s.UpdatedAt.Local().Format(time.DateTime)},
		{"ID", s.ID},
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(r.label), r.value)
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.edit, m.keys.del, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, b.String(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.warn.Render(fmt.Sprintf("Delete '%s' by %s?", m.selected.Title, m.selected.Artist))
	info := fmt.Sprintf("\nAlbum: %s\nThis cannot be undone.\n", m.selected.Album)

	var errLine string
	if m.err != nil {
		errLine = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n%s%s", title, info, errLine, helpView)
}

func statsLine(s *models.Stats) string {
	line := fmt.Sprintf("%d songs • %d artists • %d albums", s.TotalSongs, s.TotalArtists, s.TotalAlbums)
	if s.MostPopularArtist != nil {
		line += fmt.Sprintf(" • top artist: %s (%d)", s.MostPopularArtist.Name, s.MostPopularArtist.SongCount)
	}
	return line
}
