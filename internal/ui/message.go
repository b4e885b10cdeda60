package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songman/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsFetched MsgKind = iota
	MsgStatsFetched
	MsgSongDeleted
	MsgSongSaved
)

type songsFetched struct {
	page *models.SongPage
	err  error
}

type statsFetched struct {
	stats *models.Stats
	err   error
}

type songSaved struct {
	song    *models.Song
	created bool
	err     error
}

type songDeleted struct {
	song *models.Song
	err  error
}

// songsFetchedMsg is the constructor for [MsgSongsFetched]
func songsFetchedMsg(page *models.SongPage, err error) Msg {
	return Msg{kind: MsgSongsFetched, data: songsFetched{page, err}}
}

// statsFetchedMsg is the constructor for [MsgStatsFetched]
func statsFetchedMsg(stats *models.Stats, err error) Msg {
	return Msg{kind: MsgStatsFetched, data: statsFetched{stats, err}}
}

// songDeletedMsg is the constructor for [MsgSongDeleted]
func songDeletedMsg(song *models.Song, err error) Msg {
	return Msg{kind: MsgSongDeleted, data: songDeleted{song, err}}
}

// songSavedMsg is the constructor for [MsgSongSaved]
func songSavedMsg(song *models.Song, created bool, err error) Msg {
	return Msg{kind: MsgSongSaved, data: songSaved{song, created, err}}
}
