// Package ui implements an interactive terminal browser for the song catalog using bubbletea's Elm architecture.
//
// The TUI provides four views over a [services.SongAPI]:
//  1. [ListView] : One page of songs with server-side search, sorting and paging
//  2. [DetailView] : Every field of the selected song
//  3. [ConfirmView] : Confirm deleting the selected song
//  4. [FormView] : Add a song or edit the selected one; required fields are checked before sending
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving API results via the Msg union type.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l, a/e, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
