package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongsList prints one page of songs.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPI(); err != nil {
		return err
	}

	q := models.SongQuery{
		Page:      cmd.Int("page"),
		Limit:     cmd.Int("limit"),
		Search:    cmd.String("search"),
		SortBy:    cmd.String("sort-by"),
		SortOrder: cmd.String("order"),
	}

	r.logger.Debug("listing songs", "page", q.Page, "limit", q.Limit, "search", q.Search)

	page, err := r.api.List(ctx, q)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	p := page.Pagination
	if len(page.Songs) == 0 {
		r.writePlain("No songs found.\n")
		return nil
	}

	rows := make([][]string, 0, len(page.Songs))
	offset := (p.CurrentPage - 1) * q.Limit
	for i, s := range page.Songs {
		rows = append(rows, []string{strconv.Itoa(offset + i + 1), s.Title, s.Artist, s.Album, s.ID})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Title", "Artist", "Album", "ID").
		Rows(rows...)

	r.writePlain("%s\n", t.String())
	r.writePlain("Page %d/%d • %d songs", p.CurrentPage, max(p.TotalPages, 1), p.TotalSongs)
	if p.HasNext {
		r.writePlain(" • next: --page %d", p.CurrentPage+1)
	}
	r.writePlain("\n")
	return nil
}

// SongsGet prints one song.
func (r *Runner) SongsGet(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.requireAPI(); err != nil {
		return err
	}

	song, err := r.api.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}
	r.writeSong(song)
	return nil
}

// SongsAdd creates a song from flags.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPI(); err != nil {
		return err
	}

	in := models.SongInput{
		Title:    cmd.String("title"),
		Artist:   cmd.String("artist"),
		Album:    cmd.String("album"),
		ImageURL: cmd.String("image"),
	}

	song, err := r.api.Create(ctx, in)
	if err != nil {
		return err
	}

	r.logger.Info("song created", "id", song.ID)
	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}
	r.writePlain("✓ Created %s - %s\n", song.Artist, song.Title)
	r.writeSong(song)
	return nil
}

// SongsEdit updates a song, keeping the current value of every field not given as a flag.
func (r *Runner) SongsEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.requireAPI(); err != nil {
		return err
	}

	current, err := r.api.Get(ctx, id)
	if err != nil {
		return err
	}

	in := models.SongInput{
		Title:    current.Title,
		Artist:   current.Artist,
		Album:    current.Album,
		ImageURL: current.ImageURL,
	}
	if cmd.IsSet("title") {
		in.Title = cmd.String("title")
	}
	if cmd.IsSet("artist") {
		in.Artist = cmd.String("artist")
	}
	if cmd.IsSet("album") {
		in.Album = cmd.String("album")
	}
	if cmd.IsSet("image") {
		in.ImageURL = cmd.String("image")
	}

	song, err := r.api.Update(ctx, id, in)
	if err != nil {
		return err
	}

	r.logger.Info("song updated", "id", song.ID)
	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}
	r.writePlain("✓ Updated %s - %s\n", song.Artist, song.Title)
	r.writeSong(song)
	return nil
}

// SongsDelete removes a song.
func (r *Runner) SongsDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := requireID(cmd)
	if err != nil {
		return err
	}
	if err := r.requireAPI(); err != nil {
		return err
	}

	song, err := r.api.Delete(ctx, id)
	if err != nil {
		return err
	}

	r.logger.Info("song deleted", "id", song.ID)
	r.writePlain("✓ Deleted %s - %s\n", song.Artist, song.Title)
	return nil
}

// SongsStats prints catalog statistics.
func (r *Runner) SongsStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPI(); err != nil {
		return err
	}

	stats, err := r.api.Stats(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Catalog Statistics")
	r.writePlain("Songs:   %d\n", stats.TotalSongs)
	r.writePlain("Artists: %d\n", stats.TotalArtists)
	r.writePlain("Albums:  %d\n", stats.TotalAlbums)
	if stats.MostPopularArtist != nil {
		r.writePlain("Most popular artist: %s (%d songs)\n", stats.MostPopularArtist.Name, stats.MostPopularArtist.SongCount)
	}

	if len(stats.RecentlyAdded) > 0 {
		r.writePlainln("Recently added:")
		for i, s := range stats.RecentlyAdded {
			r.writePlain("  %d. %s - %s (%s)\n", i+1, s.Artist, s.Title, s.CreatedAt.Local().Format(time.DateTime))
		}
	}
	return nil
}

func (r *Runner) writeSong(s *models.Song) {
	r.writePlain("ID:      %s\n", s.ID)
	r.writePlain("Title:   %s\n", s.Title)
	r.writePlain("Artist:  %s\n", s.Artist)
	r.writePlain("Album:   %s\n", s.Album)
	r.writePlain("Image:   %s\n", s.ImageURL)
	r.writePlain("Created: %s\n", s.CreatedAt.Format(time.RFC3339))
	r.writePlain("Updated: %s\n", s.UpdatedAt.Format(time.RFC3339))
}

func requireID(cmd *cli.Command) (string, error) {
	id := cmd.StringArg("id")
	if id == "" {
		return "", fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}
	return id, nil
}
