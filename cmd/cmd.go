// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/songman/internal/formatter"
	"github.com/urfave/cli/v3"
)

// serveCommand starts the HTTP API
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the song catalog API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path of the JSON song document",
			},
			&cli.StringFlag{
				Name:  "driver",
				Usage: "Storage driver (json or sqlite)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand creates the config file and initializes storage
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize (and seed) the song store",
		Action: r.Setup,
	}
}

// healthCommand checks a running server
func healthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check that the API server is running",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Health,
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

func songFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title"},
		&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Song artist"},
		&cli.StringFlag{Name: "album", Aliases: []string{"b"}, Usage: "Album name"},
		&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "Cover image URL"},
	}
}

// songsCommand handles catalog CRUD through the API
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Manage songs through the API",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List one page of songs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Usage: "Page number", Value: 1},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Songs per page", Value: 10},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Match title, artist or album"},
					&cli.StringFlag{Name: "sort-by", Usage: "Sort field (title, artist, album, createdAt, ...)", Value: "title"},
					&cli.StringFlag{Name: "order", Usage: "Sort order (asc or desc)", Value: "asc"},
					jsonFlag(),
				},
				Action: r.SongsList,
			},
			{
				Name:      "get",
				Usage:     "Show a song",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.SongsGet,
			},
			{
				Name:   "add",
				Usage:  "Create a song",
				Flags:  append(songFlags(), jsonFlag()),
				Action: r.SongsAdd,
			},
			{
				Name:      "edit",
				Usage:     "Update a song; omitted fields keep their values",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     append(songFlags(), jsonFlag()),
				Action:    r.SongsEdit,
			},
			{
				Name:      "rm",
				Aliases:   []string{"delete"},
				Usage:     "Delete a song",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SongsDelete,
			},
			{
				Name:   "stats",
				Usage:  "Show catalog statistics",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.SongsStats,
			},
		},
	}
}

// exportCommand writes the catalog to files
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the catalog as json, csv, markdown or txt",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (json, csv, markdown, txt)",
				Value:   string(formatter.FormatJSON),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file, base path (csv) or directory (markdown)",
			},
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Only export matching songs"},
			&cli.StringFlag{Name: "sort-by", Usage: "Sort field", Value: "title"},
			&cli.StringFlag{Name: "order", Usage: "Sort order (asc or desc)", Value: "asc"},
			&cli.StringFlag{Name: "name", Usage: "Catalog title written into the export"},
			&cli.IntFlag{Name: "page-size", Usage: "Songs fetched per request", Value: 100},
		},
		Action: r.Export,
	}
}

// importCommand creates songs from tagged audio files
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Create songs from the tags of audio files in a directory",
		Arguments: []cli.Argument{&cli.StringArg{Name: "dir"}},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent workers (max 10)",
				Value:   4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Create requests per second",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Read tags and report without creating songs",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Write a JSON manifest of the import to this path",
			},
		},
		Action: r.Import,
	}
}

// tuiCommand returns the top-level TUI command for interactive catalog browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse, search and delete songs interactively",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "Songs per page", Value: 10},
			&cli.StringFlag{Name: "log-file", Usage: "Where TUI logs are written", Value: "./tmp/songman-tui.log"},
		},
		Action: r.TUI,
	}
}
