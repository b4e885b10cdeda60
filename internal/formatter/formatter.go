// package formatter provides functions to export song catalog data to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// DefaultBaseName names export files when no output path is given.
const DefaultBaseName = "songs"

// Format selects an export rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// Formats lists every supported [Format] in help-text order.
var Formats = []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatText}

// ParseFormat resolves a user-supplied format name ("md" and "text" are accepted aliases).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// CatalogExport is a snapshot of songs ready to be rendered.
type CatalogExport struct {
	Name       string        `json:"name"`
	ExportedAt time.Time     `json:"exportedAt"`
	Songs      []models.Song `json:"songs"`
}

// NewCatalogExport builds an export of songs taken at the given time.
func NewCatalogExport(name string, songs []models.Song, at time.Time) *CatalogExport {
	if name == "" {
		name = "Song Catalog"
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return &CatalogExport{Name: name, ExportedAt: at.UTC(), Songs: songs}
}

// ExportToCSV converts a CatalogExport to CSV format with columns: ID, Title, Artist, Album, Image URL, Created At, Updated At
func ExportToCSV(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Image URL", "Created At", "Updated At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range export.Songs {
		record := []string{
			song.ID,
			song.Title,
			song.Artist,
			song.Album,
			song.ImageURL,
			song.CreatedAt.UTC().Format(time.RFC3339),
			song.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a CatalogExport to a Markdown document with a summary and a song table.
func ExportToMarkdown(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer
	stats := catalog.ComputeStats(export.Songs)

	fmt.Fprintf(&buf, "# %s\n\n", export.Name)
	fmt.Fprintf(&buf, "**Songs**: %d\n", stats.TotalSongs)
	fmt.Fprintf(&buf, "**Artists**: %d\n", stats.TotalArtists)
	fmt.Fprintf(&buf, "**Albums**: %d\n", stats.TotalAlbums)
	fmt.Fprintf(&buf, "**Exported**: %s\n\n", export.ExportedAt.Format(time.RFC3339))

	buf.WriteString("## Songs\n\n")
	if len(export.Songs) == 0 {
		buf.WriteString("_No songs._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Cover | Title | Artist | Album |\n")
	buf.WriteString("|---|-------|-------|--------|-------|\n")
	for i, song := range export.Songs {
		cover := ""
		if song.ImageURL != "" {
			cover = fmt.Sprintf("![%s](%s)", escapeCell(song.Album), song.ImageURL)
		}
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s |\n",
			i+1, cover, escapeCell(song.Title), escapeCell(song.Artist), escapeCell(song.Album))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a CatalogExport to plain text format
func ExportToText(export *CatalogExport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Catalog: %s\n", export.Name)
	fmt.Fprintf(&buf, "Exported: %s\n", export.ExportedAt.Format(time.RFC3339))
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(export.Songs))

	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "%d. %s - %s (%s)\n", i+1, song.Artist, song.Title, song.Album)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders the whole export, songs included, as indented JSON.
func ExportToJSON(export *CatalogExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// exportMetadata is the export header without the songs.
type exportMetadata struct {
	Name              string              `json:"name"`
	ExportedAt        time.Time           `json:"exportedAt"`
	TotalSongs        int                 `json:"totalSongs"`
	TotalArtists      int                 `json:"totalArtists"`
	TotalAlbums       int                 `json:"totalAlbums"`
	MostPopularArtist *models.ArtistCount `json:"mostPopularArtist"`
}

// ToMetadataJSON generates a JSON representation of export metadata and statistics (without the song list)
func ToMetadataJSON(export *CatalogExport) ([]byte, error) {
	stats := catalog.ComputeStats(export.Songs)
	return shared.MarshalJSON(exportMetadata{
		Name:              export.Name,
		ExportedAt:        export.ExportedAt,
		TotalSongs:        stats.TotalSongs,
		TotalArtists:      stats.TotalArtists,
		TotalAlbums:       stats.TotalAlbums,
		MostPopularArtist: stats.MostPopularArtist,
	}, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	SongsFile    string
	MetadataFile string
}

// WriteCSVExport exports songs to CSV format with accompanying metadata JSON file.
//
// Defaults to [DefaultBaseName] as the base filename & creates {base}_songs.csv and {base}_metadata.json
func WriteCSVExport(export *CatalogExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = DefaultBaseName
	}
	baseFilepath = strings.TrimSuffix(baseFilepath, ".csv")

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	songsFile := baseFilepath + "_songs.csv"
	if err := writeFile(songsFile, csvData); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := writeFile(metadataFile, metadataJSON); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		SongsFile:    songsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports songs to Markdown format in a dedicated directory.
//
// Directory name defaults to [DefaultBaseName].
// Creates {dir}/README.md and {dir}/metadata.json
func WriteMarkdownExport(export *CatalogExport, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = DefaultBaseName
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	result.Files = append(result.Files, mdFile)

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := filepath.Join(outputDir, "metadata.json")
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}
	result.Files = append(result.Files, metadataFile)

	return result, nil
}

// WriteTextExport exports songs to plain text format.
//
// Defaults to {DefaultBaseName}.txt as the filename.
func WriteTextExport(export *CatalogExport, path string) (string, error) {
	if path == "" {
		path = DefaultBaseName + ".txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := writeFile(path, textData); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports songs to a JSON document.
//
// Defaults to {DefaultBaseName}.json as the filename.
func WriteJSONExport(export *CatalogExport, path string) (string, error) {
	if path == "" {
		path = DefaultBaseName + ".json"
	}

	jsonData, err := ExportToJSON(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := writeFile(path, jsonData); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// WriteExport writes export in format to output and returns the files it created.
func WriteExport(export *CatalogExport, format Format, output string) ([]string, error) {
	switch format {
	case FormatCSV:
		res, err := WriteCSVExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{res.SongsFile, res.MetadataFile}, nil
	case FormatMarkdown:
		res, err := WriteMarkdownExport(export, output)
		if err != nil {
			return nil, err
		}
		return res.Files, nil
	case FormatText:
		path, err := WriteTextExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	case FormatJSON:
		path, err := WriteJSONExport(export, output)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// writeFile creates the parent directory of path before writing data.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
