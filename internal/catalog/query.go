package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/songman/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ParseQuery coerces query-string values into a [models.SongQuery].
//
// page and limit must parse as positive integers, otherwise the defaults apply.
func ParseQuery(v url.Values) models.SongQuery {
	return normalizeQuery(models.SongQuery{
		Search:    v.Get("search"),
		SortBy:    v.Get("sortBy"),
		SortOrder: v.Get("sortOrder"),
		Page:      positiveInt(v.Get("page"), models.DefaultPage),
		Limit:     positiveInt(v.Get("limit"), models.DefaultLimit),
	})
}

// Values is the inverse of [ParseQuery], omitting empty fields.
func Values(q models.SongQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		v.Set("sortOrder", q.SortOrder)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func normalizeQuery(q models.SongQuery) models.SongQuery {
	if q.Page < 1 {
		q.Page = models.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = models.DefaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = models.DefaultSortBy
	}
	if q.SortOrder != models.SortDesc {
		q.SortOrder = models.SortAsc
	}
	return q
}

// Query filters, sorts and paginates songs. The input slice is left untouched.
func Query(songs []models.Song, q models.SongQuery) ([]models.Song, models.Pagination) {
	q = normalizeQuery(q)

	filtered := Filter(songs, q.Search)
	Sort(filtered, q.SortBy, q.SortOrder)

	total := len(filtered)

	// start stays at total when (page-1)*limit would run past the end, which also avoids overflow
	start := total
	if q.Page-1 <= total/q.Limit {
		start = (q.Page - 1) * q.Limit
	}

	page := []models.Song{}
	hasNext := false
	if start < total {
		end := total
		if q.Limit < total-start {
			end = start + q.Limit
			hasNext = true
		}
		page = append(page, filtered[start:end]...)
	}

	totalPages := total / q.Limit
	if total%q.Limit != 0 {
		totalPages++
	}

	return page, models.Pagination{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalSongs:  total,
		HasNext:     hasNext,
		HasPrev:     q.Page > 1,
	}
}

// Filter returns a new slice of the songs whose title, artist or album contains search, ignoring case.
//
// An empty search keeps every song.
func Filter(songs []models.Song, search string) []models.Song {
	out := make([]models.Song, 0, len(songs))
	if search == "" {
		return append(out, songs...)
	}

	needle := strings.ToLower(search)
	for _, s := range songs {
		if strings.Contains(strings.ToLower(s.Title), needle) ||
			strings.Contains(strings.ToLower(s.Artist), needle) ||
			strings.Contains(strings.ToLower(s.Album), needle) {
			out = append(out, s)
		}
	}
	return out
}

// Sort orders songs in place by the lowercased value of field using locale-aware collation.
//
// The sort is stable, so songs with equal keys (or an unknown field) keep their relative order.
func Sort(songs []models.Song, field, order string) {
	type keyed struct {
		key  string
		song models.Song
	}

	items := make([]keyed, len(songs))
	for i, s := range songs {
		items[i] = keyed{key: strings.ToLower(s.SortValue(field)), song: s}
	}

	// a Collator keeps internal buffers and must not be shared between goroutines
	col := collate.New(language.Und)
	desc := order == models.SortDesc

	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return col.CompareString(items[j].key, items[i].key) < 0
		}
		return col.CompareString(items[i].key, items[j].key) < 0
	})

	for i := range items {
		songs[i] = items[i].song
	}
}
