package movie

import (
	"sort"
	"strings"
)

const genreSeparator = ","

// JoinGenres encodes genres into the single delimited column value.
// Elements are trimmed and empty ones dropped.
func JoinGenres(genres []string) string {
	cleaned := make([]string, 0, len(genres))
	for _, g := range genres {
		if g = strings.TrimSpace(g); g != "" {
			cleaned = append(cleaned, g)
		}
	}
	return strings.Join(cleaned, genreSeparator)
}

// SplitGenres decodes the delimited column value. It never returns nil.
func SplitGenres(s string) []string {
	genres := []string{}
	for _, g := range strings.Split(s, genreSeparator) {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// ParseGenreField reads the free-text genres input of the admin form.
func ParseGenreField(field string) []string {
	return SplitGenres(field)
}

// DistinctGenres returns every genre used by movies, deduplicated and sorted.
func DistinctGenres(movies []Movie) []string {
	seen := make(map[string]struct{})
	genres := []string{}
	for _, m := range movies {
		for _, g := range m.Genres {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	sort.Strings(genres)
	return genres
}

// FilterByGenre keeps the movies tagged with token. A blank token keeps
// everything; a token nobody uses yields an empty slice.
func FilterByGenre(movies []Movie, token string) []Movie {
	if strings.TrimSpace(token) == "" {
		return movies
	}
	filtered := []Movie{}
	for _, m := range movies {
		if m.HasGenre(token) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
