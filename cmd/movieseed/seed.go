package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"moviecatalog/movie"
	"moviecatalog/postgres"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const noGenres = "(no genres listed)"

// MovieLens titles end with the release year in parentheses.
var titleYear = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)\s*$`)

func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return importMovieRows(ctx, db, file, limit)
}

func importMovieRows(ctx context.Context, db *gorm.DB, r io.Reader, limit int) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxTitle, idxGenres, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := postgres.NewMovieRepository(tx)
		if _, err := repo.DetectSchema(ctx); err != nil {
			return err
		}
		uc := movie.NewUsecase(repo)

		for limit <= 0 || count < limit {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			draft, ok := parseMovieRecord(record, idxTitle, idxGenres)
			if !ok {
				slog.Warn("skipping row", "record", record)
				continue
			}
			if _, err := uc.AddMovie(ctx, draft); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxTitle, idxGenres := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "title":
			idxTitle = i
		case "genres":
			idxGenres = i
		}
	}
	if idxTitle == -1 || idxGenres == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxTitle, idxGenres, nil
}

func parseMovieRecord(record []string, idxTitle, idxGenres int) (movie.Draft, bool) {
	if idxTitle >= len(record) || idxGenres >= len(record) {
		return movie.Draft{}, false
	}

	title, year := splitTitleYear(strings.TrimSpace(record[idxTitle]))
	if title == "" {
		return movie.Draft{}, false
	}

	return movie.Draft{
		Title:  title,
		Year:   year,
		Genres: parseGenres(record[idxGenres]),
	}, true
}

func splitTitleYear(raw string) (string, *int) {
	m := titleYear.FindStringSubmatch(raw)
	if m == nil {
		return raw, nil
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return raw, nil
	}
	return m[1], &year
}

func parseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == noGenres {
		return []string{}
	}
	genres := []string{}
	for _, g := range strings.Split(raw, "|") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
