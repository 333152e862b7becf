package main

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesCSV = "movieId,title,genres\n1,Toy Story (1995),Adventure|Animation\n"

func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serveBytes(t *testing.T, status int, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchDataset(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"ml-latest-small/README.txt": "readme",
		"ml-latest-small/movies.csv": moviesCSV,
	})
	srv := serveBytes(t, http.StatusOK, archive)

	ds, err := fetchDataset(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)

	content, err := os.ReadFile(ds.CSVPath)
	require.NoError(t, err)
	assert.Equal(t, moviesCSV, string(content))
	assert.Equal(t, "movies.csv", filepath.Base(ds.CSVPath))

	require.NoError(t, ds.Close())
	assert.NoDirExists(t, filepath.Dir(ds.CSVPath))
}

func TestFetchDataset_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
	}{
		{name: "missing movies.csv", status: http.StatusOK, body: buildArchive(t, map[string]string{"ratings.csv": "x"})},
		{name: "not a zip", status: http.StatusOK, body: []byte("<html>")},
		{name: "server error", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			t.Setenv("TMPDIR", tmp)
			srv := serveBytes(t, tt.status, tt.body)

			ds, err := fetchDataset(context.Background(), srv.Client(), srv.URL)

			assert.Error(t, err)
			assert.Nil(t, ds)
			entries, err := os.ReadDir(tmp)
			require.NoError(t, err)
			assert.Empty(t, entries, "temp directory left behind")
		})
	}
}

func TestFetchDataset_MissingCSVError(t *testing.T) {
	srv := serveBytes(t, http.StatusOK, buildArchive(t, map[string]string{"links.csv": "x"}))

	_, err := fetchDataset(context.Background(), srv.Client(), srv.URL)

	assert.ErrorIs(t, err, errMoviesCSVMissing)
}

func TestFetchDataset_CanceledContext(t *testing.T) {
	srv := serveBytes(t, http.StatusOK, buildArchive(t, map[string]string{"movies.csv": moviesCSV}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetchDataset(ctx, srv.Client(), srv.URL)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchDataset_EmptyURL(t *testing.T) {
	_, err := fetchDataset(context.Background(), http.DefaultClient, "")

	assert.EqualError(t, err, "dataset url is empty")
}
