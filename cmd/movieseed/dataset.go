package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// maxArchiveSize caps the downloaded archive; ml-latest-small is about 1 MB.
const maxArchiveSize = 64 << 20

var errMoviesCSVMissing = errors.New("movies.csv not found in archive")

// dataset is a movies.csv unpacked into its own temp directory.
type dataset struct {
	dir     string
	CSVPath string
}

// Close removes the temp directory and everything in it.
func (d *dataset) Close() error {
	return os.RemoveAll(d.dir)
}

// fetchDataset downloads a MovieLens archive and unpacks its movies.csv.
// The temp directory is gone again when an error is returned.
func fetchDataset(ctx context.Context, client *http.Client, url string) (*dataset, error) {
	if url == "" {
		return nil, errors.New("dataset url is empty")
	}

	archive, err := download(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}

	dir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return nil, err
	}
	ds := &dataset{dir: dir}

	ds.CSVPath, err = unpackMoviesCSV(archive, dir)
	if err != nil {
		_ = ds.Close()
		return nil, err
	}
	return ds, nil
}

func download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxArchiveSize {
		return nil, fmt.Errorf("archive larger than %d bytes", maxArchiveSize)
	}
	return body, nil
}

func unpackMoviesCSV(archive []byte, dir string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return "", fmt.Errorf("open archive: %w", err)
	}

	for _, f := range zr.File {
		if path.Base(f.Name) != "movies.csv" {
			continue
		}
		dest := filepath.Join(dir, "movies.csv")
		if err := copyZipEntry(f, dest); err != nil {
			return "", fmt.Errorf("unpack %s: %w", f.Name, err)
		}
		return dest, nil
	}
	return "", errMoviesCSVMissing
}

func copyZipEntry(f *zip.File, dest string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
