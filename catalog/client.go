package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"moviecatalog/movie"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "http://localhost:5000/api"

// APIError is returned for any non-2xx response from the catalog service.
type APIError struct {
	Status  int
	Message string
	Hint    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// Client talks to the catalog service over HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) ListMovies(ctx context.Context) ([]movie.Movie, error) {
	var movies []movie.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", nil, &movies); err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []movie.Movie{}
	}
	return movies, nil
}

func (c *Client) CreateMovie(ctx context.Context, d movie.Draft) (movie.Movie, error) {
	var created movie.Movie
	if err := c.do(ctx, http.MethodPost, "/movies", d, &created); err != nil {
		return movie.Movie{}, err
	}
	return created, nil
}

type healthBody struct {
	OK    bool   `json:"ok"`
	DB    int    `json:"db"`
	Error string `json:"error"`
}

// Health reports whether the service and its storage are reachable.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var body healthBody
	if err := c.do(ctx, http.MethodGet, "/health", nil, &body); err != nil {
		return false, err
	}
	return body.OK, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Hint    string `json:"hint"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		apiErr.Hint = body.Hint
	}
	return apiErr
}
