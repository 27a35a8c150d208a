// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/metrics"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// maxErrorBodySize limits how much of an error response is read.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// apiRequest holds the path and query of a TMDB call.
type apiRequest struct {
	endpoint string // metrics label
	path     string
	params   map[string]string
}

func newAPIRequest(endpoint, path string) *apiRequest {
	return &apiRequest{
		endpoint: endpoint,
		path:     path,
		params:   make(map[string]string),
	}
}

// addParam adds a parameter unless value is empty.
func (r *apiRequest) addParam(key, value string) *apiRequest {
	if value != "" {
		r.params[key] = value
	}
	return r
}

// addIntParam adds an integer parameter only if > 0.
func (r *apiRequest) addIntParam(key string, value int) *apiRequest {
	if value > 0 {
		r.params[key] = strconv.Itoa(value)
	}
	return r
}

func (r *apiRequest) buildURL(baseURL, apiKey, language string) string {
	params := url.Values{}
	if apiKey != "" {
		params.Set("api_key", apiKey)
	}
	if language != "" {
		params.Set("language", language)
	}
	for key, value := range r.params {
		params.Set(key, value)
	}
	return baseURL + r.path + "?" + params.Encode()
}

// Client calls the TMDB HTTP API. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	readToken  string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client from cfg. A zero RateLimit disables throttling.
func NewClient(cfg *config.TMDBConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		readToken:  cfg.ReadToken,
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: timeout},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// get performs req and decodes the JSON body into result.
func (c *Client) get(ctx context.Context, req *apiRequest, result interface{}) error {
	start := time.Now()
	outcome := "success"
	defer func() {
		metrics.RecordTMDBRequest(req.endpoint, outcome, time.Since(start))
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			outcome = "error"
			return models.Upstream("TMDB request cancelled", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.buildURL(c.baseURL, c.apiKey, c.language), http.NoBody)
	if err != nil {
		outcome = "error"
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.readToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.readToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		outcome = "error"
		return models.Upstream("TMDB request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		outcome = "not_found"
		return models.NotFound("Movie not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		outcome = "error"
		body := readBodyForError(resp.Body)
		return models.Upstream("TMDB request failed",
			fmt.Errorf("%s returned status %d: %s", req.path, resp.StatusCode, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		outcome = "error"
		return models.Upstream("TMDB response invalid", fmt.Errorf("decode %s: %w", req.path, err))
	}
	return nil
}

func (c *Client) page(ctx context.Context, req *apiRequest) (*models.MoviePage, error) {
	var page models.MoviePage
	if err := c.get(ctx, req, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []models.MovieSummary{}
	}
	return &page, nil
}

// Search finds movies by title.
func (c *Client) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.Validation("Query is required")
	}
	req := newAPIRequest("search", "/search/movie").
		addParam("query", query).
		addIntParam("page", page)
	return c.page(ctx, req)
}

// Popular lists TMDB's popular movies.
func (c *Client) Popular(ctx context.Context, page int) (*models.MoviePage, error) {
	return c.page(ctx, newAPIRequest("popular", "/movie/popular").addIntParam("page", page))
}

// TopRated lists TMDB's top rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	return c.page(ctx, newAPIRequest("top_rated", "/movie/top_rated").addIntParam("page", page))
}

// Discover queries /discover/movie.
func (c *Client) Discover(ctx context.Context, filter DiscoverFilter) (*models.MoviePage, error) {
	req := newAPIRequest("discover", "/discover/movie")
	for k, v := range filter.params() {
		req.addParam(k, v)
	}
	return c.page(ctx, req)
}

func (c *Client) movie(ctx context.Context, id, appendToResponse string) (*models.MovieDetail, error) {
	if !validMovieID(id) {
		return nil, models.Validation("Invalid movie ID")
	}
	req := newAPIRequest("movie", "/movie/"+id).addParam("append_to_response", appendToResponse)

	var detail models.MovieDetail
	if err := c.get(ctx, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// MovieDetail fetches /movie/{id}.
func (c *Client) MovieDetail(ctx context.Context, id string) (*models.MovieDetail, error) {
	return c.movie(ctx, id, "")
}

// MovieDetailFull fetches /movie/{id} with credits and videos.
func (c *Client) MovieDetailFull(ctx context.Context, id string) (*models.MovieDetail, error) {
	return c.movie(ctx, id, "credits,videos")
}

// Ping verifies credentials and connectivity via /configuration.
func (c *Client) Ping(ctx context.Context) error {
	var discard map[string]interface{}
	return c.get(ctx, newAPIRequest("configuration", "/configuration"), &discard)
}

var _ Gateway = (*Client)(nil)
