// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package testinfra

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// TMDBCapture is a request received by FakeTMDB.
type TMDBCapture struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
}

// FakeTMDB serves canned TMDB v3 responses.
type FakeTMDB struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []TMDBCapture
	movies   map[int]*models.MovieDetail
	failing  map[int]bool
	lists    map[string][]models.MovieSummary
	status   int
}

// TMDB list names accepted by SetList.
const (
	ListPopular  = "popular"
	ListTopRated = "top_rated"
	ListSearch   = "search"
	ListDiscover = "discover"
)

// NewFakeTMDB starts a fake TMDB server that closes with the test.
func NewFakeTMDB(t *testing.T) *FakeTMDB {
	t.Helper()

	f := &FakeTMDB{
		movies:  make(map[int]*models.MovieDetail),
		failing: make(map[int]bool),
		lists:   make(map[string][]models.MovieSummary),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL to configure the client with.
func (f *FakeTMDB) URL() string {
	return f.Server.URL
}

// AddMovie registers a movie detail with the given genres.
func (f *FakeTMDB) AddMovie(id int, title string, genreIDs ...int) *models.MovieDetail {
	d := &models.MovieDetail{
		ID:          id,
		Title:       title,
		PosterPath:  "/" + strconv.Itoa(id) + ".jpg",
		ReleaseDate: "2010-07-16",
		Credits:     &models.Credits{Cast: []models.CastMember{{ID: 1, Name: "Lead", Character: "Hero"}}},
		Videos:      &models.Videos{Results: []models.Video{{ID: "v1", Key: "abc", Site: "YouTube", Type: "Trailer"}}},
	}
	for _, g := range genreIDs {
		d.Genres = append(d.Genres, models.Genre{ID: g, Name: "Genre " + strconv.Itoa(g)})
	}

	f.mu.Lock()
	f.movies[id] = d
	f.mu.Unlock()
	return d
}

// FailMovie makes /movie/{id} answer 500.
func (f *FakeTMDB) FailMovie(id int) {
	f.mu.Lock()
	f.failing[id] = true
	f.mu.Unlock()
}

// SetList sets the results of a list endpoint.
func (f *FakeTMDB) SetList(name string, results ...models.MovieSummary) {
	f.mu.Lock()
	f.lists[name] = results
	f.mu.Unlock()
}

// SetStatus makes every request answer code. Zero restores normal behavior.
func (f *FakeTMDB) SetStatus(code int) {
	f.mu.Lock()
	f.status = code
	f.mu.Unlock()
}

// Captures returns every request received so far.
func (f *FakeTMDB) Captures() []TMDBCapture {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]TMDBCapture, len(f.captures))
	copy(result, f.captures)
	return result
}

// CountPath returns how many requests hit path.
func (f *FakeTMDB) CountPath(path string) int {
	n := 0
	for _, c := range f.Captures() {
		if c.Path == path {
			n++
		}
	}
	return n
}

func (f *FakeTMDB) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.captures = append(f.captures, TMDBCapture{
		Method:  r.Method,
		Path:    r.URL.Path,
		Query:   r.URL.Query(),
		Headers: r.Header.Clone(),
	})
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		writeTMDBError(w, status)
		return
	}

	switch path := r.URL.Path; {
	case path == "/configuration":
		writeTMDBJSON(w, map[string]interface{}{
			"images": map[string]string{"secure_base_url": "https://image.tmdb.org/t/p/"},
		})
	case path == "/movie/popular":
		f.writeList(w, r, ListPopular)
	case path == "/movie/top_rated":
		f.writeList(w, r, ListTopRated)
	case path == "/search/movie":
		f.writeList(w, r, ListSearch)
	case path == "/discover/movie":
		f.writeList(w, r, ListDiscover)
	case strings.HasPrefix(path, "/movie/"):
		f.writeMovie(w, r, strings.TrimPrefix(path, "/movie/"))
	default:
		writeTMDBError(w, http.StatusNotFound)
	}
}

func (f *FakeTMDB) writeList(w http.ResponseWriter, r *http.Request, name string) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	f.mu.Lock()
	results := append([]models.MovieSummary{}, f.lists[name]...)
	f.mu.Unlock()

	writeTMDBJSON(w, models.MoviePage{
		Page:         page,
		Results:      results,
		TotalPages:   1,
		TotalResults: len(results),
	})
}

func (f *FakeTMDB) writeMovie(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeTMDBError(w, http.StatusNotFound)
		return
	}

	f.mu.Lock()
	d, ok := f.movies[id]
	failing := f.failing[id]
	f.mu.Unlock()

	if failing {
		writeTMDBError(w, http.StatusInternalServerError)
		return
	}
	if !ok {
		writeTMDBError(w, http.StatusNotFound)
		return
	}

	out := *d
	appended := r.URL.Query().Get("append_to_response")
	if !strings.Contains(appended, "credits") {
		out.Credits = nil
	}
	if !strings.Contains(appended, "videos") {
		out.Videos = nil
	}
	writeTMDBJSON(w, &out)
}

func writeTMDBJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeTMDBError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success":        false,
		"status_code":    status,
		"status_message": http.StatusText(status),
	})
}
