// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/SaphalKatuwal/SilverScreened/internal/auth"
	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/database"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
	"github.com/SaphalKatuwal/SilverScreened/internal/recommend"
	"github.com/SaphalKatuwal/SilverScreened/internal/reviews"
	"github.com/SaphalKatuwal/SilverScreened/internal/testinfra"
	"github.com/SaphalKatuwal/SilverScreened/internal/tmdb"
	"github.com/SaphalKatuwal/SilverScreened/internal/users"
)

// envelope mirrors APIResponse with a raw payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

type testServer struct {
	handler http.Handler
	tmdb    *testinfra.FakeTMDB
	store   *database.BadgerStore
	jwt     *auth.JWTManager
}

type testServerOption func(*Deps)

func withRecommender(rec Recommender) testServerOption {
	return func(d *Deps) { d.Recommender = rec }
}

func newTestServer(t *testing.T, opts ...testServerOption) *testServer {
	t.Helper()

	store, err := database.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	fake := testinfra.NewFakeTMDB(t)
	gateway := tmdb.NewClient(&config.TMDBConfig{BaseURL: fake.URL(), APIKey: "test-key", Timeout: 5 * time.Second})

	cfg := &config.Config{Security: config.SecurityConfig{
		JWTSecret:         "test-secret-that-is-long-enough-for-hs256",
		SessionTimeout:    time.Hour,
		RateLimitDisabled: true,
	}}
	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	userSvc := users.NewService(store, store, gateway, jwtManager, auth.NewPasswordHasher(4), users.Config{})
	agg, err := recommend.NewAggregator(userSvc, gateway, nil)
	if err != nil {
		t.Fatalf("NewAggregator failed: %v", err)
	}

	deps := Deps{
		Users:       userSvc,
		Reviews:     reviews.NewService(store, store),
		Movies:      gateway,
		Recommender: agg,
		Store:       store,
		CORSOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(&deps)
	}

	router := NewRouter(NewHandler(deps), auth.NewMiddleware(jwtManager, Unauthorized), cfg)
	return &testServer{handler: router.SetupChi(), tmdb: fake, store: store, jwt: jwtManager}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

// register creates an account and returns its ID and a token.
func (s *testServer) register(t *testing.T, username string) (string, string) {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":          username + "@example.com",
		"username":       username,
		"password":       "secret123",
		"profilePicture": "profile-pictures/" + username + ".png",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	var reg RegisterResponse
	if err := json.Unmarshal(env.Data, &reg); err != nil {
		t.Fatalf("decode register: %v", err)
	}

	rec, env = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	var login LoginResponse
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return reg.UserID, login.Token
}

func TestRouter_Root(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec, _ := s.do(t, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "SilverScreened Backend Running" {
		t.Errorf("expected banner, got %q", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec, env := s.do(t, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND envelope, got %+v", env.Error)
	}
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/health/live", "", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("expected live 200, got %d", rec.Code)
	}

	rec, env = s.do(t, http.MethodGet, "/api/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var status HealthStatus
	_ = json.Unmarshal(env.Data, &status)
	if !status.DatabaseConnected || !status.TMDBConnected || status.Status != "healthy" {
		t.Errorf("expected healthy status, got %+v", status)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on health endpoints")
	}
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	userID, token := s.register(t, "ana")
	if userID == "" || token == "" {
		t.Fatal("expected user ID and token")
	}

	tests := []struct {
		name       string
		path       string
		body       map[string]string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate email",
			path:       "/api/auth/register",
			body:       map[string]string{"email": "ana@example.com", "username": "other", "password": "secret123", "profilePicture": "x.png"},
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeConflict,
		},
		{
			name:       "duplicate username",
			path:       "/api/auth/register",
			body:       map[string]string{"email": "other@example.com", "username": "ana", "password": "secret123", "profilePicture": "x.png"},
			wantStatus: http.StatusConflict,
			wantCode:   ErrCodeConflict,
		},
		{
			name:       "invalid email",
			path:       "/api/auth/register",
			body:       map[string]string{"email": "nope", "username": "bob", "password": "secret123", "profilePicture": "x.png"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationFailed,
		},
		{
			name:       "short password",
			path:       "/api/auth/register",
			body:       map[string]string{"email": "bob@example.com", "username": "bob", "password": "123", "profilePicture": "x.png"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "missing picture",
			path:       "/api/auth/register",
			body:       map[string]string{"email": "bob@example.com", "username": "bob", "password": "secret123"},
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "wrong password",
			path:       "/api/auth/login",
			body:       map[string]string{"email": "ana@example.com", "password": "wrong-password"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
		},
		{
			name:       "unknown email",
			path:       "/api/auth/login",
			body:       map[string]string{"email": "ghost@example.com", "password": "secret123"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, tt.path, "", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%s)", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("expected code %s, got %+v", tt.wantCode, env.Error)
			}
		})
	}
}

func TestRouter_InvalidJSON(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_RequiresAuth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPost, "/api/users/watchlist/add"},
		{http.MethodGet, "/api/recommendations"},
		{http.MethodPost, "/api/reviews"},
		{http.MethodGet, "/api/ratings/27205"},
	}
	for _, p := range paths {
		rec, env := s.do(t, p.method, p.path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Message != "No token, authorization denied" {
			t.Errorf("%s %s: expected no-token message, got %+v", p.method, p.path, env.Error)
		}
	}

	rec, env := s.do(t, http.MethodGet, "/api/users/profile", "garbage", nil)
	if rec.Code != http.StatusUnauthorized || env.Error == nil || env.Error.Message != "Token is not valid" {
		t.Errorf("expected invalid token 401, got %d %+v", rec.Code, env.Error)
	}
}

func TestRouter_ProfileAndLists(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.tmdb.AddMovie(27205, "Inception", 28, 878)
	_, token := s.register(t, "ana")

	rec, _ := s.do(t, http.MethodPost, "/api/users/watchlist/add", token, map[string]string{"movieId": "27205"})
	if rec.Code != http.StatusOK {
		t.Fatalf("watchlist add: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec, _ = s.do(t, http.MethodPost, "/api/users/watched", token, map[string]string{"movieId": "27205"})
	if rec.Code != http.StatusOK {
		t.Fatalf("watched: expected 200, got %d", rec.Code)
	}
	rec, env := s.do(t, http.MethodPost, "/api/users/watched", token, map[string]string{"movieId": "abc"})
	if rec.Code != http.StatusBadRequest || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("expected validation failure for bad movie ID, got %d", rec.Code)
	}

	rec, env = s.do(t, http.MethodPut, "/api/users/profile", token, map[string]interface{}{
		"bio":           "film nerd",
		"favoriteFilms": []string{"27205"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec, env = s.do(t, http.MethodGet, "/api/users/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", rec.Code)
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Bio != "film nerd" || len(user.Watchlist) != 1 || len(user.WatchedMovies) != 1 {
		t.Errorf("unexpected profile: %+v", user)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("secret123")) || bytes.Contains(rec.Body.Bytes(), []byte("PasswordHash")) {
		t.Error("expected password material to stay out of the profile")
	}

	rec, env = s.do(t, http.MethodPut, "/api/users/profile", token, map[string]interface{}{
		"favoriteFilms": []string{"1", "2", "3", "4", "5", "6"},
	})
	if rec.Code != http.StatusBadRequest || env.Error.Message != "Maximum 5 favorite films allowed" {
		t.Errorf("expected favorites cap, got %d %+v", rec.Code, env.Error)
	}

	rec, env = s.do(t, http.MethodGet, "/api/users/watched-details?page=1&limit=5&sort=asc", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("watched-details: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var page models.WatchedPage
	_ = json.Unmarshal(env.Data, &page)
	if page.Total != 1 || len(page.Movies) != 1 || page.Movies[0].Title != "Inception" {
		t.Errorf("unexpected watched page: %+v", page)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/users/watched-details?sort=sideways", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad sort, got %d", rec.Code)
	}
}

func TestRouter_FollowGraph(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	anaID, anaToken := s.register(t, "ana")
	benID, benToken := s.register(t, "ben")

	for _, step := range []struct {
		token, target string
	}{
		{anaToken, benID},
		{benToken, anaID},
	} {
		rec, _ := s.do(t, http.MethodPost, "/api/users/follow", step.token, map[string]string{"followId": step.target})
		if rec.Code != http.StatusOK {
			t.Fatalf("follow: expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
	}

	rec, env := s.do(t, http.MethodGet, "/api/users/friends", anaToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("friends: expected 200, got %d", rec.Code)
	}
	var friends []models.UserSummary
	_ = json.Unmarshal(env.Data, &friends)
	if len(friends) != 1 || friends[0].ID != benID {
		t.Errorf("expected ben as friend, got %+v", friends)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/users/unfollow", benToken, map[string]string{"followId": anaID})
	if rec.Code != http.StatusOK {
		t.Fatalf("unfollow: expected 200, got %d", rec.Code)
	}
	_, env = s.do(t, http.MethodGet, "/api/users/followers", anaToken, nil)
	var followers []models.UserSummary
	_ = json.Unmarshal(env.Data, &followers)
	if len(followers) != 0 {
		t.Errorf("expected no followers after unfollow, got %+v", followers)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/users/follow", anaToken, map[string]string{"followId": "missing-user"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 following an unknown user, got %d", rec.Code)
	}
}

func TestRouter_Reviews(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	_, anaToken := s.register(t, "ana")
	_, benToken := s.register(t, "ben")

	rec, env := s.do(t, http.MethodPost, "/api/reviews", anaToken, map[string]interface{}{
		"movieId": "27205", "rating": 5, "comment": "  great  ",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var review models.Review
	_ = json.Unmarshal(env.Data, &review)
	if review.Comment != "great" || review.ID == "" {
		t.Errorf("unexpected review: %+v", review)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/reviews", anaToken, map[string]interface{}{"movieId": "27205", "rating": 6})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for rating 6, got %d", rec.Code)
	}

	rec, env = s.do(t, http.MethodGet, "/api/reviews/movie/27205", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []models.Review
	_ = json.Unmarshal(env.Data, &list)
	if len(list) != 1 || list[0].Author == nil || list[0].Author.Username != "ana" {
		t.Errorf("expected one review by ana, got %+v", list)
	}

	rec, env = s.do(t, http.MethodPut, "/api/reviews/"+review.ID, benToken, map[string]interface{}{"rating": 1})
	if rec.Code != http.StatusForbidden || env.Error.Message != "Unauthorized" {
		t.Errorf("expected 403 for non-owner, got %d %+v", rec.Code, env.Error)
	}

	rec, env = s.do(t, http.MethodPut, "/api/reviews/"+review.ID, anaToken, map[string]interface{}{"rating": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}
	_ = json.Unmarshal(env.Data, &review)
	if review.Rating != 3 || review.Comment != "great" {
		t.Errorf("expected partial update, got %+v", review)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/reviews/"+review.ID, anaToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec, env = s.do(t, http.MethodDelete, "/api/reviews/"+review.ID, anaToken, nil)
	if rec.Code != http.StatusNotFound || env.Error.Message != "Review not found" {
		t.Errorf("expected 404 after delete, got %d %+v", rec.Code, env.Error)
	}
}

func TestRouter_Ratings(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	_, token := s.register(t, "ana")

	_, env := s.do(t, http.MethodGet, "/api/ratings/155", token, nil)
	var got RatingResponse
	_ = json.Unmarshal(env.Data, &got)
	if got.Rating != 0 {
		t.Errorf("expected unrated movie to report 0, got %d", got.Rating)
	}

	rec, _ := s.do(t, http.MethodPost, "/api/ratings", token, map[string]interface{}{"movieId": "155", "rating": 4})
	if rec.Code != http.StatusOK {
		t.Fatalf("rate: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	_, env = s.do(t, http.MethodGet, "/api/ratings/155", token, nil)
	_ = json.Unmarshal(env.Data, &got)
	if got.Rating != 4 {
		t.Errorf("expected rating 4, got %d", got.Rating)
	}
}

func TestRouter_Movies(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	s.tmdb.AddMovie(155, "The Dark Knight", 18, 28)
	s.tmdb.SetList(testinfra.ListDiscover, models.MovieSummary{ID: 603, Title: "The Matrix"})

	rec, env := s.do(t, http.MethodGet, "/api/movies/155", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", rec.Code)
	}
	var detail models.MovieDetail
	_ = json.Unmarshal(env.Data, &detail)
	if detail.Title != "The Dark Knight" || detail.Credits == nil {
		t.Errorf("expected full detail, got %+v", detail)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/movies/424242", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown movie, got %d", rec.Code)
	}
	rec, _ = s.do(t, http.MethodGet, "/api/movies/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric ID, got %d", rec.Code)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/movies/discover?genre=28,12&rating=7&decade=1990s", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("discover: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var last testinfra.TMDBCapture
	for _, c := range s.tmdb.Captures() {
		if c.Path == "/discover/movie" {
			last = c
		}
	}
	if last.Query.Get("with_genres") != "28,12" || last.Query.Get("primary_release_date.gte") != "1990-01-01" {
		t.Errorf("unexpected discover query: %v", last.Query)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/movies/discover?genre=action", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad genre, got %d", rec.Code)
	}

	rec, env = s.do(t, http.MethodGet, "/api/movies/search", "", nil)
	if rec.Code != http.StatusBadRequest || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("expected validation failure for empty search, got %d", rec.Code)
	}

	s.tmdb.SetStatus(http.StatusServiceUnavailable)
	rec, env = s.do(t, http.MethodGet, "/api/movies/popular", "", nil)
	if rec.Code != http.StatusBadGateway || env.Error.Code != ErrCodeExternalServiceFail {
		t.Errorf("expected 502 when TMDB fails, got %d", rec.Code)
	}
}

func TestRouter_Recommendations(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		_, token := s.register(t, "ana")

		rec, env := s.do(t, http.MethodGet, "/api/recommendations", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		if string(env.Data) != `{"social":[],"genre":[]}` {
			t.Errorf("expected two empty lists, got %s", env.Data)
		}
		if n := s.tmdb.CountPath("/discover/movie"); n != 0 {
			t.Errorf("expected no discover call, got %d", n)
		}
	})

	t.Run("social and genre", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t)
		s.tmdb.AddMovie(27205, "Inception", 28, 878)
		s.tmdb.AddMovie(155, "The Dark Knight", 28, 18)
		s.tmdb.SetList(testinfra.ListDiscover,
			models.MovieSummary{ID: 155, Title: "The Dark Knight"},
			models.MovieSummary{ID: 603, Title: "The Matrix"},
		)
		anaID, anaToken := s.register(t, "ana")
		_, benToken := s.register(t, "ben")

		s.do(t, http.MethodPost, "/api/reviews", anaToken, map[string]interface{}{"movieId": "27205", "rating": 5})
		s.do(t, http.MethodPost, "/api/users/follow", benToken, map[string]string{"followId": anaID})
		s.do(t, http.MethodPost, "/api/users/watched", benToken, map[string]string{"movieId": "155"})

		rec, env := s.do(t, http.MethodGet, "/api/recommendations", benToken, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var result recommend.Result
		if err := json.Unmarshal(env.Data, &result); err != nil {
			t.Fatalf("decode result: %v", err)
		}
		if len(result.Social) != 1 || result.Social[0].ID != 27205 {
			t.Errorf("expected Inception from ana, got %+v", result.Social)
		}
		if len(result.Genre) != 1 || result.Genre[0].ID != 603 {
			t.Errorf("expected watched movie filtered from genre list, got %+v", result.Genre)
		}
	})

	t.Run("failure is 500 with message", func(t *testing.T) {
		t.Parallel()

		s := newTestServer(t, withRecommender(failingRecommender{err: models.Upstream("movie detail failed", errors.New("boom"))}))
		_, token := s.register(t, "ana")

		rec, env := s.do(t, http.MethodGet, "/api/recommendations", token, nil)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if env.Error == nil || env.Error.Message != "movie detail failed" {
			t.Errorf("expected underlying message, got %+v", env.Error)
		}
	})
}

func TestRouter_UploadsDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	rec, env := s.do(t, http.MethodPost, "/api/uploads/profile-picture", "", map[string]string{"contentType": "image/png"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %+v", env.Error)
	}
}

type failingRecommender struct {
	err error
}

func (f failingRecommender) Recommend(context.Context, string) (*recommend.Result, error) {
	return nil, f.err
}
