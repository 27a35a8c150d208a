// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package users

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/SaphalKatuwal/SilverScreened/internal/auth"
	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/database"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// fakeCatalog serves titles "Movie <id>" and fails for IDs in fail.
type fakeCatalog struct {
	mu    sync.Mutex
	fail  map[string]bool
	calls int
}

func (c *fakeCatalog) MovieDetail(_ context.Context, id string) (*models.MovieDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.fail[id] {
		return nil, models.Upstream("TMDB request failed", errors.New("boom"))
	}
	return &models.MovieDetail{Title: "Movie " + id, PosterPath: "/" + id + ".jpg", ReleaseDate: "2010-07-16"}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Activity
}

func (p *recordingPublisher) Publish(_ context.Context, a *models.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *a)
	return nil
}

func (p *recordingPublisher) types() []models.ActivityType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.ActivityType, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	svc     *Service
	store   *database.BadgerStore
	catalog *fakeCatalog
	events  *recordingPublisher
	clock   time.Time
}

func newTestService(t *testing.T) *testEnv {
	t.Helper()

	store, err := database.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "users_test_secret_that_is_long_enough_123456",
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	env := &testEnv{
		store:   store,
		catalog: &fakeCatalog{fail: map[string]bool{}},
		events:  &recordingPublisher{},
		clock:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	env.svc = NewService(store, store, env.catalog, tokens, auth.NewPasswordHasher(bcrypt.MinCost), Config{MaxPageSize: 3})
	env.svc.SetPublisher(env.events)
	// Each call advances the clock by a minute so ordering is deterministic.
	var mu sync.Mutex
	env.svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		env.clock = env.clock.Add(time.Minute)
		return env.clock
	}
	return env
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.svc.Register(context.Background(), RegisterRequest{
		Email:          username + "@example.com",
		Username:       username,
		Password:       "secret123",
		ProfilePicture: "profile-pictures/" + username + ".png",
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", username, err)
	}
	return u
}

func TestRegister(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")

	if ana.ID == "" {
		t.Fatal("expected an assigned ID")
	}
	if ana.PasswordHash == "secret123" || ana.PasswordHash == "" {
		t.Errorf("expected a bcrypt hash, got %q", ana.PasswordHash)
	}

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
		wantMsg string
	}{
		{
			name:    "duplicate email wins over duplicate username",
			req:     RegisterRequest{Email: "ANA@example.com ", Username: "ana", Password: "secret123", ProfilePicture: "p.png"},
			wantErr: models.ErrConflict,
			wantMsg: "Email already exists",
		},
		{
			name:    "duplicate username",
			req:     RegisterRequest{Email: "other@example.com", Username: "ana", Password: "secret123", ProfilePicture: "p.png"},
			wantErr: models.ErrConflict,
			wantMsg: "Username already exists",
		},
		{
			name:    "short password",
			req:     RegisterRequest{Email: "x@example.com", Username: "x", Password: "12345", ProfilePicture: "p.png"},
			wantErr: models.ErrValidation,
		},
		{
			name:    "missing picture",
			req:     RegisterRequest{Email: "x@example.com", Username: "x", Password: "secret123"},
			wantErr: models.ErrValidation,
			wantMsg: "Profile picture is required",
		},
		{
			name:    "missing email",
			req:     RegisterRequest{Username: "x", Password: "secret123", ProfilePicture: "p.png"},
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && models.Message(err) != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, models.Message(err))
			}
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")

	res, err := env.svc.Login(ctx, " Ana@Example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.ExpiresIn != 3600 {
		t.Errorf("expected 3600s expiry, got %d", res.ExpiresIn)
	}
	claims, err := env.svc.tokens.ValidateToken(res.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != ana.ID {
		t.Errorf("expected userId %s, got %s", ana.ID, claims.UserID)
	}

	for _, tc := range []struct{ email, password string }{
		{"ana@example.com", "wrong-password"},
		{"nobody@example.com", "secret123"},
	} {
		_, err := env.svc.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, models.ErrUnauthorized) || models.Message(err) != "Invalid credentials" {
			t.Errorf("expected invalid credentials for %s, got %v", tc.email, err)
		}
	}
}

func TestProfileAndUpdate(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")
	env.register(t, "ben")

	if _, err := env.svc.Profile(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	updated, err := env.svc.UpdateProfile(ctx, ana.ID, models.ProfileUpdate{
		Bio:           "  cinephile ",
		Location:      "Kathmandu",
		FavoriteFilms: []string{"27205", "155"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Bio != "cinephile" || updated.Location != "Kathmandu" || updated.Username != "ana" {
		t.Errorf("unexpected profile %+v", updated)
	}

	// Empty fields keep stored values.
	updated, err = env.svc.UpdateProfile(ctx, ana.ID, models.ProfileUpdate{Username: "ana2"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Bio != "cinephile" || len(updated.FavoriteFilms) != 2 || updated.Username != "ana2" {
		t.Errorf("expected unchanged fields to persist, got %+v", updated)
	}

	_, err = env.svc.UpdateProfile(ctx, ana.ID, models.ProfileUpdate{FavoriteFilms: []string{"1", "2", "3", "4", "5", "6"}})
	if !errors.Is(err, models.ErrValidation) || models.Message(err) != "Maximum 5 favorite films allowed" {
		t.Errorf("expected favorite films limit, got %v", err)
	}

	if _, err := env.svc.UpdateProfile(ctx, ana.ID, models.ProfileUpdate{Username: "ben"}); !errors.Is(err, models.ErrConflict) {
		t.Errorf("expected username conflict, got %v", err)
	}
}

func TestWatchlistAndWatched(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")

	for i := 0; i < 2; i++ {
		if err := env.svc.AddToWatchlist(ctx, ana.ID, "27205"); err != nil {
			t.Fatalf("AddToWatchlist failed: %v", err)
		}
		if err := env.svc.MarkWatched(ctx, ana.ID, "155"); err != nil {
			t.Fatalf("MarkWatched failed: %v", err)
		}
	}
	if err := env.svc.RemoveFromWatchlist(ctx, ana.ID, "999"); err != nil {
		t.Errorf("expected removing an absent movie to be a no-op, got %v", err)
	}

	u, _ := env.svc.Profile(ctx, ana.ID)
	if len(u.Watchlist) != 1 || len(u.WatchedMovies) != 1 {
		t.Errorf("expected one entry each, got watchlist=%d watched=%d", len(u.Watchlist), len(u.WatchedMovies))
	}

	got := env.events.types()
	want := []models.ActivityType{models.ActivityWatchlist, models.ActivityWatch}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected events %v, got %v", want, got)
	}

	if err := env.svc.RemoveFromWatchlist(ctx, ana.ID, "27205"); err != nil {
		t.Fatalf("RemoveFromWatchlist failed: %v", err)
	}
	u, _ = env.svc.Profile(ctx, ana.ID)
	if len(u.Watchlist) != 0 {
		t.Errorf("expected empty watchlist, got %d", len(u.Watchlist))
	}

	if err := env.svc.MarkWatched(ctx, "missing", "1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found for unknown user, got %v", err)
	}
}

func TestRatings(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")

	if r, err := env.svc.Rating(ctx, ana.ID, "155"); err != nil || r != 0 {
		t.Errorf("expected 0 for an unrated movie, got %d (%v)", r, err)
	}

	_ = env.svc.Rate(ctx, ana.ID, "155", 3)
	_ = env.svc.Rate(ctx, ana.ID, "155", 5)
	if r, _ := env.svc.Rating(ctx, ana.ID, "155"); r != 5 {
		t.Errorf("expected upserted rating 5, got %d", r)
	}

	for _, bad := range []int{0, 6, -1} {
		if err := env.svc.Rate(ctx, ana.ID, "155", bad); !errors.Is(err, models.ErrValidation) {
			t.Errorf("expected validation error for %d, got %v", bad, err)
		}
	}
}

func TestFollowGraph(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")
	ben := env.register(t, "ben")
	cat := env.register(t, "cat")
	dan := env.register(t, "dan")

	if err := env.svc.Follow(ctx, ana.ID, ana.ID); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected self-follow to be rejected, got %v", err)
	}
	if err := env.svc.Follow(ctx, ana.ID, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected unknown target to be not found, got %v", err)
	}
	if err := env.svc.Follow(ctx, "missing", ana.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected unknown follower to be not found, got %v", err)
	}

	// ana follows ben and cat; only ben follows back.
	_ = env.svc.Follow(ctx, ana.ID, ben.ID)
	_ = env.svc.Follow(ctx, ana.ID, ben.ID)
	_ = env.svc.Follow(ctx, ana.ID, cat.ID)
	_ = env.svc.Follow(ctx, ben.ID, ana.ID)

	u, _ := env.svc.Profile(ctx, ana.ID)
	if len(u.Following) != 2 {
		t.Errorf("expected no duplicate edges, got %v", u.Following)
	}

	friends, err := env.svc.Friends(ctx, ana.ID)
	if err != nil {
		t.Fatalf("Friends failed: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != ben.ID || friends[0].Username != "ben" {
		t.Errorf("expected ben as the only friend, got %+v", friends)
	}

	followers, _ := env.svc.Followers(ctx, ben.ID)
	if len(followers) != 1 || followers[0].ID != ana.ID {
		t.Errorf("expected ana to follow ben, got %+v", followers)
	}

	suggested, err := env.svc.Suggested(ctx, ana.ID)
	if err != nil {
		t.Fatalf("Suggested failed: %v", err)
	}
	if len(suggested) != 1 || suggested[0].ID != dan.ID {
		t.Errorf("expected dan as the only suggestion, got %+v", suggested)
	}

	if err := env.svc.Unfollow(ctx, ana.ID, cat.ID); err != nil {
		t.Fatalf("Unfollow failed: %v", err)
	}
	suggested, _ = env.svc.Suggested(ctx, ana.ID)
	if len(suggested) != 2 {
		t.Errorf("expected cat to become a suggestion again, got %+v", suggested)
	}

	follows := 0
	for _, typ := range env.events.types() {
		if typ == models.ActivityFollow {
			follows++
		}
	}
	if follows != 3 {
		t.Errorf("expected 3 follow events, got %d", follows)
	}
}

func TestSuggested_Limit(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ana := env.register(t, "ana")
	for _, name := range []string{"b", "c", "d", "e", "f", "g", "h"} {
		env.register(t, name)
	}

	suggested, err := env.svc.Suggested(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("Suggested failed: %v", err)
	}
	if len(suggested) != 5 {
		t.Errorf("expected 5 suggestions, got %d", len(suggested))
	}
	for _, s := range suggested {
		if s.ID == ana.ID {
			t.Error("expected the requesting user to be excluded")
		}
	}
}

func TestWatchedDetails(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		if err := env.svc.MarkWatched(ctx, ana.ID, id); err != nil {
			t.Fatalf("MarkWatched failed: %v", err)
		}
	}
	for _, rating := range []int{2, 4} {
		if err := env.store.CreateReview(ctx, &models.Review{UserID: ana.ID, MovieID: "4", Rating: rating, CreatedAt: env.svc.now()}); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
	}

	page, err := env.svc.WatchedDetails(ctx, ana.ID, 1, 2, "")
	if err != nil {
		t.Fatalf("WatchedDetails failed: %v", err)
	}
	if page.Total != 5 || page.TotalPages != 3 || page.Page != 1 {
		t.Errorf("unexpected paging %+v", page)
	}
	if len(page.Movies) != 2 || page.Movies[0].MovieID != "5" || page.Movies[1].MovieID != "4" {
		t.Fatalf("expected newest first [5 4], got %+v", page.Movies)
	}
	if page.Movies[0].Rating != nil {
		t.Errorf("expected null rating for an unreviewed movie, got %d", *page.Movies[0].Rating)
	}
	if page.Movies[1].Rating == nil || *page.Movies[1].Rating != 4 {
		t.Errorf("expected the latest review rating 4, got %v", page.Movies[1].Rating)
	}
	if page.Movies[0].Title != "Movie 5" || page.Movies[0].Poster != "/5.jpg" {
		t.Errorf("expected details to be filled, got %+v", page.Movies[0])
	}

	asc, _ := env.svc.WatchedDetails(ctx, ana.ID, 3, 2, "asc")
	if len(asc.Movies) != 1 || asc.Movies[0].MovieID != "5" {
		t.Errorf("expected last ascending page [5], got %+v", asc.Movies)
	}

	past, _ := env.svc.WatchedDetails(ctx, ana.ID, 9, 2, "desc")
	if len(past.Movies) != 0 || past.Total != 5 {
		t.Errorf("expected an empty page past the end, got %+v", past)
	}

	capped, _ := env.svc.WatchedDetails(ctx, ana.ID, 1, 100, "desc")
	if len(capped.Movies) != 3 {
		t.Errorf("expected limit capped at 3, got %d", len(capped.Movies))
	}

	if _, err := env.svc.WatchedDetails(ctx, ana.ID, 1, 2, "sideways"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected validation error for bad sort, got %v", err)
	}

	env.catalog.mu.Lock()
	env.catalog.fail["5"] = true
	env.catalog.mu.Unlock()
	if _, err := env.svc.WatchedDetails(ctx, ana.ID, 1, 2, ""); !errors.Is(err, models.ErrUpstream) {
		t.Errorf("expected upstream failure, got %v", err)
	}
}

func TestActivity(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")

	_ = env.svc.MarkWatched(ctx, ana.ID, "1")
	_ = env.svc.AddToWatchlist(ctx, ana.ID, "2")
	_ = env.svc.MarkWatched(ctx, ana.ID, "3")
	_ = env.svc.AddToWatchlist(ctx, ana.ID, "4")
	_ = env.store.CreateReview(ctx, &models.Review{UserID: ana.ID, MovieID: "5", Rating: 5, CreatedAt: env.svc.now()})
	_ = env.svc.MarkWatched(ctx, ana.ID, "6")

	env.catalog.mu.Lock()
	env.catalog.fail["4"] = true
	env.catalog.mu.Unlock()

	items, err := env.svc.Activity(ctx, ana.ID)
	if err != nil {
		t.Fatalf("Activity failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	wantIDs := []string{"6", "5", "4", "3", "2"}
	wantTypes := []models.ActivityType{models.ActivityWatch, models.ActivityReview, models.ActivityWatchlist, models.ActivityWatch, models.ActivityWatchlist}
	for i := range wantIDs {
		if items[i].MovieID != wantIDs[i] || items[i].Type != wantTypes[i] {
			t.Errorf("item %d: expected %s/%s, got %s/%s", i, wantTypes[i], wantIDs[i], items[i].Type, items[i].MovieID)
		}
	}
	if items[0].MovieTitle != "Movie 6" {
		t.Errorf("expected resolved title, got %q", items[0].MovieTitle)
	}
	if items[2].MovieTitle != "" {
		t.Errorf("expected failed lookup to leave the title empty, got %q", items[2].MovieTitle)
	}
	if items[1].Rating != 5 {
		t.Errorf("expected review rating on activity, got %d", items[1].Rating)
	}
}

func TestUserWithFollowing(t *testing.T) {
	t.Parallel()

	env := newTestService(t)
	ctx := context.Background()
	ana := env.register(t, "ana")
	ben := env.register(t, "ben")
	cat := env.register(t, "cat")

	_ = env.svc.Follow(ctx, ana.ID, cat.ID)
	_ = env.svc.Follow(ctx, ana.ID, ben.ID)
	_ = env.svc.MarkWatched(ctx, ben.ID, "27205")
	for _, r := range []*models.Review{
		{UserID: ben.ID, MovieID: "155", Rating: 5, CreatedAt: env.svc.now()},
		{UserID: ben.ID, MovieID: "13", Rating: 3, CreatedAt: env.svc.now()},
		{UserID: cat.ID, MovieID: "550", Rating: 4, CreatedAt: env.svc.now()},
	} {
		if err := env.store.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
	}

	user, following, err := env.svc.UserWithFollowing(ctx, ana.ID, 4)
	if err != nil {
		t.Fatalf("UserWithFollowing failed: %v", err)
	}
	if user.ID != ana.ID {
		t.Errorf("expected ana, got %s", user.ID)
	}
	if len(following) != 2 || following[0].User.ID != cat.ID || following[1].User.ID != ben.ID {
		t.Fatalf("expected [cat ben] in follow order, got %+v", following)
	}
	if len(following[1].Reviews) != 1 || following[1].Reviews[0].MovieID != "155" {
		t.Errorf("expected only ben's high rated review, got %+v", following[1].Reviews)
	}
	if len(following[1].User.WatchedMovies) != 1 {
		t.Errorf("expected ben's watched log to be loaded, got %+v", following[1].User.WatchedMovies)
	}

	_, reviews, err := env.svc.UserWithReviews(ctx, ben.ID)
	if err != nil || len(reviews) != 2 {
		t.Errorf("expected both of ben's reviews, got %d (%v)", len(reviews), err)
	}

	if _, _, err := env.svc.UserWithFollowing(ctx, "missing", 4); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, _, err := env.svc.UserWithReviews(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
