// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// Key prefixes for Badger storage
const (
	userKeyPrefix         = "user:"
	userEmailKeyPrefix    = "user_email:"
	userUsernameKeyPrefix = "user_username:"
	followerKeyPrefix     = "follower:"
	reviewKeyPrefix       = "review:"
	reviewMovieKeyPrefix  = "review_movie:"
	reviewUserKeyPrefix   = "review_user:"
)

// maxTxnRetries bounds retries of a write transaction that lost a conflict.
const maxTxnRetries = 5

// userRecord is the stored form of a user. models.User hides the hash
// from JSON, so it is carried alongside.
type userRecord struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}

func (r *userRecord) toModel() *models.User {
	u := r.User
	u.PasswordHash = r.PasswordHash
	return &u
}

// BadgerStore implements Store on an embedded Badger database.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a Badger database at path, or an in-memory one.
func OpenBadger(path string, inMemory bool) (*BadgerStore, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(filepath.Clean(path), 0o750); err != nil {
			return nil, fmt.Errorf("create badger directory %s: %w", path, err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Badger's own logger is noisy at info level

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return NewBadgerStoreFromDB(db), nil
}

// NewBadgerStoreFromDB wraps an already open database.
func NewBadgerStoreFromDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Ping reports whether the database is still open.
func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return ctx.Err()
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// update runs fn in a read-write transaction, retrying on conflict.
func (s *BadgerStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *BadgerStore) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func getJSON(txn *badger.Txn, key string, v interface{}) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

func setJSON(txn *badger.Txn, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

func getString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

// scanValues returns the values stored under every key with prefix, in
// key order.
func scanValues(txn *badger.Txn, prefix string) ([]string, error) {
	var values []string
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = true
	it := txn.NewIterator(opts)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		values = append(values, string(val))
	}
	return values, nil
}

// scanKeySuffixes returns the part after prefix of every matching key.
func scanKeySuffixes(txn *badger.Txn, prefix string) []string {
	var suffixes []string
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		suffixes = append(suffixes, strings.TrimPrefix(string(it.Item().Key()), prefix))
	}
	return suffixes
}

func loadUser(txn *badger.Txn, id string) (*userRecord, error) {
	var rec userRecord
	err := getJSON(txn, userKeyPrefix+id, &rec)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, models.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &rec, nil
}

// CreateUser inserts u, assigning a new ID.
func (s *BadgerStore) CreateUser(ctx context.Context, u *models.User) (err error) {
	defer observe("create", collUsers, time.Now(), &err)

	id := uuid.NewString()
	err = s.update(ctx, func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(userEmailKeyPrefix + u.Email)); err == nil {
			return models.Conflict(msgEmailTaken)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if _, err := txn.Get([]byte(userUsernameKeyPrefix + u.Username)); err == nil {
			return models.Conflict(msgUsernameTaken)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		rec := userRecord{User: *u, PasswordHash: u.PasswordHash}
		rec.ID = id
		if err := setJSON(txn, userKeyPrefix+id, &rec); err != nil {
			return err
		}
		if err := txn.Set([]byte(userEmailKeyPrefix+u.Email), []byte(id)); err != nil {
			return err
		}
		return txn.Set([]byte(userUsernameKeyPrefix+u.Username), []byte(id))
	})
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetUser returns the user with id.
func (s *BadgerStore) GetUser(ctx context.Context, id string) (u *models.User, err error) {
	defer observe("get", collUsers, time.Now(), &err)

	err = s.view(ctx, func(txn *badger.Txn) error {
		rec, err := loadUser(txn, id)
		if err != nil {
			return err
		}
		u = rec.toModel()
		return nil
	})
	return u, err
}

func (s *BadgerStore) getUserByIndex(ctx context.Context, key string) (u *models.User, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		id, err := getString(txn, key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.NotFound(msgUserNotFound)
		}
		if err != nil {
			return err
		}
		rec, err := loadUser(txn, id)
		if err != nil {
			return err
		}
		u = rec.toModel()
		return nil
	})
	return u, err
}

// GetUserByEmail looks a user up by email.
func (s *BadgerStore) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	defer observe("get_by_email", collUsers, time.Now(), &err)
	return s.getUserByIndex(ctx, userEmailKeyPrefix+email)
}

// GetUserByUsername looks a user up by username.
func (s *BadgerStore) GetUserByUsername(ctx context.Context, username string) (u *models.User, err error) {
	defer observe("get_by_username", collUsers, time.Now(), &err)
	return s.getUserByIndex(ctx, userUsernameKeyPrefix+username)
}

// GetUsers returns the existing users among ids, in ids order.
func (s *BadgerStore) GetUsers(ctx context.Context, ids []string) (users []*models.User, err error) {
	defer observe("get_many", collUsers, time.Now(), &err)

	err = s.view(ctx, func(txn *badger.Txn) error {
		for _, id := range ids {
			rec, err := loadUser(txn, id)
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			users = append(users, rec.toModel())
		}
		return nil
	})
	return users, err
}

// ListUsers returns up to limit users not in exclude.
func (s *BadgerStore) ListUsers(ctx context.Context, exclude []string, limit int) (users []*models.User, err error) {
	defer observe("list", collUsers, time.Now(), &err)

	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	err = s.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(users) < limit; it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), userKeyPrefix)
			if _, excluded := skip[id]; excluded {
				continue
			}
			var rec userRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			users = append(users, rec.toModel())
		}
		return nil
	})
	return users, err
}

// ListFollowers returns the users following id.
func (s *BadgerStore) ListFollowers(ctx context.Context, id string) (users []*models.User, err error) {
	defer observe("list_followers", collUsers, time.Now(), &err)

	err = s.view(ctx, func(txn *badger.Txn) error {
		for _, followerID := range scanKeySuffixes(txn, followerKeyPrefix+id+":") {
			rec, err := loadUser(txn, followerID)
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			users = append(users, rec.toModel())
		}
		return nil
	})
	return users, err
}

// mutateUser loads a user, applies fn and writes it back when fn reports
// a change.
func (s *BadgerStore) mutateUser(ctx context.Context, id string, fn func(txn *badger.Txn, rec *userRecord) (bool, error)) (*models.User, error) {
	var out *models.User
	err := s.update(ctx, func(txn *badger.Txn) error {
		rec, err := loadUser(txn, id)
		if err != nil {
			return err
		}
		changed, err := fn(txn, rec)
		if err != nil {
			return err
		}
		if changed {
			if err := setJSON(txn, userKeyPrefix+id, rec); err != nil {
				return err
			}
		}
		out = rec.toModel()
		return nil
	})
	return out, err
}

// UpdateProfile applies the non-empty fields of upd.
func (s *BadgerStore) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (u *models.User, err error) {
	defer observe("update_profile", collUsers, time.Now(), &err)

	return s.mutateUser(ctx, id, func(txn *badger.Txn, rec *userRecord) (bool, error) {
		if upd.Username != "" && upd.Username != rec.Username {
			key := []byte(userUsernameKeyPrefix + upd.Username)
			if _, err := txn.Get(key); err == nil {
				return false, models.Conflict(msgUsernameTaken)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return false, err
			}
			if err := txn.Delete([]byte(userUsernameKeyPrefix + rec.Username)); err != nil {
				return false, err
			}
			if err := txn.Set(key, []byte(id)); err != nil {
				return false, err
			}
			rec.Username = upd.Username
		}
		if upd.Location != "" {
			rec.Location = upd.Location
		}
		if upd.Bio != "" {
			rec.Bio = upd.Bio
		}
		if upd.ProfilePicture != "" {
			rec.ProfilePicture = upd.ProfilePicture
		}
		if upd.FavoriteFilms != nil {
			rec.FavoriteFilms = append([]string(nil), upd.FavoriteFilms...)
		}
		return true, nil
	})
}

// AddToWatchlist appends entry unless the movie is already listed.
func (s *BadgerStore) AddToWatchlist(ctx context.Context, id string, entry models.WatchlistEntry) (err error) {
	defer observe("add_watchlist", collUsers, time.Now(), &err)

	_, err = s.mutateUser(ctx, id, func(_ *badger.Txn, rec *userRecord) (bool, error) {
		if rec.InWatchlist(entry.MovieID) {
			return false, nil
		}
		rec.Watchlist = append(rec.Watchlist, entry)
		return true, nil
	})
	return err
}

// RemoveFromWatchlist removes movieID from the watchlist if present.
func (s *BadgerStore) RemoveFromWatchlist(ctx context.Context, id, movieID string) (err error) {
	defer observe("remove_watchlist", collUsers, time.Now(), &err)

	_, err = s.mutateUser(ctx, id, func(_ *badger.Txn, rec *userRecord) (bool, error) {
		kept := rec.Watchlist[:0]
		for _, e := range rec.Watchlist {
			if e.MovieID != movieID {
				kept = append(kept, e)
			}
		}
		changed := len(kept) != len(rec.Watchlist)
		rec.Watchlist = kept
		return changed, nil
	})
	return err
}

// AddWatched appends entry unless the movie is already logged.
func (s *BadgerStore) AddWatched(ctx context.Context, id string, entry models.WatchedEntry) (added bool, err error) {
	defer observe("add_watched", collUsers, time.Now(), &err)

	_, err = s.mutateUser(ctx, id, func(_ *badger.Txn, rec *userRecord) (bool, error) {
		if rec.HasWatched(entry.MovieID) {
			return false, nil
		}
		rec.WatchedMovies = append(rec.WatchedMovies, entry)
		added = true
		return true, nil
	})
	return added, err
}

// SetRating upserts the user's rating for movieID.
func (s *BadgerStore) SetRating(ctx context.Context, id, movieID string, rating int) (err error) {
	defer observe("set_rating", collUsers, time.Now(), &err)

	_, err = s.mutateUser(ctx, id, func(_ *badger.Txn, rec *userRecord) (bool, error) {
		if rec.Ratings == nil {
			rec.Ratings = make(map[string]int)
		}
		rec.Ratings[movieID] = rating
		return true, nil
	})
	return err
}

// AddFollowing records the edge id -> targetID unless present.
func (s *BadgerStore) AddFollowing(ctx context.Context, id, targetID string) (added bool, err error) {
	defer observe("add_following", collUsers, time.Now(), &err)

	_, err = s.mutateUser(ctx, id, func(txn *badger.Txn, rec *userRecord) (bool, error) {
		if rec.IsFollowing(targetID) {
			return false, nil
		}
		rec.Following = append(rec.Following, targetID)
		if err := txn.Set([]byte(followerKeyPrefix+targetID+":"+id), nil); err != nil {
			return false, err
		}
		added = true
		return true, nil
	})
	return added, err
}

// RemoveFollowing drops the edge id -> targetID if present.
func (s *BadgerStore) RemoveFollowing(ctx context.Context, id, targetID string) (err error) {
	defer observe("remove_following", collUsers, time.Now(), &err)

	_, err = s.mutateUser(ctx, id, func(txn *badger.Txn, rec *userRecord) (bool, error) {
		if !rec.IsFollowing(targetID) {
			return false, nil
		}
		kept := make([]string, 0, len(rec.Following))
		for _, f := range rec.Following {
			if f != targetID {
				kept = append(kept, f)
			}
		}
		rec.Following = kept
		if err := txn.Delete([]byte(followerKeyPrefix + targetID + ":" + id)); err != nil {
			return false, err
		}
		return true, nil
	})
	return err
}

// reviewIndexSuffix orders index keys chronologically.
func reviewIndexSuffix(r *models.Review) string {
	return fmt.Sprintf("%020d:%s", r.CreatedAt.UnixNano(), r.ID)
}

func loadReview(txn *badger.Txn, id string) (*models.Review, error) {
	var r models.Review
	err := getJSON(txn, reviewKeyPrefix+id, &r)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, models.NotFound(msgReviewNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &r, nil
}

// CreateReview inserts r, assigning a new ID.
func (s *BadgerStore) CreateReview(ctx context.Context, r *models.Review) (err error) {
	defer observe("create", collReviews, time.Now(), &err)

	stored := *r
	stored.ID = uuid.NewString()
	stored.Author = nil
	err = s.update(ctx, func(txn *badger.Txn) error {
		if err := setJSON(txn, reviewKeyPrefix+stored.ID, &stored); err != nil {
			return err
		}
		suffix := reviewIndexSuffix(&stored)
		if err := txn.Set([]byte(reviewMovieKeyPrefix+stored.MovieID+":"+suffix), []byte(stored.ID)); err != nil {
			return err
		}
		return txn.Set([]byte(reviewUserKeyPrefix+stored.UserID+":"+suffix), []byte(stored.ID))
	})
	if err != nil {
		return err
	}
	r.ID = stored.ID
	return nil
}

// GetReview returns the review with id.
func (s *BadgerStore) GetReview(ctx context.Context, id string) (r *models.Review, err error) {
	defer observe("get", collReviews, time.Now(), &err)

	err = s.view(ctx, func(txn *badger.Txn) error {
		r, err = loadReview(txn, id)
		return err
	})
	return r, err
}

func (s *BadgerStore) listReviews(ctx context.Context, prefix string, minRating int) (reviews []*models.Review, err error) {
	err = s.view(ctx, func(txn *badger.Txn) error {
		ids, err := scanValues(txn, prefix)
		if err != nil {
			return err
		}
		for _, id := range ids {
			r, err := loadReview(txn, id)
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if r.Rating >= minRating {
				reviews = append(reviews, r)
			}
		}
		return nil
	})
	return reviews, err
}

// ListReviewsByMovie returns the movie's reviews oldest first.
func (s *BadgerStore) ListReviewsByMovie(ctx context.Context, movieID string) (reviews []*models.Review, err error) {
	defer observe("list_by_movie", collReviews, time.Now(), &err)
	return s.listReviews(ctx, reviewMovieKeyPrefix+movieID+":", 0)
}

// ListReviewsByUser returns the user's reviews rated at least minRating.
func (s *BadgerStore) ListReviewsByUser(ctx context.Context, userID string, minRating int) (reviews []*models.Review, err error) {
	defer observe("list_by_user", collReviews, time.Now(), &err)
	return s.listReviews(ctx, reviewUserKeyPrefix+userID+":", minRating)
}

// UpdateReview stores r's rating, comment and updatedAt.
func (s *BadgerStore) UpdateReview(ctx context.Context, r *models.Review) (err error) {
	defer observe("update", collReviews, time.Now(), &err)

	return s.update(ctx, func(txn *badger.Txn) error {
		stored, err := loadReview(txn, r.ID)
		if err != nil {
			return err
		}
		stored.Rating = r.Rating
		stored.Comment = r.Comment
		stored.UpdatedAt = r.UpdatedAt
		return setJSON(txn, reviewKeyPrefix+r.ID, stored)
	})
}

// DeleteReview removes the review and its index keys.
func (s *BadgerStore) DeleteReview(ctx context.Context, id string) (err error) {
	defer observe("delete", collReviews, time.Now(), &err)

	return s.update(ctx, func(txn *badger.Txn) error {
		stored, err := loadReview(txn, id)
		if err != nil {
			return err
		}
		suffix := reviewIndexSuffix(stored)
		for _, key := range []string{
			reviewKeyPrefix + id,
			reviewMovieKeyPrefix + stored.MovieID + ":" + suffix,
			reviewUserKeyPrefix + stored.UserID + ":" + suffix,
		} {
			if err := txn.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
}
