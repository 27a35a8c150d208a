// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// userDoc is the users collection schema.
type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	Username       string             `bson:"username"`
	PasswordHash   string             `bson:"password"`
	Location       string             `bson:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty"`
	ProfilePicture string             `bson:"profilePicture"`
	FavoriteFilms  []string           `bson:"favoriteFilms"`
	Watchlist      []watchlistDoc     `bson:"watchlist"`
	WatchedMovies  []watchedDoc       `bson:"watchedMovies"`
	Ratings        map[string]int     `bson:"ratings,omitempty"`
	Following      []string           `bson:"following"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

type watchlistDoc struct {
	MovieID string    `bson:"movieId"`
	AddedAt time.Time `bson:"addedAt"`
}

type watchedDoc struct {
	MovieID   string    `bson:"movieId"`
	WatchedAt time.Time `bson:"watchedAt"`
}

// reviewDoc is the reviews collection schema.
type reviewDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	MovieID   string             `bson:"movieId"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newUserDoc(u *models.User) userDoc {
	d := userDoc{
		Email:          u.Email,
		Username:       u.Username,
		PasswordHash:   u.PasswordHash,
		Location:       u.Location,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		FavoriteFilms:  nonNil(u.FavoriteFilms),
		Watchlist:      []watchlistDoc{},
		WatchedMovies:  []watchedDoc{},
		Ratings:        u.Ratings,
		Following:      nonNil(u.Following),
		CreatedAt:      u.CreatedAt,
	}
	for _, e := range u.Watchlist {
		d.Watchlist = append(d.Watchlist, watchlistDoc(e))
	}
	for _, e := range u.WatchedMovies {
		d.WatchedMovies = append(d.WatchedMovies, watchedDoc(e))
	}
	return d
}

func (d *userDoc) toModel() *models.User {
	u := &models.User{
		ID:             d.ID.Hex(),
		Email:          d.Email,
		Username:       d.Username,
		PasswordHash:   d.PasswordHash,
		Location:       d.Location,
		Bio:            d.Bio,
		ProfilePicture: d.ProfilePicture,
		FavoriteFilms:  d.FavoriteFilms,
		Ratings:        d.Ratings,
		Following:      d.Following,
		CreatedAt:      d.CreatedAt,
	}
	for _, e := range d.Watchlist {
		u.Watchlist = append(u.Watchlist, models.WatchlistEntry(e))
	}
	for _, e := range d.WatchedMovies {
		u.WatchedMovies = append(u.WatchedMovies, models.WatchedEntry(e))
	}
	return u
}

func (d *reviewDoc) toModel() *models.Review {
	return &models.Review{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		MovieID:   d.MovieID,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	client  *mongo.Client
	db      *mongo.Database
	users   *mongo.Collection
	reviews *mongo.Collection
}

// NewMongoStore connects to uri, pings the server and ensures indexes.
func NewMongoStore(ctx context.Context, uri, dbName string, timeout time.Duration) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri).SetConnectTimeout(timeout)
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewMongoStoreFromClient(client, dbName)
	if err := s.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logging.Info().Str("database", dbName).Msg("Connected to MongoDB")
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client without touching indexes.
func NewMongoStoreFromClient(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:  client,
		db:      db,
		users:   db.Collection(collUsers),
		reviews: db.Collection(collReviews),
	}
}

// EnsureIndexes creates the unique and lookup indexes. It is idempotent.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
		{Keys: bson.D{{Key: "following", Value: 1}}, Options: options.Index().SetName("following")},
	}
	if _, err := s.users.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}

	reviewIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "movieId", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("movie_created")},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}, Options: options.Index().SetName("user_created")},
	}
	if _, err := s.reviews.Indexes().CreateMany(ctx, reviewIndexes); err != nil {
		return fmt.Errorf("create review indexes: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Database returns the underlying database handle.
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

// userFilter parses id. A malformed ID cannot name a user.
func userFilter(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NotFound(msgUserNotFound)
	}
	return bson.M{"_id": oid}, nil
}

func duplicateKeyError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return models.Conflict(msgUsernameTaken)
	}
	return models.Conflict(msgEmailTaken)
}

// CreateUser inserts u and assigns its ObjectID.
func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) (err error) {
	defer observe("create", collUsers, time.Now(), &err)

	doc := newUserDoc(u)
	doc.ID = primitive.NewObjectID()
	if _, err = s.users.InsertOne(ctx, doc); err != nil {
		err = duplicateKeyError(err)
		if !errors.Is(err, models.ErrConflict) {
			err = fmt.Errorf("insert user: %w", err)
		}
		return err
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

// GetUser returns the user with id.
func (s *MongoStore) GetUser(ctx context.Context, id string) (u *models.User, err error) {
	defer observe("get", collUsers, time.Now(), &err)

	filter, err := userFilter(id)
	if err != nil {
		return nil, err
	}
	return s.findUser(ctx, filter)
}

// GetUserByEmail looks a user up by email.
func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (u *models.User, err error) {
	defer observe("get_by_email", collUsers, time.Now(), &err)
	return s.findUser(ctx, bson.M{"email": email})
}

// GetUserByUsername looks a user up by username.
func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (u *models.User, err error) {
	defer observe("get_by_username", collUsers, time.Now(), &err)
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *MongoStore) findUsers(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*models.User, error) {
	cursor, err := s.users.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*models.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toModel())
	}
	return users, nil
}

func objectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}

// GetUsers returns the existing users among ids, in ids order.
func (s *MongoStore) GetUsers(ctx context.Context, ids []string) (users []*models.User, err error) {
	defer observe("get_many", collUsers, time.Now(), &err)

	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.findUsers(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// ListUsers returns up to limit users not in exclude.
func (s *MongoStore) ListUsers(ctx context.Context, exclude []string, limit int) (users []*models.User, err error) {
	defer observe("list", collUsers, time.Now(), &err)

	filter := bson.M{"_id": bson.M{"$nin": objectIDs(exclude)}}
	return s.findUsers(ctx, filter, options.Find().SetLimit(int64(limit)))
}

// ListFollowers returns the users whose following list contains id.
func (s *MongoStore) ListFollowers(ctx context.Context, id string) (users []*models.User, err error) {
	defer observe("list_followers", collUsers, time.Now(), &err)
	return s.findUsers(ctx, bson.M{"following": id})
}

// UpdateProfile applies the non-empty fields of upd.
func (s *MongoStore) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (u *models.User, err error) {
	defer observe("update_profile", collUsers, time.Now(), &err)

	filter, err := userFilter(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Username != "" {
		set["username"] = upd.Username
	}
	if upd.Location != "" {
		set["location"] = upd.Location
	}
	if upd.Bio != "" {
		set["bio"] = upd.Bio
	}
	if upd.ProfilePicture != "" {
		set["profilePicture"] = upd.ProfilePicture
	}
	if upd.FavoriteFilms != nil {
		set["favoriteFilms"] = upd.FavoriteFilms
	}
	if len(set) == 0 {
		return s.findUser(ctx, filter)
	}

	var doc userDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.users.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NotFound(msgUserNotFound)
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.Conflict(msgUsernameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return doc.toModel(), nil
}

// pushUnique appends value to field unless an element already matches
// guard. It reports whether the push happened.
func (s *MongoStore) pushUnique(ctx context.Context, id, field string, guard bson.M, value interface{}) (bool, error) {
	filter, err := userFilter(id)
	if err != nil {
		return false, err
	}
	conditional := bson.M{"_id": filter["_id"]}
	for k, v := range guard {
		conditional[k] = v
	}

	res, err := s.users.UpdateOne(ctx, conditional, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return false, fmt.Errorf("push %s: %w", field, err)
	}
	if res.MatchedCount > 0 {
		return true, nil
	}

	// No match: either the user is missing or the value is already there.
	n, err := s.users.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count user: %w", err)
	}
	if n == 0 {
		return false, models.NotFound(msgUserNotFound)
	}
	return false, nil
}

func (s *MongoStore) updateUser(ctx context.Context, id string, update bson.M) error {
	filter, err := userFilter(id)
	if err != nil {
		return err
	}
	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NotFound(msgUserNotFound)
	}
	return nil
}

// AddToWatchlist appends entry unless the movie is already listed.
func (s *MongoStore) AddToWatchlist(ctx context.Context, id string, entry models.WatchlistEntry) (err error) {
	defer observe("add_watchlist", collUsers, time.Now(), &err)

	guard := bson.M{"watchlist.movieId": bson.M{"$ne": entry.MovieID}}
	_, err = s.pushUnique(ctx, id, "watchlist", guard, watchlistDoc(entry))
	return err
}

// RemoveFromWatchlist pulls movieID from the watchlist.
func (s *MongoStore) RemoveFromWatchlist(ctx context.Context, id, movieID string) (err error) {
	defer observe("remove_watchlist", collUsers, time.Now(), &err)
	return s.updateUser(ctx, id, bson.M{"$pull": bson.M{"watchlist": bson.M{"movieId": movieID}}})
}

// AddWatched appends entry unless the movie is already logged.
func (s *MongoStore) AddWatched(ctx context.Context, id string, entry models.WatchedEntry) (added bool, err error) {
	defer observe("add_watched", collUsers, time.Now(), &err)

	guard := bson.M{"watchedMovies.movieId": bson.M{"$ne": entry.MovieID}}
	return s.pushUnique(ctx, id, "watchedMovies", guard, watchedDoc(entry))
}

// SetRating upserts the rating for movieID.
func (s *MongoStore) SetRating(ctx context.Context, id, movieID string, rating int) (err error) {
	defer observe("set_rating", collUsers, time.Now(), &err)
	return s.updateUser(ctx, id, bson.M{"$set": bson.M{"ratings." + movieID: rating}})
}

// AddFollowing records the edge id -> targetID unless present.
func (s *MongoStore) AddFollowing(ctx context.Context, id, targetID string) (added bool, err error) {
	defer observe("add_following", collUsers, time.Now(), &err)

	guard := bson.M{"following": bson.M{"$ne": targetID}}
	return s.pushUnique(ctx, id, "following", guard, targetID)
}

// RemoveFollowing pulls targetID from id's following list.
func (s *MongoStore) RemoveFollowing(ctx context.Context, id, targetID string) (err error) {
	defer observe("remove_following", collUsers, time.Now(), &err)
	return s.updateUser(ctx, id, bson.M{"$pull": bson.M{"following": targetID}})
}

func reviewFilter(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NotFound(msgReviewNotFound)
	}
	return bson.M{"_id": oid}, nil
}

// CreateReview inserts r and assigns its ObjectID.
func (s *MongoStore) CreateReview(ctx context.Context, r *models.Review) (err error) {
	defer observe("create", collReviews, time.Now(), &err)

	doc := reviewDoc{
		ID:        primitive.NewObjectID(),
		UserID:    r.UserID,
		MovieID:   r.MovieID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if _, err = s.reviews.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	r.ID = doc.ID.Hex()
	return nil
}

// GetReview returns the review with id.
func (s *MongoStore) GetReview(ctx context.Context, id string) (r *models.Review, err error) {
	defer observe("get", collReviews, time.Now(), &err)

	filter, err := reviewFilter(id)
	if err != nil {
		return nil, err
	}
	var doc reviewDoc
	err = s.reviews.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NotFound(msgReviewNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) findReviews(ctx context.Context, filter bson.M) ([]*models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.reviews.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	var docs []reviewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	reviews := make([]*models.Review, 0, len(docs))
	for i := range docs {
		reviews = append(reviews, docs[i].toModel())
	}
	return reviews, nil
}

// ListReviewsByMovie returns the movie's reviews oldest first.
func (s *MongoStore) ListReviewsByMovie(ctx context.Context, movieID string) (reviews []*models.Review, err error) {
	defer observe("list_by_movie", collReviews, time.Now(), &err)
	return s.findReviews(ctx, bson.M{"movieId": movieID})
}

// ListReviewsByUser returns the user's reviews rated at least minRating.
func (s *MongoStore) ListReviewsByUser(ctx context.Context, userID string, minRating int) (reviews []*models.Review, err error) {
	defer observe("list_by_user", collReviews, time.Now(), &err)

	filter := bson.M{"userId": userID}
	if minRating > 0 {
		filter["rating"] = bson.M{"$gte": minRating}
	}
	return s.findReviews(ctx, filter)
}

// UpdateReview stores r's rating, comment and updatedAt.
func (s *MongoStore) UpdateReview(ctx context.Context, r *models.Review) (err error) {
	defer observe("update", collReviews, time.Now(), &err)

	filter, err := reviewFilter(r.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"rating":    r.Rating,
		"comment":   r.Comment,
		"updatedAt": r.UpdatedAt,
	}}
	res, err := s.reviews.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.NotFound(msgReviewNotFound)
	}
	return nil
}

// DeleteReview removes the review.
func (s *MongoStore) DeleteReview(ctx context.Context, id string) (err error) {
	defer observe("delete", collReviews, time.Now(), &err)

	filter, err := reviewFilter(id)
	if err != nil {
		return err
	}
	res, err := s.reviews.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.NotFound(msgReviewNotFound)
	}
	return nil
}
