// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

// Package testinfra provides test infrastructure shared across packages.
//
// # Fake TMDB
//
// FakeTMDB is an httptest server speaking the subset of the TMDB v3 API
// the gateway uses. It records every request so tests can assert on
// query parameters and call counts:
//
//	fake := testinfra.NewFakeTMDB(t)
//	fake.AddMovie(27205, "Inception", 28, 878)
//	client := tmdb.NewClient(&config.TMDBConfig{BaseURL: fake.URL(), APIKey: "k"})
//	detail, err := client.MovieDetail(ctx, "27205")
//
// # MongoDB Container
//
// Under the integration build tag, MongoContainer starts a real MongoDB
// through testcontainers-go:
//
//	mongo, err := testinfra.NewMongoContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer testinfra.CleanupContainer(t, ctx, mongo.Container)
//
//	store, err := database.NewMongoStore(ctx, mongo.URI, "test", 10*time.Second)
//
// Run with:
//
//	go test -tags integration ./...
//
// Tests skip when Docker is unavailable.
package testinfra
