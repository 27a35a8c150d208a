// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package database is the document store behind the user directory and
the review store.

Two backends implement Store:

  - MongoStore keeps users and reviews in MongoDB collections. Watchlist,
    watched log and follow edges are kept unique with conditional $push
    updates, and email/username uniqueness is enforced by unique indexes.
  - BadgerStore keeps JSON documents in an embedded Badger v4 database.
    Uniqueness is enforced inside the write transaction through secondary
    index keys. The in-memory mode backs tests and local development.

Open selects the backend from config.DatabaseConfig.Driver.

# Error Handling

Missing documents return an error matching models.ErrNotFound.
Duplicate email or username returns models.ErrConflict with the message
"Email already exists" or "Username already exists". Anything else is a
storage failure and is wrapped with the operation name.

# Documents

A user's followers and reviews are never stored on the user. Followers
come from a reverse query over the following lists and reviews from
the review collection filtered by owner.
*/
package database
