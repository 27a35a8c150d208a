// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

// Package storage issues presigned upload URLs for profile pictures on an
// S3-compatible bucket (AWS S3, MinIO, Cloudflare R2).
//
// Clients upload the image directly to the bucket and then submit the
// returned object key as their profile picture. The server never handles
// image bytes.
package storage
