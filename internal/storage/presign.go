// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/SaphalKatuwal/SilverScreened/internal/config"
	"github.com/SaphalKatuwal/SilverScreened/internal/logging"
	"github.com/SaphalKatuwal/SilverScreened/internal/models"
)

// KeyPrefix is the object key prefix for profile pictures.
const KeyPrefix = "profile-pictures/"

const defaultPresignTTL = 15 * time.Minute

// ErrDisabled is returned when uploads are not configured.
var ErrDisabled = errors.New("profile picture uploads are disabled")

// allowedTypes maps accepted content types to object key extensions.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Upload is a presigned PUT for one object.
type Upload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	PublicURL string `json:"publicUrl"`
	ExpiresIn int    `json:"expiresIn"`
}

// Presigner creates presigned profile picture uploads.
type Presigner struct {
	client  *s3.PresignClient
	bucket  string
	baseURL string
	ttl     time.Duration
	newID   func() string
}

// NewPresigner builds a presigner from cfg. It returns ErrDisabled when
// storage is turned off.
func NewPresigner(ctx context.Context, cfg *config.StorageConfig) (*Presigner, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrDisabled
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		if endpoint != "" {
			baseURL = endpoint + "/" + cfg.Bucket
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	logging.Info().
		Str("bucket", cfg.Bucket).
		Str("endpoint", endpoint).
		Dur("ttl", ttl).
		Msg("Profile picture uploads enabled")

	return &Presigner{
		client:  s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		ttl:     ttl,
		newID:   uuid.NewString,
	}, nil
}

// PresignProfilePicture returns a presigned PUT for a new profile picture
// of the given content type. A nil Presigner reports ErrDisabled.
func (p *Presigner) PresignProfilePicture(ctx context.Context, contentType string) (*Upload, error) {
	if p == nil {
		return nil, ErrDisabled
	}

	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, models.Validation("Only JPEG, PNG, WebP and GIF images are allowed")
	}

	key := KeyPrefix + p.newID() + ext
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = p.ttl
	})
	if err != nil {
		return nil, models.Upstream("Failed to create upload URL", err)
	}

	return &Upload{
		UploadURL: req.URL,
		ObjectKey: key,
		PublicURL: p.baseURL + "/" + key,
		ExpiresIn: int(p.ttl.Seconds()),
	}, nil
}

