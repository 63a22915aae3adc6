package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	submissionKeyPrefix = "submission:%d"
	feedFirstPageKey    = "feed:firstpage"
)

const (
	SubmissionTTL = 10 * time.Minute
	FeedTTL       = 1 * time.Minute
)

// SubmissionKey returns the cache key for a single submission page.
func SubmissionKey(id uint) string {
	return fmt.Sprintf(submissionKeyPrefix, id)
}

// FeedKey returns the cache key for the anonymous, unfiltered first feed page.
func FeedKey() string {
	return feedFirstPageKey
}

// Invalidate removes a key. No-op when Redis is unavailable.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateSubmission drops a submission's cached page and the feed page.
func InvalidateSubmission(ctx context.Context, id uint) {
	Invalidate(ctx, SubmissionKey(id))
	Invalidate(ctx, FeedKey())
}
