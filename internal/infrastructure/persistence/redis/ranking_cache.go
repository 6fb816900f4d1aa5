package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/evaluation"
	"github.com/bs1gr/AUT-MIEEK-SMS-sub001/internal/domain/ranking"

	"github.com/redis/go-redis/v9"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING CACHE ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrRankingEmpty is returned when no ranking is cached for a dimension.
	ErrRankingEmpty = errors.New("ranking_cache: ranking is empty")

	// ErrStudentNotRanked is returned when a student is not in the ranking.
	ErrStudentNotRanked = errors.New("ranking_cache: student not in ranking")

	// ErrStudentIDEmpty is returned when an empty student ID is provided.
	ErrStudentIDEmpty = errors.New("ranking_cache: student ID cannot be empty")
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING CACHE
// ══════════════════════════════════════════════════════════════════════════════

// RankingCache stores precomputed rankings produced by the refresh job.
//
// Architecture:
//   - String "ranking:list:{dim}" stores the ranked summaries as a JSON
//     array, preserving the exact order the ranking pass produced
//   - Sorted Set "ranking:score:{dim}" stores studentID -> score for
//     O(log N) rank lookups
//   - String "ranking:meta:{dim}" stores refresh metadata
type RankingCache struct {
	cache *Cache
	ttl   time.Duration
}

// Key patterns for ranking cache.
const (
	keyRankingList  = "ranking:list:"
	keyRankingScore = "ranking:score:"
	keyRankingMeta  = "ranking:meta:"
)

// RankingMeta contains metadata about a cached ranking.
type RankingMeta struct {
	Dimension     string    `json:"dimension"`
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	TotalRanked   int       `json:"total_ranked"`
	DataRichCount int       `json:"data_rich_count"`
}

// NewRankingCache creates a new RankingCache instance. A non-positive
// ttl falls back to TTLRankingCache.
func NewRankingCache(cache *Cache, ttl time.Duration) *RankingCache {
	if ttl <= 0 {
		ttl = TTLRankingCache
	}
	return &RankingCache{cache: cache, ttl: ttl}
}

// ══════════════════════════════════════════════════════════════════════════════
// WRITE OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// SetRankings replaces the cached ranking for one dimension. The
// summaries must already be in ranked order, best first.
func (r *RankingCache) SetRankings(ctx context.Context, dim ranking.Dimension, summaries []evaluation.StudentSummary, runID string) error {
	listKey := keyRankingList + string(dim)
	scoreKey := keyRankingScore + string(dim)
	metaKey := keyRankingMeta + string(dim)

	listData, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	rich := 0
	zMembers := make([]redis.Z, 0, len(summaries))
	for _, s := range summaries {
		if s.StudentID == "" {
			continue
		}
		if s.DataRich() {
			rich++
		}
		zMembers = append(zMembers, redis.Z{
			Score:  dim.ScoreOf(s),
			Member: s.StudentID,
		})
	}

	meta := RankingMeta{
		Dimension:     string(dim),
		RunID:         runID,
		GeneratedAt:   time.Now().UTC(),
		TotalRanked:   len(summaries),
		DataRichCount: rich,
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheSerialization, err)
	}

	// Transaction so readers never observe a half-replaced ranking.
	pipe := r.cache.Client().TxPipeline()

	pipe.Del(ctx, listKey, scoreKey)
	pipe.Set(ctx, listKey, listData, r.ttl)
	if len(zMembers) > 0 {
		pipe.ZAdd(ctx, scoreKey, zMembers...)
		pipe.Expire(ctx, scoreKey, r.ttl)
	}
	pipe.Set(ctx, metaKey, metaData, r.ttl)

	_, err = pipe.Exec(ctx)
	return err
}

// Invalidate removes the cached ranking for one dimension.
func (r *RankingCache) Invalidate(ctx context.Context, dim ranking.Dimension) error {
	return r.cache.Delete(ctx,
		keyRankingList+string(dim),
		keyRankingScore+string(dim),
		keyRankingMeta+string(dim),
	)
}

// InvalidateAll removes cached rankings for every dimension.
func (r *RankingCache) InvalidateAll(ctx context.Context) error {
	for _, dim := range ranking.Dimensions() {
		if err := r.Invalidate(ctx, dim); err != nil {
			return err
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// READ OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetRankings returns up to limit cached summaries for a dimension, in
// ranked order. Returns ErrCacheMiss when no ranking is cached.
func (r *RankingCache) GetRankings(ctx context.Context, dim ranking.Dimension, limit int) ([]evaluation.StudentSummary, error) {
	var summaries []evaluation.StudentSummary
	if err := r.cache.Get(ctx, keyRankingList+string(dim), &summaries); err != nil {
		return nil, err
	}

	if len(summaries) == 0 {
		return nil, ErrRankingEmpty
	}
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}

	return summaries, nil
}

// GetRank returns the rank (1-based) of a student in a dimension.
// Returns ErrStudentNotRanked if the student is not in the ranking.
func (r *RankingCache) GetRank(ctx context.Context, dim ranking.Dimension, studentID string) (int64, error) {
	if studentID == "" {
		return 0, ErrStudentIDEmpty
	}

	rank, err := r.cache.Client().ZRevRank(ctx, keyRankingScore+string(dim), studentID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrStudentNotRanked
		}
		return 0, err
	}

	return rank + 1, nil
}

// GetMeta returns the refresh metadata for a dimension.
func (r *RankingCache) GetMeta(ctx context.Context, dim ranking.Dimension) (*RankingMeta, error) {
	var meta RankingMeta
	if err := r.cache.Get(ctx, keyRankingMeta+string(dim), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Exists checks if a ranking is cached for a dimension.
func (r *RankingCache) Exists(ctx context.Context, dim ranking.Dimension) (bool, error) {
	return r.cache.Exists(ctx, keyRankingList+string(dim))
}
