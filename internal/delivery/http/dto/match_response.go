package dto

import (
	"time"

	"entity-match/internal/domain/entity"
)

type MatchItemResponse struct {
	EntityAID string         `json:"entity_a_id"`
	EntityBID string         `json:"entity_b_id"`
	Score     float64        `json:"score"`
	Details   map[string]any `json:"details"`
	MatchedAt string         `json:"matched_at,omitempty"`
}

type MatchingStatisticsResponse struct {
	TotalMatches   int     `json:"total_matches"`
	UnmatchedCount int     `json:"unmatched_count"`
	AverageScore   float64 `json:"average_score"`
	TotalScore     float64 `json:"total_score"`
	ExecutionTime  float64 `json:"execution_time_seconds"`
}

type MatchingResultResponse struct {
	Matches           []MatchItemResponse        `json:"matches"`
	UnmatchedEntities []string                   `json:"unmatched_entities"`
	TotalScore        float64                    `json:"total_score"`
	ExecutionTime     float64                    `json:"execution_time"`
	Statistics        MatchingStatisticsResponse `json:"statistics"`
	RunID             string                     `json:"run_id,omitempty"`
	CacheHit          bool                       `json:"cache_hit"`
}

func FromMatchingResult(r entity.MatchingResult, cacheHit bool) MatchingResultResponse {
	matches := make([]MatchItemResponse, 0, len(r.Matches))
	for _, m := range r.Matches {
		item := MatchItemResponse{
			EntityAID: m.EntityA,
			EntityBID: m.EntityB,
			Score:     m.Score,
			Details:   m.Details,
		}
		if !m.MatchedAt.IsZero() {
			item.MatchedAt = m.MatchedAt.UTC().Format(time.RFC3339)
		}
		matches = append(matches, item)
	}

	st := r.Statistics()
	return MatchingResultResponse{
		Matches:           matches,
		UnmatchedEntities: r.UnmatchedEntities,
		TotalScore:        r.TotalScore,
		ExecutionTime:     r.ExecutionTime.Seconds(),
		Statistics: MatchingStatisticsResponse{
			TotalMatches:   st.TotalMatches,
			UnmatchedCount: st.UnmatchedCount,
			AverageScore:   st.AverageScore,
			TotalScore:     st.TotalScore,
			ExecutionTime:  st.ExecutionTime,
		},
		CacheHit: cacheHit,
	}
}
