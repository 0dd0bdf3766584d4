package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// MatchCompletedEvent is the summary pushed to subscribers after a match run
// finishes. Only aggregates are published.
type MatchCompletedEvent struct {
	Type           string  `json:"type"`
	Algorithm      string  `json:"algorithm"`
	TotalMatches   int     `json:"total_matches"`
	UnmatchedCount int     `json:"unmatched_count"`
	TotalScore     float64 `json:"total_score"`
	Timestamp      string  `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyMatchCompleted(algorithm string, totalMatches, unmatchedCount int, totalScore float64) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := MatchCompletedEvent{
		Type:           "match_completed",
		Algorithm:      algorithm,
		TotalMatches:   totalMatches,
		UnmatchedCount: unmatchedCount,
		TotalScore:     totalScore,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
