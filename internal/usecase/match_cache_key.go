package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"entity-match/internal/domain/entity"
)

type matchCacheKeyInput struct {
	EntitiesA []entity.Entity `json:"entities_a"`
	EntitiesB []entity.Entity `json:"entities_b"`
	Criteria  entity.Criteria `json:"criteria"`
	Algorithm string          `json:"algorithm"`
}

// matchResultCacheKey hashes the fully-resolved call. Both matchers are
// deterministic pure functions of exactly these inputs, which is what makes
// the cached result safe to replay. Map keys are sorted by encoding/json, so
// equal requests hash equally regardless of construction order.
func matchResultCacheKey(entitiesA, entitiesB []entity.Entity, criteria entity.Criteria, algorithm string) string {
	in := matchCacheKeyInput{
		EntitiesA: entitiesA,
		EntitiesB: entitiesB,
		Criteria:  criteria,
		Algorithm: strings.ToLower(strings.TrimSpace(algorithm)),
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "match:result:" + hex.EncodeToString(sum[:])
}
