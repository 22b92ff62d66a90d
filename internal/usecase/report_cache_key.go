package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"placement-pro/internal/domain/skillgap"
)

const ReportKeyPrefix = "skillgap:report:"

type reportKeyParts struct {
	Threshold int    `json:"t"`
	MaxRecs   int    `json:"m"`
	Vector    []int  `json:"v"`
	Role      string `json:"r"`
	Nearest   bool   `json:"n"`
	Level     string `json:"l"`
}

// ReportCacheKey depends only on what the scorer sees: its options, the
// resolved vector, the folded role name, the match flag and the effective
// level. Requests that differ in unknown skills or spelling share a key;
// scorers configured differently never do.
func ReportCacheKey(fingerprint string, opts skillgap.Options, vector []int, role string, nearest bool, level string) string {
	b, _ := json.Marshal(reportKeyParts{
		Threshold: opts.HighPriorityThreshold,
		MaxRecs:   opts.MaxRecommendations,
		Vector:    vector,
		Role:      skillgap.NormalizeName(role),
		Nearest:   nearest,
		Level:     level,
	})
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write(b)
	return ReportKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
