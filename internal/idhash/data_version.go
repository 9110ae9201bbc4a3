package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"credit-score-lab/internal/domain"
)

// DataVersionLength is the number of hex characters kept from the digest.
const DataVersionLength = 12

// ComputeRecordDigest computes a deterministic digest of one scored record.
// Formula: SHA256(customer_id|credit_score|category)
// Returns hex-encoded hash (64 characters).
func ComputeRecordDigest(r domain.ScoredRecord) string {
	hash := sha256.Sum256([]byte(recordKey(r)))
	return hex.EncodeToString(hash[:])
}

// ComputeDataVersion fingerprints a scored batch independent of input order.
// Formula: SHA256 over the sorted customer_id|credit_score|category lines joined by "\n".
// Returns the first DataVersionLength hex characters.
func ComputeDataVersion(records []domain.ScoredRecord) string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = recordKey(r)
	}
	sort.Strings(keys)

	hash := sha256.Sum256([]byte(strings.Join(keys, "\n")))
	return hex.EncodeToString(hash[:])[:DataVersionLength]
}

func recordKey(r domain.ScoredRecord) string {
	return fmt.Sprintf("%s|%d|%s", r.Customer.CustomerID, r.CreditScore, r.Category)
}
