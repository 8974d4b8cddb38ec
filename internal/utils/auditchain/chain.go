package auditchain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/finledger/fincore/internal/core/domain"
)

// GenesisHash is the fixed previous-hash marker for the first entry of a
// company's chain.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

const timeFormat = time.RFC3339Nano

// ComputeHash produces the hex-encoded SHA-256 hash over the canonical
// serialization of an entry's chained fields. The serialization is a fixed
// field order joined with '|'; timestamps are normalized to UTC so the hash is
// independent of server timezone.
func ComputeHash(e domain.AuditLogEntry) string {
	payload := strings.Join([]string{
		e.CompanyID,
		e.ActorID,
		e.TargetType,
		e.TargetID,
		e.Action,
		e.BeforeValue,
		e.AfterValue,
		e.PreviousHash,
		e.OccurredAt.UTC().Format(timeFormat),
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Verify walks entries in sequence order, recomputing each hash and checking
// linkage to the predecessor. The first mismatch taints every following entry:
// once a link is broken, nothing after it can be trusted.
func Verify(entries []domain.AuditLogEntry) domain.ChainVerification {
	result := domain.ChainVerification{
		IsValid:      true,
		TotalEntries: len(entries),
	}

	prevHash := GenesisHash
	tainted := false
	for _, e := range entries {
		ok := !tainted && e.PreviousHash == prevHash && ComputeHash(e) == e.CurrentHash
		if !ok {
			result.IsValid = false
			result.InvalidSequences = append(result.InvalidSequences, e.Sequence)
			tainted = true
		}
		prevHash = e.CurrentHash
	}
	return result
}
