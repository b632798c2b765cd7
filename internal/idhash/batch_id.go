package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/mr-tron/base58"

	"github.com/Jafanakings/RFM-SEGMENTATION/internal/domain"
)

// ComputeBatchID computes a deterministic fingerprint of a normalized batch
// using SHA256. Per-line hashes are sorted before the final digest, so the
// fingerprint is independent of input order: the same dataset always produces
// the same ID regardless of how the collaborator delivered the rows.
// Returns hex-encoded hash (64 characters).
func ComputeBatchID(lines []domain.OrderLine) string {
	lineHashes := make([]string, len(lines))
	for i, l := range lines {
		data := fmt.Sprintf("%s|%s|%s|%.6f|%d",
			l.CustomerID,
			l.OrderID,
			l.OrderDate.Format("2006-01-02"),
			l.SalesAmount,
			l.Quantity,
		)
		h := sha256.Sum256([]byte(data))
		lineHashes[i] = hex.EncodeToString(h[:])
	}
	sort.Strings(lineHashes)

	final := sha256.New()
	for _, h := range lineHashes {
		final.Write([]byte(h))
	}
	return hex.EncodeToString(final.Sum(nil))
}

// ShortForm condenses a hex batch ID into a base58 tag for report headers
// and file names. Uses the first 8 bytes of the digest.
func ShortForm(batchID string) string {
	raw, err := hex.DecodeString(batchID)
	if err != nil || len(raw) < 8 {
		return batchID
	}
	return base58.Encode(raw[:8])
}
