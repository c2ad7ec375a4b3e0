package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PairIndex returns a deterministic puzzle index for a date using
// HMAC(salt, YYYY-MM-DD) % pairCount. Every player gets the same
// start/target pair on a given day.
func PairIndex(date time.Time, salt string, pairCount int) int {
	if pairCount <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(pairCount))
}
