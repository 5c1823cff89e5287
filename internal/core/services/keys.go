package services

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

// EncodeKey returns the store key for ts: Unix seconds as a
// little-endian two's-complement int64.
func EncodeKey(ts time.Time) []byte {
	key := make([]byte, domain.KeySize)
	binary.LittleEndian.PutUint64(key, uint64(ts.Unix()))
	return key
}

// DecodeKey is the inverse of EncodeKey. The result is in UTC.
func DecodeKey(key []byte) (time.Time, error) {
	if len(key) != domain.KeySize {
		return time.Time{}, fmt.Errorf("%w: got %d bytes, want %d", domain.ErrInvalidKey, len(key), domain.KeySize)
	}
	secs := int64(binary.LittleEndian.Uint64(key))
	return time.Unix(secs, 0).UTC(), nil
}
