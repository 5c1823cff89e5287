package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

func TestEncodeKey_ReferenceScenario(t *testing.T) {
	ts := time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC)

	key := EncodeKey(ts)

	// 1588327200 little-endian
	assert.Equal(t, []byte{0x20, 0xf3, 0xab, 0x5e, 0x00, 0x00, 0x00, 0x00}, key)
}

func TestEncodeKey_SentinelIsAllZero(t *testing.T) {
	assert.Equal(t, make([]byte, 8), EncodeKey(domain.SentinelTimestamp))
}

func TestEncodeKey_NegativeTimestamp(t *testing.T) {
	ts := time.Unix(-1, 0)

	key := EncodeKey(ts)

	assert.Equal(t, bytes.Repeat([]byte{0xff}, 8), key)
	back, err := DecodeKey(key)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), back.Unix())
}

func TestKey_RoundTrip(t *testing.T) {
	dates := []string{
		"2020-05-01 10:00:00",
		"1999-12-31 23:59:59",
		"2038-01-19 03:14:08",
		"2106-02-07 06:28:16",
		"9999-12-31 23:59:59",
		"1000-01-01 00:00:00",
	}

	for _, raw := range dates {
		t.Run(raw, func(t *testing.T) {
			ts, err := ParsePostDateStrict(raw)
			require.NoError(t, err)

			back, err := DecodeKey(EncodeKey(ts))
			require.NoError(t, err)
			assert.True(t, ts.Equal(back))
			assert.Equal(t, raw, back.Format(domain.PostDateLayout))
		})
	}
}

func TestKey_SubSecondPrecisionDropped(t *testing.T) {
	ts := time.Date(2020, 5, 1, 10, 0, 0, 999_999_999, time.UTC)

	back, err := DecodeKey(EncodeKey(ts))

	require.NoError(t, err)
	assert.Equal(t, ts.Truncate(time.Second), back)
}

func TestDecodeKey_WrongLength(t *testing.T) {
	for _, n := range []int{0, 4, 7, 9, 16} {
		_, err := DecodeKey(make([]byte, n))
		assert.True(t, errors.Is(err, domain.ErrInvalidKey), "length %d", n)
	}
}

// Little-endian keys do not sort chronologically under byte-wise
// comparison. This pins the behaviour so a change of encoding is deliberate.
func TestEncodeKey_ByteOrderIsNotChronological(t *testing.T) {
	earlier := EncodeKey(time.Unix(1, 0))
	later := EncodeKey(time.Unix(256, 0))

	assert.Equal(t, 1, bytes.Compare(earlier, later))
}
