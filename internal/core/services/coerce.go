package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ioremap/wpmigrate/internal/core/domain"
)

var errNullValue = errors.New("unexpected NULL")

// RecordFromRow converts driver-native column values into a Record.
// Any column that cannot be coerced fails with domain.ErrRowCoercion;
// an unparseable date does not, it falls back to the sentinel.
func RecordFromRow(table string, row domain.SourceRow) (domain.Record, error) {
	id, err := asInt64(row.ID)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: ID: %w", domain.ErrRowCoercion, err)
	}

	title, err := asText(row.Title)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: post_title of %d: %w", domain.ErrRowCoercion, id, err)
	}

	rawDate, err := asDateText(row.PostDate)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: post_date of %d: %w", domain.ErrRowCoercion, id, err)
	}

	content, err := asText(row.Content)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: post_content of %d: %w", domain.ErrRowCoercion, id, err)
	}

	return domain.Record{
		ID:        id,
		Table:     table,
		RawDate:   rawDate,
		Timestamp: ParsePostDate(rawDate, title),
		Content:   content,
		Title:     title,
	}, nil
}

func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, errNullValue
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func asText(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", errNullValue
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

// asDateText keeps post_date textual even when the driver already
// parsed it, so RawDate always reflects the source layout.
func asDateText(v any) (string, error) {
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(domain.PostDateLayout), nil
	}
	return asText(v)
}
