package api

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"saglikhep/pkg/domain"
)

// queryValues serializes the defined filters into query parameters.
// A key absent from the filter set produces no parameter at all;
// present false/0/"" values are real filter values and are kept.
// sentinels maps a key to the value the owning resource treats as
// "no filter" (the panel's category pickers use "all"); matching
// entries are omitted like unset keys.
func queryValues(f domain.Filters, sentinels map[string]string) url.Values {
	values := url.Values{}
	for key, raw := range f {
		if raw == nil {
			continue
		}
		encoded := encodeValue(raw)
		if sentinel, ok := sentinels[key]; ok && encoded == sentinel {
			continue
		}
		values.Set(key, encoded)
	}
	return values
}

func encodeValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
