package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain/post"
)

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x), true
	case fmt.Stringer:
		return strings.TrimSpace(x.String()), true
	case int, int32, int64, uint, uint32, uint64, float32, float64:
		return fmt.Sprint(x), true
	default:
		return "", false
	}
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return int(x), true
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if ferr != nil {
				return 0, false
			}
			return floatToInt(f)
		}
		return n, true
	default:
		return 0, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		s := strings.ToLower(strings.TrimSpace(x))
		switch s {
		case "yes", "y", "on":
			return true, true
		case "no", "n", "off", "":
			return false, true
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, false
		}
		return b, true
	default:
		if n, ok := asInt(v); ok {
			return n != 0, true
		}
		return false, false
	}
}

// asDate reformats a date-like value to post.DateLayout. Unusable values yield post.NoDate.
func asDate(v any) string {
	switch x := v.(type) {
	case time.Time:
		return post.FormatDate(x)
	case *time.Time:
		if x == nil {
			return post.NoDate
		}
		return post.FormatDate(*x)
	case string:
		t, err := post.ParseDate(x)
		if err != nil {
			return post.NoDate
		}
		return post.FormatDate(t)
	case int, int64, float64:
		sec, ok := asInt(x)
		if !ok || sec <= 0 {
			return post.NoDate
		}
		return post.FormatDate(time.Unix(int64(sec), 0).UTC())
	default:
		return post.NoDate
	}
}
