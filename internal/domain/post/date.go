package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/wwwqqqzzz/blog-sub000/internal/domain"
)

// DateLayout is the canonical display format of Post.Date.
const DateLayout = "2006-01-02"

// NoDate is the sentinel stored when an entry has no usable date.
const NoDate = ""

// acceptedLayouts are tried in order by ParseDate.
var acceptedLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05 -0700",
	"2006/01/02",
	"2006/01/02 15:04",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDate interprets an ISO-like date string. Returns domain.ErrInvalidDate on failure.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == NoDate {
		return time.Time{}, fmt.Errorf("empty date: %w", domain.ErrInvalidDate)
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", s, domain.ErrInvalidDate)
}

// FormatDate renders t in DateLayout, or NoDate for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NoDate
	}
	return t.Format(DateLayout)
}

// DaysBetween returns the absolute number of whole days between a and b.
func DaysBetween(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
