package request

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Header names sent with every call
const (
	HeaderContentType     = "Content-Type"
	HeaderIfModifiedSince = "IF-MODIFIED-SINCE"
)

// Header is a single HTTP header line
type Header struct {
	Name  string
	Value string
}

// String formats the header as "Name: value"
func (h Header) String() string {
	return h.Name + ": " + h.Value
}

// PrepareHeaders returns the headers for a call. An empty modified adds
// nothing; otherwise it is parsed as a date and sent as IF-MODIFIED-SINCE.
//
// Accepted forms are absolute dates in the layouts of cast.ToTimeE
// ("2017-01-02 12:30:00", RFC3339, ...), a unix timestamp prefixed with @
// ("@1483360200"), the words now, today, yesterday and tomorrow, and
// offsets from now such as "+1 day" or "-2 hours" (units second, minute,
// hour, day, week). Dates without a zone are UTC.
func PrepareHeaders(modified string) ([]Header, error) {
	headers := []Header{{Name: HeaderContentType, Value: "application/json"}}

	if modified == "" {
		return headers, nil
	}

	since, err := parseModifiedSince(modified)
	if err != nil {
		return nil, &FormatError{Value: modified, Err: err}
	}

	return append(headers, Header{
		Name:  HeaderIfModifiedSince,
		Value: since.Format(time.RFC1123Z),
	}), nil
}

var offsetUnits = map[string]time.Duration{
	"sec":    time.Second,
	"second": time.Second,
	"min":    time.Minute,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
}

func parseModifiedSince(value string) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	now := time.Now().UTC()
	midnight := now.Truncate(24 * time.Hour)

	switch v {
	case "now":
		return now, nil
	case "today", "midnight":
		return midnight, nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	case "tomorrow":
		return midnight.AddDate(0, 0, 1), nil
	}

	if ts, ok := strings.CutPrefix(v, "@"); ok {
		sec, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
		}
		return time.Unix(sec, 0).UTC(), nil
	}

	if strings.HasPrefix(v, "+") || strings.HasPrefix(v, "-") {
		return parseOffset(now, v)
	}

	return cast.ToTimeE(value)
}

// parseOffset reads "+N unit" relative to now
func parseOffset(now time.Time, v string) (time.Time, error) {
	fields := strings.Fields(v)
	if len(fields) != 2 {
		return time.Time{}, fmt.Errorf("invalid offset %q", v)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid offset %q: %w", v, err)
	}

	unit, ok := offsetUnits[strings.TrimSuffix(fields[1], "s")]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown offset unit %q", fields[1])
	}

	return now.Add(time.Duration(n) * unit), nil
}
