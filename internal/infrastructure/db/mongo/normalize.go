package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimestampLayout is the storage encoding for every timestamp. It is fixed
// width and always UTC, so lexical order equals chronological order and range
// filters can compare strings.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// TimestampFields are the document fields converted back to time values on read.
var TimestampFields = []string{"created_at", "updated_at", "start_date", "end_date", "due_date"}

// Layouts accepted when reading. Older documents may carry naive ISO strings
// or bare dates.
var readLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

// TimestampResult is the outcome of parsing a stored timestamp string. When
// Parsed is false, Time is zero and Raw holds the original value.
type TimestampResult struct {
	Time   time.Time
	Raw    string
	Parsed bool
}

// FormatTimestamp encodes t in the storage layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp decodes a stored timestamp string. It never fails; an
// unrecognised value comes back with Parsed set to false.
func ParseTimestamp(s string) TimestampResult {
	for _, layout := range readLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TimestampResult{Time: t.UTC(), Raw: s, Parsed: true}
		}
	}
	return TimestampResult{Raw: s}
}

// ToStorage returns a copy of v with every time value replaced by its storage
// string. Maps, documents and arrays are walked recursively. A nil *time.Time
// becomes nil and other values are returned unchanged.
func ToStorage(v any) any {
	switch t := v.(type) {
	case time.Time:
		return FormatTimestamp(t)
	case *time.Time:
		if t == nil {
			return nil
		}
		return FormatTimestamp(*t)
	case bson.M:
		out := make(bson.M, len(t))
		for k, val := range t {
			out[k] = ToStorage(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = ToStorage(val)
		}
		return out
	case bson.D:
		out := make(bson.D, len(t))
		for i, e := range t {
			out[i] = bson.E{Key: e.Key, Value: ToStorage(e.Value)}
		}
		return out
	case bson.A:
		out := make(bson.A, len(t))
		for i, val := range t {
			out[i] = ToStorage(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = ToStorage(val)
		}
		return out
	case []bson.M:
		out := make([]bson.M, len(t))
		for i, val := range t {
			out[i] = ToStorage(val).(bson.M)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, val := range t {
			out[i] = ToStorage(val).(map[string]any)
		}
		return out
	default:
		return v
	}
}

// storageDoc is ToStorage for a top-level document.
func storageDoc(doc bson.M) bson.M {
	return ToStorage(doc).(bson.M)
}

// FromStorage returns a copy of doc with the string values of TimestampFields
// converted to time.Time. Values that do not parse are kept as the raw string
// and reported in the returned map keyed by field; the map is nil when every
// field parsed.
func FromStorage(doc bson.M) (bson.M, map[string]string) {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	var unparsed map[string]string
	for _, field := range TimestampFields {
		s, ok := out[field].(string)
		if !ok {
			continue
		}
		res := ParseTimestamp(s)
		if !res.Parsed {
			if unparsed == nil {
				unparsed = make(map[string]string)
			}
			unparsed[field] = res.Raw
			continue
		}
		out[field] = res.Time
	}
	return out, unparsed
}

// ── typed getters over normalized documents ──────────────────────────────────

func getString(doc bson.M, key string) string {
	s, _ := doc[key].(string)
	return s
}

func getStringPtr(doc bson.M, key string) *string {
	s, ok := doc[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func getBool(doc bson.M, key string, fallback bool) bool {
	b, ok := doc[key].(bool)
	if !ok {
		return fallback
	}
	return b
}

func getFloatPtr(doc bson.M, key string) *float64 {
	var f float64
	switch n := doc[key].(type) {
	case float64:
		f = n
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	default:
		return nil
	}
	return &f
}

func getStrings(doc bson.M, key string) []string {
	out := []string{}
	var items []any
	switch a := doc[key].(type) {
	case bson.A:
		items = a
	case []any:
		items = a
	case []string:
		return append(out, a...)
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getTime(doc bson.M, key string) time.Time {
	if t := getTimePtr(doc, key); t != nil {
		return *t
	}
	return time.Time{}
}

func getTimePtr(doc bson.M, key string) *time.Time {
	var t time.Time
	switch v := doc[key].(type) {
	case time.Time:
		t = v.UTC()
	case primitive.DateTime:
		t = v.Time().UTC()
	default:
		return nil
	}
	return &t
}
