package normalize

import (
	"fmt"
	"math"
	"time"
)

// Timestamp layouts seen across export revisions.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeMessage maps a raw decoded message object onto the canonical
// Message shape, consulting the alias tables in priority order.
//
// A valid timestamp is shifted by offset before storing; an unparseable
// one is stored as nil, never an error. Attachments tolerate scalar,
// absent, or array values.
func NormalizeMessage(raw map[string]interface{}, offset time.Duration) *Message {
	msg := &Message{
		Contents:    "",
		Attachments: normalizeAttachments(rawAttachmentValue(raw)),
	}

	if id, ok := firstValue(raw, messageIDAliases); ok {
		msg.ID = scalarString(id)
	}
	if contents, ok := firstString(raw, contentsAliases); ok {
		msg.Contents = contents
	}
	if tsRaw, ok := firstValue(raw, timestampAliases); ok {
		if ts, ok := parseTimestamp(tsRaw); ok {
			shifted := ts.Add(offset)
			msg.Timestamp = &shifted
		}
	}

	return msg
}

// parseTimestamp accepts the timestamp shapes the export has been seen to
// use: RFC3339-ish strings, plain date-time strings, and numeric epoch
// values (milliseconds when large enough to be plausible, else seconds).
func parseTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
			return time.Time{}, false
		}
		// Epoch milliseconds from roughly 2001 onward; smaller values
		// are epoch seconds.
		if t > 1e12 {
			return time.UnixMilli(int64(t)).UTC(), true
		}
		return time.Unix(int64(t), 0).UTC(), true
	default:
		return time.Time{}, false
	}
}

func rawAttachmentValue(raw map[string]interface{}) interface{} {
	v, _ := firstValue(raw, attachmentAliases)
	return v
}

// normalizeAttachments coerces a scalar, absent, or array value into a
// list without ever panicking on shape mismatch.
func normalizeAttachments(v interface{}) []Attachment {
	switch t := v.(type) {
	case nil:
		return []Attachment{}
	case string:
		if t == "" {
			return []Attachment{}
		}
		return []Attachment{{URL: t}}
	case []interface{}:
		out := make([]Attachment, 0, len(t))
		for _, item := range t {
			switch a := item.(type) {
			case string:
				out = append(out, Attachment{URL: a})
			case map[string]interface{}:
				att := Attachment{}
				if url, ok := firstString(a, []string{"url", "URL", "proxy_url", "href"}); ok {
					att.URL = url
				}
				if name, ok := firstString(a, []string{"filename", "name", "title"}); ok {
					att.Name = name
				}
				out = append(out, att)
			}
		}
		return out
	case map[string]interface{}:
		att := Attachment{}
		if url, ok := firstString(t, []string{"url", "URL", "proxy_url", "href"}); ok {
			att.URL = url
		}
		if name, ok := firstString(t, []string{"filename", "name", "title"}); ok {
			att.Name = name
		}
		return []Attachment{att}
	default:
		return []Attachment{}
	}
}

// scalarString renders a scalar JSON value as a string; non-scalars come
// back empty.
func scalarString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}
