package firestore

import (
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/arkanhakim/livecart/pkg/money"
)

func getStr(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func getTime(doc *firestore.DocumentSnapshot, data map[string]any, key string) time.Time {
	if v, ok := data[key].(time.Time); ok && !v.IsZero() {
		return v.UTC()
	}
	if !doc.CreateTime.IsZero() {
		return doc.CreateTime.UTC()
	}
	return time.Time{}
}

// getAmount accepts both string-encoded and numeric price fields.
func getAmount(data map[string]any, key string) money.Amount {
	switch v := data[key].(type) {
	case string:
		if a, err := money.FromString(v); err == nil {
			return a
		}
	case float64:
		return money.FromFloat(v)
	case int64:
		return money.FromInt(v)
	}
	return money.Zero()
}

func getStrSlice(data map[string]any, key string) []string {
	raw, ok := data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
