package graph

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// NodeProps extracts the property map from a value returned by record.Get.
func NodeProps(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case neo4j.Node:
		return v.Props, true
	case map[string]any:
		return v, true
	default:
		return nil, false
	}
}

func StringProp(props map[string]any, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

func StringPtrProp(props map[string]any, key string) *string {
	if s, ok := props[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

// TimeProp reads a temporal property in UTC. The driver hands back time.Time
// for Cypher datetimes; string fallback covers properties written as ISO text.
func TimeProp(props map[string]any, key string) time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func StringSliceProp(props map[string]any, key string) []string {
	raw, ok := props[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func Int64Value(value any) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func StringValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}
