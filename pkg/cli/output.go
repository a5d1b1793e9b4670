package cli

import (
	"encoding/json"
	"io"

	"github.com/stefanpenner/quest/pkg/engine"
)

const timeFormat = "2006-01-02T15:04:05Z"

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func entryToMap(e engine.Entry) map[string]interface{} {
	m := map[string]interface{}{
		"number":      e.Index + 1,
		"kind":        string(e.Kind),
		"title":       e.Title,
		"description": e.Description,
		"points":      e.Points,
		"complete":    e.Status.Complete,
		"status":      e.Status.Mark(),
	}
	if e.Status.Required > 0 {
		m["done"] = e.Status.Done
		m["required"] = e.Status.Required
	}
	return m
}

func entriesToMap(entries []engine.Entry) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		result = append(result, entryToMap(e))
	}
	return result
}

func resultToMap(r engine.Result) map[string]interface{} {
	m := map[string]interface{}{
		"awarded":  r.Awarded,
		"score":    r.Score,
		"level":    r.Level,
		"level_up": r.LevelUp,
	}
	if r.Badge != "" {
		m["badge"] = r.Badge
	}
	return m
}
