package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
)

// EmitEvent writes a single-line JSON progress event to w, matching the
// reference CLI's print(json.dumps({...})) convention (one event object
// per line, "event" naming the event kind).
func EmitEvent(w io.Writer, event string, fields map[string]any) error {
	payload := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["event"] = event

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cliutil: marshaling event %s: %w", event, err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
