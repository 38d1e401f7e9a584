package services

import "time"

// TraceEntry records one attempted resolution strategy. The resolution engine
// runs as a stateless per-request handler, so the ordered entry list is the
// only correlation operators get for the fallback cascade.
type TraceEntry struct {
	Timestamp string         `json:"timestamp"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
}

type ResolutionTrace struct {
	entries []TraceEntry
	now     func() time.Time
}

func NewResolutionTrace() *ResolutionTrace {
	return &ResolutionTrace{now: time.Now}
}

func (t *ResolutionTrace) Append(action string, details map[string]any) {
	t.entries = append(t.entries, TraceEntry{
		Timestamp: t.now().UTC().Format(time.RFC3339Nano),
		Action:    action,
		Details:   details,
	})
}

func (t *ResolutionTrace) Entries() []TraceEntry {
	if t == nil {
		return nil
	}
	return t.entries
}
