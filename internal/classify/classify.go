// Package classify derives display categories from free-text status and
// priority values. The store's vocabulary is not known at build time, so
// classification is case-insensitive keyword matching with a graceful
// fallback: any string, including an empty one, maps to some category.
package classify

import (
	"strings"

	"github.com/taskvault/taskvault/internal/model"
)

// StatusKind is the semantic category behind a status string.
type StatusKind string

const (
	StatusComplete   StatusKind = "complete"
	StatusInProgress StatusKind = "in_progress"
	StatusUnknown    StatusKind = "unknown"
)

// PriorityKind is the semantic category behind a priority string.
type PriorityKind string

const (
	PriorityHigh        PriorityKind = "high"
	PriorityMedium      PriorityKind = "medium"
	PriorityLow         PriorityKind = "low"
	PriorityUnspecified PriorityKind = "unspecified"
)

// StatusClass is the render metadata for a status value.
type StatusClass struct {
	Kind  StatusKind `json:"kind"`
	Icon  string     `json:"icon"`
	Color string     `json:"color"`
}

// PriorityClass is the render metadata for a priority value.
type PriorityClass struct {
	Kind  PriorityKind `json:"kind"`
	Color string       `json:"color"`
}

// Status classifies an arbitrary status string. Keyword groups are
// checked in order and the first match wins; anything unmatched,
// including the empty string, is Unknown.
func Status(text string) StatusClass {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "complete", "done", "finish"):
		return StatusClass{Kind: StatusComplete, Icon: "check-circle", Color: "green"}
	case containsAny(lower, "progress", "doing", "active"):
		return StatusClass{Kind: StatusInProgress, Icon: "clock", Color: "yellow"}
	default:
		return StatusClass{Kind: StatusUnknown, Icon: "alert-circle", Color: "red"}
	}
}

// Priority classifies an arbitrary priority string.
func Priority(text string) PriorityClass {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "high", "urgent"):
		return PriorityClass{Kind: PriorityHigh, Color: "red"}
	case containsAny(lower, "medium", "normal"):
		return PriorityClass{Kind: PriorityMedium, Color: "yellow"}
	case containsAny(lower, "low"):
		return PriorityClass{Kind: PriorityLow, Color: "blue"}
	default:
		return PriorityClass{Kind: PriorityUnspecified, Color: "gray"}
	}
}

// StatusOptions derives the set of status values to offer in a
// change-status control: the distinct statuses across loaded tasks in
// first-seen order, or the default three when none are present.
func StatusOptions(tasks []model.Task) []string {
	var options []string
	seen := make(map[string]bool)
	for _, t := range tasks {
		if t.Status == "" || seen[t.Status] {
			continue
		}
		seen[t.Status] = true
		options = append(options, t.Status)
	}
	if len(options) == 0 {
		return append([]string(nil), model.DefaultStatusOptions...)
	}
	return options
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
