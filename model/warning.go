package model

import (
	"fmt"
	"strings"
)

// Warning stages
const (
	StagePage     = "page"
	StageMetadata = "metadata"
)

// Warning describes a problem that did not stop extraction.
type Warning struct {
	Page    int    `json:"page,omitempty"` // 0 for document-level warnings
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s %d: %s", w.Stage, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single line.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
