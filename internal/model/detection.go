package model

import "time"

// DetectionMetadata describes how a detection pass went.
type DetectionMetadata struct {
	DetectionTimeMs int64    `yaml:"detection_time_ms" json:"detection_time_ms"`
	ElementCount    int      `yaml:"element_count"     json:"element_count"`
	Method          string   `yaml:"method"            json:"method"`
	Warnings        []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// DetectionResult is an immutable snapshot of one detection pass.
// A new detection fully replaces the prior result for a session;
// results are never patched incrementally.
type DetectionResult struct {
	SessionID      string            `yaml:"session_id"            json:"session_id"`
	ScreenshotPath string            `yaml:"screenshot,omitempty"  json:"screenshot,omitempty"`
	Elements       DetectedElements  `yaml:"elements"              json:"elements"`
	Metadata       DetectionMetadata `yaml:"metadata"              json:"metadata"`
}

// WaitResult is the outcome of a wait-until-present poll.
// Found is false on deadline exhaustion; waiting never raises an error
// for a plain timeout.
type WaitResult struct {
	Found   bool             `yaml:"found"             json:"found"`
	Element *DetectedElement `yaml:"element,omitempty" json:"element,omitempty"`
	Point   Point            `yaml:"point"             json:"point"`
	Elapsed time.Duration    `yaml:"-"                 json:"-"`
}
