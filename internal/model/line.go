// Package model defines the dialogue line types shared by the parser, sinks, and store.
package model

import "time"

// SpeakerKey is the attribute key naming a line's speaker.
const SpeakerKey = "ACTOR"

// Line is one dialogue line from a record file.
type Line struct {
	ID   string            `json:"id"`
	Text string            `json:"text"`
	Meta map[string]string `json:"meta"`
}

// Speaker returns the ACTOR attribute, or "" when absent.
func (l Line) Speaker() string {
	return l.Meta[SpeakerKey]
}

// Exportable reports whether the line has both a speaker and text.
func (l Line) Exportable() bool {
	return l.Speaker() != "" && l.Text != ""
}

// StoredLine is a line persisted in the line store.
type StoredLine struct {
	ID        string            `json:"id"`
	RunID     string            `json:"run_id"`
	Region    string            `json:"region"`
	Package   string            `json:"package"`
	LineID    string            `json:"line_id"`
	Speaker   string            `json:"speaker"`
	Text      string            `json:"text"`
	Meta      map[string]string `json:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
