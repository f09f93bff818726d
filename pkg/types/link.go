// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Link is a labeled URL attached to a record in addition to its primary link.
type Link struct {
	URL   string   `json:"url" yaml:"url"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Rel   []string `json:"rel,omitempty" yaml:"rel,omitempty"`
	// Type is a MIME type hint, e.g. "application/pdf".
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// Author is a structured author name. Engines that only have a single name
// string set Display.
type Author struct {
	First   string `json:"first,omitempty" yaml:"first,omitempty"`
	Last    string `json:"last,omitempty" yaml:"last,omitempty"`
	Middle  string `json:"middle,omitempty" yaml:"middle,omitempty"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
}

// Name returns Display when set, otherwise "Last, First Middle".
func (a Author) Name() string {
	if a.Display != "" {
		return a.Display
	}
	given := strings.TrimSpace(a.First + " " + a.Middle)
	switch {
	case a.Last == "":
		return given
	case given == "":
		return a.Last
	default:
		return a.Last + ", " + given
	}
}
