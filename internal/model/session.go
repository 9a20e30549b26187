// Package model holds the candidate types shown in pman's lists.
package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Session is a tmux session as listed by the session manager.
type Session struct {
	Name     string
	Attached bool
	Path     string
	Windows  int
	Created  time.Time
}

func (s Session) DisplayText() string {
	marker := "○"
	if s.Attached {
		marker = "●"
	}
	if base := baseName(s.Path); base != "" {
		return marker + " " + s.Name + " (" + base + ")"
	}
	return marker + " " + s.Name
}

func (s Session) SearchText() string {
	return strings.TrimSpace(s.Name + " " + s.Path)
}

func baseName(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}
