package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/pman/internal/keybind"
	"github.com/atomicstack/pman/internal/logging"
)

// File is the optional YAML config.
type File struct {
	EditorWindow  string      `yaml:"editor_window"`
	WorktreeDir   string      `yaml:"worktree_dir"`
	NvimSockets   []string    `yaml:"nvim_sockets"`
	Prerequisites []string    `yaml:"prerequisites"`
	Popup         PopupFile   `yaml:"popup"`
	Log           LogRotation `yaml:"log"`
}

type PopupFile struct {
	Width       string `yaml:"width"`
	Height      string `yaml:"height"`
	FilesWidth  string `yaml:"files_width"`
	FilesHeight string `yaml:"files_height"`
}

type LogRotation struct {
	MaxSizeMB  *int  `yaml:"max_size_mb"`
	MaxBackups *int  `yaml:"max_backups"`
	MaxAgeDays *int  `yaml:"max_age_days"`
	Compress   *bool `yaml:"compress"`
}

// LoadFile reads and parses a YAML config file. An empty path yields the
// zero File.
func LoadFile(path string) (File, error) {
	if strings.TrimSpace(path) == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing config file: %w", err)
	}
	return f, nil
}

func (p PopupFile) popup() keybind.Popup {
	return keybind.Popup{
		Width:       strings.TrimSpace(p.Width),
		Height:      strings.TrimSpace(p.Height),
		FilesWidth:  strings.TrimSpace(p.FilesWidth),
		FilesHeight: strings.TrimSpace(p.FilesHeight),
	}
}

func (l LogRotation) rotation() logging.Rotation {
	r := logging.DefaultRotation()
	if l.MaxSizeMB != nil {
		r.MaxSizeMB = *l.MaxSizeMB
	}
	if l.MaxBackups != nil {
		r.MaxBackups = *l.MaxBackups
	}
	if l.MaxAgeDays != nil {
		r.MaxAgeDays = *l.MaxAgeDays
	}
	if l.Compress != nil {
		r.Compress = *l.Compress
	}
	return r
}
