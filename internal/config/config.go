package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/atomicstack/pman/internal/app"
	"github.com/atomicstack/pman/internal/keybind"
	"github.com/atomicstack/pman/internal/logging"
	"github.com/atomicstack/pman/internal/pathutil"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Keybind Keybind
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
	Rotation logging.Rotation
}

type Keybind struct {
	TmuxConf string
	Popup    keybind.Popup
}

const (
	envSocketPath = "PMAN_SOCKET"
	envWidth      = "PMAN_WIDTH"
	envHeight     = "PMAN_HEIGHT"
	envShowFooter = "PMAN_FOOTER"
	envTrace      = "PMAN_TRACE"
	envLogFile    = "PMAN_LOG_FILE"
	envConfig     = "PMAN_CONFIG"
	envTmuxConf   = "PMAN_TMUX_CONF"
)

// Flags holds the persistent flags registered on a flag set. Environment
// variables provide their defaults.
type Flags struct {
	socket     *string
	width      *int
	height     *int
	footer     *bool
	trace      *bool
	logFile    *string
	configPath *string
	tmuxConf   *string
}

// Register declares pman's flags on fs.
func Register(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		socket:     fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)"),
		width:      fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:     fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:     fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key help row"),
		trace:      fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:    fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		configPath: fs.String("config", envOrDefault(env, envConfig, ""), "path to the YAML config file"),
		tmuxConf:   fs.String("tmux-conf", envOrDefault(env, envTmuxConf, "~/.tmux.conf"), "tmux config edited by install and uninstall"),
	}
}

// LoadArgs parses args on a standalone flag set with the given environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("pman", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := Register(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Resolve(args)
}

// Resolve builds the configuration from parsed flag values and the YAML file
// they point at.
func (f *Flags) Resolve(args []string) (Config, error) {
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}
	path, explicit := resolveFilePath(*f.configPath)
	file, err := LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			path = ""
		} else {
			return Config{}, err
		}
	}

	cfg := Config{
		App: app.Config{
			SocketPath:    *f.socket,
			Width:         *f.width,
			Height:        *f.height,
			ShowFooter:    *f.footer,
			EditorWindow:  file.EditorWindow,
			WorktreeDir:   pathutil.ExpandUser(file.WorktreeDir),
			NvimSockets:   expandAll(file.NvimSockets),
			Prerequisites: file.Prerequisites,
		},
		Logging: Logging{
			FilePath: pathutil.ExpandUser(*f.logFile),
			Trace:    *f.trace,
			Rotation: file.Log.rotation(),
		},
		Keybind: Keybind{
			TmuxConf: pathutil.ExpandUser(*f.tmuxConf),
			Popup:    file.Popup.popup(),
		},
		File: path,
		Flags: map[string]string{
			"socket":   *f.socket,
			"width":    strconv.Itoa(*f.width),
			"height":   strconv.Itoa(*f.height),
			"footer":   strconv.FormatBool(*f.footer),
			"trace":    strconv.FormatBool(*f.trace),
			"logFile":  *f.logFile,
			"config":   *f.configPath,
			"tmuxConf": *f.tmuxConf,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

func resolveFilePath(flagValue string) (string, bool) {
	if strings.TrimSpace(flagValue) != "" {
		return pathutil.ExpandUser(flagValue), true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", "pman", "config.yaml"), false
}

func expandAll(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, pathutil.ExpandUser(p))
		}
	}
	return out
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate rejects settings that would only fail later.
func Validate(cfg Config) error {
	if strings.ContainsAny(cfg.App.EditorWindow, ":.") {
		return fmt.Errorf("editor_window %q must not contain ':' or '.'", cfg.App.EditorWindow)
	}
	for _, size := range []string{cfg.Keybind.Popup.Width, cfg.Keybind.Popup.Height, cfg.Keybind.Popup.FilesWidth, cfg.Keybind.Popup.FilesHeight} {
		if err := validateSize(size); err != nil {
			return err
		}
	}
	return nil
}

func validateSize(size string) error {
	if size == "" {
		return nil
	}
	digits := strings.TrimSuffix(size, "%")
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 || (digits != size && n > 100) {
		return fmt.Errorf("invalid popup size %q", size)
	}
	return nil
}
