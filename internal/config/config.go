package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oilnote/submenu-popup/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envGroup       = "SUBMENU_POPUP_GROUP"
	envPath        = "SUBMENU_POPUP_PATH"
	envMenuFile    = "SUBMENU_POPUP_MENU_FILE"
	envListen      = "SUBMENU_POPUP_LISTEN"
	envReturnGroup = "SUBMENU_POPUP_RETURN_GROUP"
	envWidth       = "SUBMENU_POPUP_WIDTH"
	envHeight      = "SUBMENU_POPUP_HEIGHT"
	envShowFooter  = "SUBMENU_POPUP_FOOTER"
	envTrace       = "SUBMENU_POPUP_TRACE"
	envLogFile     = "SUBMENU_POPUP_LOG_FILE"
	envList        = "SUBMENU_POPUP_LIST"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("submenu-popup", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	group := fs.String("group", envOrDefault(env, envGroup, ""), "menu group opened at start (empty opens the first menu-bar shortcut)")
	path := fs.String("path", envOrDefault(env, envPath, ""), "current page path used to highlight the active row")
	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "YAML menu definition (empty uses the built-in menu)")
	listen := fs.String("listen", envOrDefault(env, envListen, ""), "serve the web shell on this address instead of the terminal popup")
	returnGroup := fs.String("return-group", envOrDefault(env, envReturnGroup, ""), "group the back control always returns to (empty returns to the open group)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	list := fs.Bool("list", envOrBool(env, envList, false), "print the menu as a table and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			Group:       strings.TrimSpace(*group),
			CurrentPath: *path,
			MenuFile:    *menuFile,
			Listen:      *listen,
			ReturnGroup: strings.TrimSpace(*returnGroup),
			Width:       *width,
			Height:      *height,
			ShowFooter:  *footer,
			List:        *list,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"group":       *group,
			"path":        *path,
			"menuFile":    *menuFile,
			"listen":      *listen,
			"returnGroup": *returnGroup,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
			"list":        strconv.FormatBool(*list),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
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
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
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
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate reports every cross-field problem in cfg.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.CurrentPath != "" && !strings.HasPrefix(cfg.App.CurrentPath, "/") {
		errs = append(errs, fmt.Errorf("path must be absolute (got %q)", cfg.App.CurrentPath))
	}
	if cfg.App.List && cfg.App.Listen != "" {
		errs = append(errs, errors.New("list and listen cannot be combined"))
	}
	if cfg.App.Listen != "" && !strings.Contains(cfg.App.Listen, ":") {
		errs = append(errs, fmt.Errorf("listen address must be host:port (got %q)", cfg.App.Listen))
	}
	return errors.Join(errs...)
}
