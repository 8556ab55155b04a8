package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oilnote/submenu-popup/internal/app"
	"github.com/oilnote/submenu-popup/internal/config"
	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/logging/events"
	"github.com/oilnote/submenu-popup/internal/menu"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("no terminal attached; use -listen to serve the web shell instead")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := collectTTYDetails()
	events.App.Start(startupTracePayload(runtimeCfg, tty))

	if runtimeCfg.App.Listen == "" && !runtimeCfg.App.List && tty.Detected == nil {
		fail(errNoTerminal)
	}
	if err := app.Run(runtimeCfg.App, os.Stdout); err != nil {
		fail(err)
	}
}

func fail(err error) {
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitCode(err))
}

// exitCode maps invalid menu configuration to the same status as flag errors.
func exitCode(err error) int {
	if errors.Is(err, menu.ErrInvalidConfig) {
		return 2
	}
	return 1
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	mode := "terminal"
	switch {
	case cfg.App.List:
		mode = "list"
	case cfg.App.Listen != "":
		mode = "web"
	}
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"mode":   mode,
		"tty":    tty,
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes the descriptors Bubble Tea may draw on. The first
// one with a readable size is recorded as detected.
func collectTTYDetails() ttyDetails {
	probes := []*os.File{os.Stdin, os.Stderr, os.Stdout}
	names := []string{"stdin", "stderr", "stdout"}
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(probes))}
	for i, f := range probes {
		entry := ttyProbeResult{Name: names[i]}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			entry.IsTerminal = true
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				entry.Error = err.Error()
			case details.Detected == nil:
				details.Detected = &ttyDetected{Source: entry.Name, Width: width, Height: height}
				fallthrough
			default:
				entry.Width, entry.Height = width, height
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}
