package main

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/oilnote/submenu-popup/internal/app"
	"github.com/oilnote/submenu-popup/internal/config"
	"github.com/oilnote/submenu-popup/internal/menu"
)

func TestCollectTTYDetailsProbesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	expected := []string{"stdin", "stderr", "stdout"}
	if len(info.Probes) != len(expected) {
		t.Fatalf("expected %d probe entries, got %d", len(expected), len(info.Probes))
	}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
	if info.Detected != nil && !info.Probes[0].IsTerminal && !info.Probes[1].IsTerminal && !info.Probes[2].IsTerminal {
		t.Fatalf("detected a terminal without any terminal probe")
	}
}

func TestStartupTracePayloadIncludesFlagsAndMode(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Group:  "price-management",
			Listen: ":8080",
			Width:  80,
		},
		Logging: config.Logging{FilePath: "trace.log", Trace: true},
		Flags: map[string]string{
			"group":  "price-management",
			"listen": ":8080",
			"width":  "80",
		},
		Args: []string{"-listen", ":8080"},
	}
	tty := ttyDetails{Detected: &ttyDetected{Source: "stdin", Width: 80, Height: 24}}

	payload := startupTracePayload(cfg, tty)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["group"] != "price-management" || flags["width"] != "80" {
		t.Fatalf("unexpected flags %v", flags)
	}
	if payload["mode"] != "web" {
		t.Fatalf("expected web mode, got %v", payload["mode"])
	}
	if got, ok := payload["tty"].(ttyDetails); !ok || got.Detected.Source != "stdin" {
		t.Fatalf("expected tty details in payload")
	}
	if got, ok := payload["config"].(config.Config); !ok || got.App != cfg.App {
		t.Fatalf("expected config in payload")
	}
}

func TestExitCode(t *testing.T) {
	if got := exitCode(fmt.Errorf("load menu: %w", menu.ErrInvalidConfig)); got != 2 {
		t.Fatalf("expected 2 for invalid menu config, got %d", got)
	}
	if got := exitCode(errors.New("boom")); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

// Within each parenthesised import group the paths must be sorted, as gofmt
// leaves them.
func TestImportGroupsAreSorted(t *testing.T) {
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != "." && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".") || d.Name() == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		prevLine, prevPath := 0, ""
		for _, spec := range file.Imports {
			line := fset.Position(spec.Pos()).Line
			importPath, _ := strconv.Unquote(spec.Path.Value)
			if line == prevLine+1 && importPath < prevPath {
				t.Errorf("%s:%d: %q is not sorted after %q", path, line, importPath, prevPath)
			}
			prevLine, prevPath = line, importPath
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
