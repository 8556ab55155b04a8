package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/oilnote/submenu-popup/internal/format/table"
	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/logging/events"
	"github.com/oilnote/submenu-popup/internal/menu"
	"github.com/oilnote/submenu-popup/internal/metrics"
	"github.com/oilnote/submenu-popup/internal/ui"
	"github.com/oilnote/submenu-popup/internal/web"
	"golang.org/x/sync/errgroup"
)

// Config describes user-provided application options.
type Config struct {
	Group       string
	CurrentPath string
	MenuFile    string
	Listen      string
	ReturnGroup string
	Width       int
	Height      int
	ShowFooter  bool
	// List prints the menu instead of starting a host.
	List bool
}

// Run loads the menu and either lists it, starts the web host when Listen is
// set, or runs the terminal popup. A navigation chosen in the terminal is printed
// to out.
func Run(cfg Config, out io.Writer) error {
	registry, err := menu.Load(cfg.MenuFile)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	if err := checkReturnGroup(registry, cfg.ReturnGroup); err != nil {
		return err
	}
	if cfg.List {
		return listMenu(out, registry)
	}
	if cfg.Listen != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return Serve(ctx, registry, cfg)
	}
	return runTerminal(registry, cfg, out)
}

// Serve runs the web host until ctx is cancelled. A menu file is watched
// alongside and every valid edit is served from the next request on.
func Serve(ctx context.Context, registry *menu.Registry, cfg Config) error {
	server := web.New(registry, web.Options{
		ReturnGroup: cfg.ReturnGroup,
		Metrics:     metrics.NewPopup(),
	})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx, cfg.Listen)
	})
	if cfg.MenuFile != "" {
		g.Go(func() error {
			reload := func(r *menu.Registry) {
				if err := applyReload(server, cfg, r); err != nil {
					logging.Error(err)
				}
			}
			if err := menu.Watch(gctx, cfg.MenuFile, menu.DefaultDebounce, reload, logging.Error); err != nil {
				logging.Error(err)
			}
			return nil
		})
	}
	return g.Wait()
}

// applyReload swaps a reloaded menu into server. A menu that no longer defines
// the pinned return group is rejected and the previous one keeps serving.
func applyReload(server *web.Server, cfg Config, r *menu.Registry) error {
	if err := checkReturnGroup(r, cfg.ReturnGroup); err != nil {
		return fmt.Errorf("reload %s: %w", cfg.MenuFile, err)
	}
	server.SetRegistry(r)
	events.App.Reload(cfg.MenuFile, len(r.Groups()))
	return nil
}

func checkReturnGroup(registry *menu.Registry, group string) error {
	if group == "" {
		return nil
	}
	if _, ok := registry.Group(group); !ok {
		return fmt.Errorf("%w: return group %q is not defined", menu.ErrInvalidConfig, group)
	}
	return nil
}

func runTerminal(registry *menu.Registry, cfg Config, out io.Writer) error {
	model, err := ui.NewModel(registry, ui.Options{
		Group:       cfg.Group,
		CurrentPath: cfg.CurrentPath,
		ReturnGroup: cfg.ReturnGroup,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return printResult(out, model.Result())
}

func printResult(out io.Writer, target string) error {
	events.App.Result(target)
	if target == "" {
		return nil
	}
	_, err := fmt.Fprintln(out, target)
	return err
}

// listMenu writes one line per item: group, label, action and target. Nested
// items are indented under their parent.
func listMenu(out io.Writer, registry *menu.Registry) error {
	rows := [][]string{{"GROUP", "ITEM", "ACTION", "TARGET"}}
	for _, g := range registry.Groups() {
		for _, item := range g.Items {
			rows = append(rows, listRow(g.Key, "", item))
			for _, nested := range item.Items {
				rows = append(rows, listRow(g.Key, "  ", nested))
			}
		}
	}
	for _, line := range table.Format(rows, nil) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func listRow(group, indent string, item menu.Item) []string {
	action, target := "navigate", item.Href
	if item.Expands() {
		action, target = "expand", fmt.Sprintf("%d items", len(item.Items))
	}
	return []string{group, indent + item.Text, action, target}
}
