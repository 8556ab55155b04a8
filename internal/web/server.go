package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oilnote/submenu-popup/internal/dom"
	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/logging/events"
	"github.com/oilnote/submenu-popup/internal/menu"
	"github.com/oilnote/submenu-popup/internal/metrics"
	"github.com/oilnote/submenu-popup/internal/popup"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

//go:embed assets/shell.html
var shellHTML string

const shutdownTimeout = 5 * time.Second

// Options configures the web host.
type Options struct {
	// ReturnGroup pins the back control to a fixed group; empty returns to the
	// group that was open.
	ReturnGroup string
	Metrics     *metrics.Popup
	Debug       bool
}

// Server renders the back-office shell with the submenu popup applied
// server-side. Every request builds its own document and controller against
// the registry current at that moment.
type Server struct {
	registry atomic.Pointer[menu.Registry]
	opts     Options
	engine   *gin.Engine
}

// New builds the gin engine and registers all routes.
func New(registry *menu.Registry, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewPopup()
	}
	s := &Server{opts: opts}
	s.registry.Store(registry)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestTracer())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	router.GET("/api/menu", s.handleMenu)
	router.GET("/", s.handleShell)
	router.GET("/shortcut/:name", s.handleShortcut)
	router.GET("/popup/:group", s.handleGroup)
	router.GET("/popup/:group/:index", s.handleSelect)

	s.engine = router
	return s
}

// SetRegistry replaces the menu served by subsequent requests.
func (s *Server) SetRegistry(registry *menu.Registry) {
	s.registry.Store(registry)
}

// Registry returns the menu currently served.
func (s *Server) Registry() *menu.Registry {
	return s.registry.Load()
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	events.App.Serve(listener.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) handleMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"groups":    s.Registry().Groups(),
		"shortcuts": s.Registry().Shortcuts(),
	})
}

func (s *Server) handleShell(c *gin.Context) {
	s.render(c, "", func(*popup.Controller) error { return nil })
}

func (s *Server) handleShortcut(c *gin.Context) {
	name := c.Param("name")
	sc, _ := s.Registry().Shortcut(name)
	s.render(c, sc.Group, func(ctrl *popup.Controller) error {
		if err := ctrl.OpenShortcut(name); err != nil {
			return err
		}
		s.opts.Metrics.Opens.Increment(ctrl.GroupKey())
		return nil
	})
}

func (s *Server) handleGroup(c *gin.Context) {
	key := c.Param("group")
	s.render(c, key, func(ctrl *popup.Controller) error {
		if err := ctrl.OpenGroup(key, ""); err != nil {
			return err
		}
		s.opts.Metrics.Opens.Increment(key)
		return nil
	})
}

// handleSelect replays a row click on a freshly opened group. Navigation rows
// redirect to their target; expand rows render the nested view.
func (s *Server) handleSelect(c *gin.Context) {
	key := c.Param("group")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid row index %q", c.Param("index"))
		return
	}
	var target string
	s.render(c, key, func(ctrl *popup.Controller) error {
		if err := ctrl.OpenGroup(key, ""); err != nil {
			return err
		}
		out, err := ctrl.Select(index)
		if err != nil {
			return err
		}
		switch out.Action {
		case popup.ActionDrill:
			s.opts.Metrics.Drills.Increment(key)
		case popup.ActionNavigate:
			s.opts.Metrics.Navigations.Increment(key)
			target = out.Target
		}
		return nil
	}, func() bool {
		if target == "" {
			return false
		}
		c.Redirect(http.StatusFound, target)
		return true
	})
}

// render builds a document, applies op through a controller and writes the
// page. An intercept returning true means the response was already written.
func (s *Server) render(c *gin.Context, key string, op func(*popup.Controller) error, intercept ...func() bool) {
	current := c.Query("path")
	doc, err := dom.ParseString(shellHTML)
	if err != nil {
		logging.Error(err)
		c.String(http.StatusInternalServerError, "layout unavailable")
		return
	}
	backKey := key
	if s.opts.ReturnGroup != "" {
		backKey = s.opts.ReturnGroup
	}
	panel := dom.NewPanel(doc, dom.Links{
		Drill: func(row popup.Row) string {
			return withPath(fmt.Sprintf("/popup/%s/%d", url.PathEscape(key), row.Index), current)
		},
		Back:  withPath("/popup/"+url.PathEscape(backKey), current),
		Close: withPath("/", current),
	})
	registry := s.Registry()
	s.renderMenuBar(doc, registry, current)

	opts := []popup.Option{popup.WithCurrentPath(current)}
	if s.opts.ReturnGroup != "" {
		opts = append(opts, popup.WithReturnGroup(s.opts.ReturnGroup))
	}
	ctrl := popup.New(registry, panel, opts...)
	if err := op(ctrl); err != nil {
		c.String(statusFor(err), "%s", err.Error())
		return
	}
	for _, fn := range intercept {
		if fn() {
			return
		}
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := doc.Render(c.Writer); err != nil {
		logging.Error(fmt.Errorf("render page: %w", err))
	}
}

func (s *Server) renderMenuBar(doc *dom.Document, registry *menu.Registry, current string) {
	bar := doc.ByID("menuBar")
	if bar == nil {
		return
	}
	shortcuts := registry.Shortcuts()
	links := make([]*html.Node, 0, len(shortcuts))
	for _, sc := range shortcuts {
		a := dom.Element("a",
			"href", withPath("/shortcut/"+url.PathEscape(sc.Name), current),
			"class", "menu-bar-item",
			"data-group", sc.Group,
		)
		links = append(links, dom.Append(a, dom.Text(sc.Title)))
	}
	dom.ReplaceChildren(bar, links...)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, popup.ErrUnknownGroup), errors.Is(err, popup.ErrNoRow):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func withPath(base, current string) string {
	if current == "" {
		return base
	}
	return base + "?" + url.Values{"path": []string{current}}.Encode()
}

func requestTracer() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		c.Next()
		status := c.Writer.Status()
		events.Web.Request(c.Request.Method, path, status, time.Since(start))
		if status >= http.StatusInternalServerError {
			logging.Errorf("%s %s: status %d", c.Request.Method, path, status)
		}
	}
}
