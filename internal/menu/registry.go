package menu

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig marks every configuration problem reported by Validate.
var ErrInvalidConfig = errors.New("invalid menu configuration")

// Registry exposes lookup utilities over a validated, immutable menu tree.
type Registry struct {
	groups    map[string]Group
	order     []string
	shortcuts map[string]Shortcut
	bar       []string
}

// NewRegistry validates the supplied groups and shortcuts and builds a registry.
func NewRegistry(groups []Group, shortcuts []Shortcut) (*Registry, error) {
	if err := Validate(groups, shortcuts); err != nil {
		return nil, err
	}
	r := &Registry{
		groups:    make(map[string]Group, len(groups)),
		order:     make([]string, 0, len(groups)),
		shortcuts: make(map[string]Shortcut, len(shortcuts)),
		bar:       make([]string, 0, len(shortcuts)),
	}
	for _, g := range groups {
		g.Items = CloneItems(g.Items)
		r.groups[g.Key] = g
		r.order = append(r.order, g.Key)
	}
	for _, s := range shortcuts {
		r.shortcuts[s.Name] = s
		r.bar = append(r.bar, s.Name)
	}
	return r, nil
}

// Default returns the registry for the built-in back-office menu.
func Default() *Registry {
	r, err := NewRegistry(DefaultGroups(), DefaultShortcuts())
	if err != nil {
		panic(fmt.Sprintf("built-in menu: %v", err))
	}
	return r
}

// Group looks up a group by key. The returned items are a private copy.
func (r *Registry) Group(key string) (Group, bool) {
	g, ok := r.groups[key]
	if !ok {
		return Group{}, false
	}
	g.Items = CloneItems(g.Items)
	return g, true
}

// Groups returns every group in configuration order.
func (r *Registry) Groups() []Group {
	out := make([]Group, 0, len(r.order))
	for _, key := range r.order {
		g, _ := r.Group(key)
		out = append(out, g)
	}
	return out
}

// Shortcut resolves a menu-bar entry point by name.
func (r *Registry) Shortcut(name string) (Shortcut, bool) {
	s, ok := r.shortcuts[name]
	return s, ok
}

// Shortcuts returns the menu-bar entry points in display order.
func (r *Registry) Shortcuts() []Shortcut {
	out := make([]Shortcut, 0, len(r.bar))
	for _, name := range r.bar {
		out = append(out, r.shortcuts[name])
	}
	return out
}

// Validate checks the structural invariants of a menu tree: unique non-empty
// group keys, the expand target paired with a non-empty nested list, a single
// nesting level, and shortcuts that resolve to configured groups. All problems
// are reported together.
func Validate(groups []Group, shortcuts []Shortcut) error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	seen := make(map[string]struct{}, len(groups))
	for gi, g := range groups {
		key := strings.TrimSpace(g.Key)
		if key == "" {
			fail("group %d has an empty key", gi)
			continue
		}
		if _, dup := seen[key]; dup {
			fail("group %q is defined more than once", key)
		}
		seen[key] = struct{}{}
		for ii, item := range g.Items {
			path := fmt.Sprintf("%s[%d]", key, ii)
			validateItem(path, item, fail)
			for ni, nested := range item.Items {
				npath := fmt.Sprintf("%s.items[%d]", path, ni)
				if len(nested.Items) > 0 {
					fail("%s (%q) nests deeper than one level", npath, nested.Text)
					continue
				}
				validateItem(npath, nested, fail)
			}
		}
	}

	names := make(map[string]struct{}, len(shortcuts))
	for _, s := range shortcuts {
		if strings.TrimSpace(s.Name) == "" {
			fail("shortcut for group %q has an empty name", s.Group)
		} else if _, dup := names[s.Name]; dup {
			fail("shortcut %q is defined more than once", s.Name)
		}
		names[s.Name] = struct{}{}
		if _, ok := seen[s.Group]; !ok {
			fail("shortcut %q refers to unknown group %q", s.Name, s.Group)
		}
	}
	return errors.Join(errs...)
}

func validateItem(path string, item Item, fail func(string, ...interface{})) {
	switch {
	case item.Expands() && len(item.Items) == 0:
		fail("%s (%q) expands but has no nested items", path, item.Text)
	case !item.Expands() && len(item.Items) > 0:
		fail("%s (%q) has nested items but navigates to %q", path, item.Text, item.Href)
	}
}
