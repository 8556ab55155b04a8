package popup

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/menu"
	"pgregory.net/rapid"
)

type recordingPanel struct {
	missing   bool
	title     TitleBar
	rows      []Row
	open      bool
	mutations int
}

func (p *recordingPanel) Check() error {
	if p.missing {
		return fmt.Errorf("%w: submenuContent", ErrMissingAnchor)
	}
	return nil
}

func (p *recordingPanel) SetTitle(t TitleBar) { p.title = t; p.mutations++ }
func (p *recordingPanel) SetRows(r []Row)     { p.rows = r; p.mutations++ }
func (p *recordingPanel) SetOpen(open bool)   { p.open = open; p.mutations++ }

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	m.Run()
}

func labels(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}
	return out
}

func TestOpenPriceManagementHighlightsCurrentPage(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel, WithCurrentPath("/stations-manage/discount-price/"))
	if err := c.OpenGroup(menu.GroupPriceManagement, "단가관리"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(panel.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(panel.rows))
	}
	if panel.rows[0].Text != "기준 단가 입력" || panel.rows[1].Text != "할인 단가 설정" {
		t.Fatalf("unexpected order %v", labels(panel.rows))
	}
	if panel.rows[0].Active || !panel.rows[1].Active {
		t.Fatalf("expected only second row active, got %v/%v", panel.rows[0].Active, panel.rows[1].Active)
	}
	if !panel.open {
		t.Fatalf("expected popup open")
	}
	if panel.title.Text != "단가관리" || !panel.title.Close || panel.title.Back {
		t.Fatalf("unexpected title %#v", panel.title)
	}
	if c.State() != StateTop || c.GroupKey() != menu.GroupPriceManagement {
		t.Fatalf("unexpected state %s/%s", c.State(), c.GroupKey())
	}
}

func TestSelectExpandRowDrillsIntoNestedItems(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	if err := c.OpenBasicData(); err != nil {
		t.Fatalf("open: %v", err)
	}
	idx := -1
	for i, r := range panel.rows {
		if r.Text == "기초 자료(값) 등록" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("expand row not rendered: %v", labels(panel.rows))
	}
	out, err := c.Select(idx)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.Action != ActionDrill || out.Target != "" {
		t.Fatalf("unexpected outcome %#v", out)
	}
	want := []string{"탱크 기초재고", "주유기 기초 계기자료", "유외상품 기초재고", "외상채권 기초잔액"}
	got := labels(panel.rows)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if !panel.title.Back || panel.title.Close || panel.title.Text != "기초 자료(값) 등록" {
		t.Fatalf("unexpected nested title %#v", panel.title)
	}
	if c.State() != StateNested || c.Title() != "기초 자료(값) 등록" {
		t.Fatalf("unexpected state %s title %q", c.State(), c.Title())
	}
}

func TestOpenCustomerManagementRendersCustomerRows(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel, WithCurrentPath("/stations-manage/customer-registration/"))
	if err := c.OpenCustomerManagement(); err != nil {
		t.Fatalf("open: %v", err)
	}
	want := []string{"거래처 등록 및 수정", "차량 / 외상카드 등록"}
	if fmt.Sprint(labels(panel.rows)) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, labels(panel.rows))
	}
	if !panel.rows[0].Active || panel.rows[1].Active {
		t.Fatalf("expected only the customer registration row active")
	}
	if panel.title.Text != "거래처관리" || c.GroupKey() != menu.GroupCustomerManagement {
		t.Fatalf("unexpected title %q group %q", panel.title.Text, c.GroupKey())
	}
}

func TestSelectNavigateClosesPopup(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	if err := c.OpenPriceManagement(); err != nil {
		t.Fatal(err)
	}
	out, err := c.Select(0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if out.Action != ActionNavigate || out.Target != "/stations-manage/standard-price/" {
		t.Fatalf("unexpected outcome %#v", out)
	}
	if panel.open || c.State() != StateClosed {
		t.Fatalf("expected popup closed after navigation")
	}
	if _, err := c.Select(0); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	c := New(menu.Default(), &recordingPanel{})
	_ = c.OpenPriceManagement()
	if _, err := c.Select(5); !errors.Is(err, ErrNoRow) {
		t.Fatalf("expected ErrNoRow, got %v", err)
	}
	if _, err := c.Select(-1); !errors.Is(err, ErrNoRow) {
		t.Fatalf("expected ErrNoRow, got %v", err)
	}
}

func TestNestedExpandRowIsInert(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	_ = c.OpenBasicData()
	nested := []menu.Item{{Text: "더 깊이", Href: menu.Expand, Items: []menu.Item{{Text: "x", Href: "/x/"}}}}
	if err := c.DrillIntoSubmenu(nested, "parent"); err != nil {
		t.Fatal(err)
	}
	if panel.rows[0].Action != ActionInert {
		t.Fatalf("expected inert row at nested depth, got %s", panel.rows[0].Action)
	}
	before := panel.mutations
	out, err := c.Select(0)
	if err != nil || out.Action != ActionInert {
		t.Fatalf("unexpected %#v %v", out, err)
	}
	if panel.mutations != before || c.State() != StateNested {
		t.Fatalf("inert selection mutated the panel")
	}
}

func TestReturnToTopLevelRestoresOpenGroup(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	_ = c.OpenPriceManagement()
	if err := c.DrillIntoSubmenu([]menu.Item{{Text: "a", Href: "/a/"}}, "parent"); err != nil {
		t.Fatal(err)
	}
	if err := c.ReturnToTopLevel(); err != nil {
		t.Fatal(err)
	}
	if c.GroupKey() != menu.GroupPriceManagement || c.State() != StateTop {
		t.Fatalf("expected price group restored, got %s/%s", c.GroupKey(), c.State())
	}
	if len(panel.rows) != 2 || panel.title.Text != "단가관리" || !panel.title.Close {
		t.Fatalf("unexpected restored view %#v %v", panel.title, labels(panel.rows))
	}
}

func TestReturnGroupOptionAlwaysRestoresBasicData(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel, WithReturnGroup(menu.GroupBasicData))
	_ = c.OpenCustomerManagement()
	if err := c.DrillIntoSubmenu([]menu.Item{{Text: "a", Href: "/a/"}}, "parent"); err != nil {
		t.Fatal(err)
	}
	if err := c.ReturnToTopLevel(); err != nil {
		t.Fatal(err)
	}
	basic, _ := menu.Default().Group(menu.GroupBasicData)
	if fmt.Sprint(labels(panel.rows)) != fmt.Sprint(labels(buildRows(basic.Items, 0, ""))) {
		t.Fatalf("expected basic-data rows, got %v", labels(panel.rows))
	}
	if panel.title.Text != "기초자료" || c.GroupKey() != menu.GroupBasicData {
		t.Fatalf("unexpected title %q group %q", panel.title.Text, c.GroupKey())
	}
}

func TestMissingAnchorsPerformNoMutation(t *testing.T) {
	panel := &recordingPanel{missing: true}
	c := New(menu.Default(), panel)
	for name, op := range map[string]func() error{
		"open":  c.OpenBasicData,
		"close": c.ClosePopup,
		"back":  c.ReturnToTopLevel,
		"drill": func() error { return c.DrillIntoSubmenu(nil, "x") },
	} {
		if err := op(); !errors.Is(err, ErrMissingAnchor) {
			t.Fatalf("%s: expected ErrMissingAnchor, got %v", name, err)
		}
	}
	if panel.mutations != 0 {
		t.Fatalf("expected no mutation, got %d", panel.mutations)
	}
	if c.State() != StateClosed {
		t.Fatalf("expected closed state")
	}
}

func TestNilPanelReportsMissingAnchor(t *testing.T) {
	c := New(menu.Default(), nil)
	if err := c.OpenBasicData(); !errors.Is(err, ErrMissingAnchor) {
		t.Fatalf("expected ErrMissingAnchor, got %v", err)
	}
}

func TestUnknownGroupIsReported(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	if err := c.OpenGroup("nope", ""); !errors.Is(err, ErrUnknownGroup) {
		t.Fatalf("expected ErrUnknownGroup, got %v", err)
	}
	if err := c.OpenShortcut("nope"); !errors.Is(err, ErrUnknownGroup) {
		t.Fatalf("expected ErrUnknownGroup, got %v", err)
	}
	if panel.mutations != 0 {
		t.Fatalf("unknown group mutated panel")
	}
}

func TestClosePopupIsIdempotent(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	_ = c.OpenBasicData()
	if err := c.ClosePopup(); err != nil {
		t.Fatal(err)
	}
	titleOnce, rowsOnce, openOnce := panel.title, len(panel.rows), panel.open
	if err := c.ClosePopup(); err != nil {
		t.Fatal(err)
	}
	if panel.title != titleOnce || len(panel.rows) != rowsOnce || panel.open != openOnce || c.State() != StateClosed {
		t.Fatalf("second close changed observable state")
	}
	if err := c.ReturnToTopLevel(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from back on closed popup, got %v", err)
	}
}

func TestEmptyTitleFallsBackToGroupTitle(t *testing.T) {
	panel := &recordingPanel{}
	c := New(menu.Default(), panel)
	if err := c.OpenGroup(menu.GroupCustomerManagement, ""); err != nil {
		t.Fatal(err)
	}
	if panel.title.Text != "거래처관리" {
		t.Fatalf("expected configured title, got %q", panel.title.Text)
	}
}

func itemGen() *rapid.Generator[menu.Item] {
	return rapid.Custom(func(t *rapid.T) menu.Item {
		return menu.Item{
			Text: rapid.StringMatching(`[a-z가-힣 ]{0,12}`).Draw(t, "text"),
			Icon: rapid.SampledFrom([]string{"", "fas fa-box", "fas fa-car"}).Draw(t, "icon"),
			Href: rapid.StringMatching(`/[a-z]{1,6}/`).Draw(t, "href"),
		}
	})
}

func TestRowsFollowConfigurationOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(itemGen(), 0, 12).Draw(t, "items")
		groups := []menu.Group{{Key: "g", Title: "G", Items: items}}
		registry, err := menu.NewRegistry(groups, nil)
		if err != nil {
			t.Fatalf("registry: %v", err)
		}
		current := "/none/"
		if len(items) > 0 {
			current = items[rapid.IntRange(0, len(items)-1).Draw(t, "current")].Href
		}
		panel := &recordingPanel{}
		c := New(registry, panel, WithCurrentPath(current))
		if err := c.OpenGroup("g", ""); err != nil {
			t.Fatalf("open: %v", err)
		}
		if len(panel.rows) != len(items) {
			t.Fatalf("expected %d rows, got %d", len(items), len(panel.rows))
		}
		for i, row := range panel.rows {
			if row.Index != i || row.Text != items[i].Text || row.Href != items[i].Href || row.Icon != items[i].Icon {
				t.Fatalf("row %d does not mirror item %#v: %#v", i, items[i], row)
			}
			if row.Active != (items[i].Href == current) {
				t.Fatalf("row %d active=%v for href %q current %q", i, row.Active, row.Href, current)
			}
		}
	})
}

func TestDefaultGroupsRenderOneRowPerItem(t *testing.T) {
	registry := menu.Default()
	for _, g := range registry.Groups() {
		panel := &recordingPanel{}
		c := New(registry, panel)
		if err := c.OpenGroup(g.Key, g.Title); err != nil {
			t.Fatalf("%s: %v", g.Key, err)
		}
		if len(panel.rows) != len(g.Items) {
			t.Fatalf("%s: expected %d rows, got %d", g.Key, len(g.Items), len(panel.rows))
		}
		for i, item := range g.Items {
			if panel.rows[i].Text != item.Text {
				t.Fatalf("%s: row %d = %q, want %q", g.Key, i, panel.rows[i].Text, item.Text)
			}
		}
	}
}

func TestCloseTwiceEqualsCloseOnceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		registry := menu.Default()
		shortcuts := registry.Shortcuts()
		pick := rapid.SampledFrom(shortcuts).Draw(t, "shortcut")
		once, twice := &recordingPanel{}, &recordingPanel{}
		a, b := New(registry, once), New(registry, twice)
		_ = a.OpenShortcut(pick.Name)
		_ = b.OpenShortcut(pick.Name)
		_ = a.ClosePopup()
		_ = b.ClosePopup()
		_ = b.ClosePopup()
		if once.open != twice.open || once.title != twice.title || len(once.rows) != len(twice.rows) || a.State() != b.State() {
			t.Fatalf("double close diverged from single close")
		}
	})
}
