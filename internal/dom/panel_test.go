package dom

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/oilnote/submenu-popup/internal/logging"
	"github.com/oilnote/submenu-popup/internal/menu"
	"github.com/oilnote/submenu-popup/internal/popup"
	"github.com/oilnote/submenu-popup/internal/testutil"
	"golang.org/x/net/html"
)

const layout = `<!DOCTYPE html><html><body>
<nav id="menuBar"></nav>
<div id="submenuPopup" class="submenu-popup">
  <div id="submenuTitle"></div>
  <div id="submenuContent"><p>stale</p></div>
</div>
<main id="mainContent" class="main-content"></main>
</body></html>`

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	m.Run()
}

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := ParseString(markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func items(doc *Document) []*html.Node {
	return FindAll(doc.ByID(IDContent), func(n *html.Node) bool {
		return n.Type == html.ElementNode && HasClass(n, ClassItem)
	})
}

func TestClassListEditing(t *testing.T) {
	n := Element("div", "class", "a  b")
	AddClass(n, "c")
	AddClass(n, "a")
	if got := Attr(n, "class"); got != "a b c" {
		t.Fatalf("unexpected class list %q", got)
	}
	RemoveClass(n, "b")
	RemoveClass(n, "missing")
	if got := Attr(n, "class"); got != "a c" {
		t.Fatalf("unexpected class list %q", got)
	}
}

func TestPanelRendersRowsAndMarkers(t *testing.T) {
	doc := mustParse(t, layout)
	c := popup.New(menu.Default(), NewPanel(doc, Links{}), popup.WithCurrentPath("/stations-manage/discount-price/"))
	if err := c.OpenPriceManagement(); err != nil {
		t.Fatalf("open: %v", err)
	}
	rows := items(doc)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %s", len(rows), doc.String())
	}
	if HasClass(rows[0], ClassActive) || !HasClass(rows[1], ClassActive) {
		t.Fatalf("expected only second row active")
	}
	if got := Attr(rows[1], "href"); got != "/stations-manage/discount-price/" {
		t.Fatalf("unexpected href %q", got)
	}
	if !strings.Contains(RenderNode(rows[0]), `<i class="fas fa-dollar-sign">`) {
		t.Fatalf("icon not rendered: %s", RenderNode(rows[0]))
	}
	if strings.Contains(doc.String(), "stale") {
		t.Fatalf("previous content was not cleared")
	}
	if !HasClass(doc.ByID(IDPopup), ClassOpen) || !HasClass(doc.ByID(IDMain), ClassMainOpen) {
		t.Fatalf("open markers missing")
	}
	if doc.ByID(IDClose) == nil || !strings.Contains(TextContent(doc.ByID(IDTitle)), "단가관리") {
		t.Fatalf("title not rendered: %s", RenderNode(doc.ByID(IDTitle)))
	}

	if err := c.ClosePopup(); err != nil {
		t.Fatal(err)
	}
	if err := c.ClosePopup(); err != nil {
		t.Fatal(err)
	}
	if HasClass(doc.ByID(IDPopup), ClassOpen) || HasClass(doc.ByID(IDMain), ClassMainOpen) {
		t.Fatalf("close markers not removed")
	}
	if got := Attr(doc.ByID(IDPopup), "class"); got != "submenu-popup" {
		t.Fatalf("unexpected popup class after double close %q", got)
	}
	if got := Attr(doc.ByID(IDMain), "class"); got != "main-content" {
		t.Fatalf("unexpected main content class after close %q", got)
	}
}

func TestPanelUsesBackOfficeClassNames(t *testing.T) {
	doc := mustParse(t, layout)
	c := popup.New(menu.Default(), NewPanel(doc, Links{}))
	if err := c.OpenCustomerManagement(); err != nil {
		t.Fatalf("open: %v", err)
	}
	rows := items(doc)
	if len(rows) != 2 {
		t.Fatalf("expected 2 customer rows, got %d", len(rows))
	}
	if got := Attr(rows[0], "class"); got != "submenu-popup-link" {
		t.Fatalf("unexpected row class %q", got)
	}
	spans := FindAll(rows[0], func(n *html.Node) bool { return n.Data == "span" && HasClass(n, "menu-text") })
	if len(spans) != 1 || TextContent(spans[0]) != "거래처 등록 및 수정" {
		t.Fatalf("label span missing: %s", RenderNode(rows[0]))
	}
	closeBtn := doc.ByID("submenuCloseBtn")
	if closeBtn == nil || !HasClass(closeBtn, "submenu-close-btn") {
		t.Fatalf("close control missing: %s", RenderNode(doc.ByID(IDTitle)))
	}
	if got := Attr(doc.ByID(IDMain), "class"); got != "main-content submenu-open" {
		t.Fatalf("unexpected main content class %q", got)
	}
}

func TestPanelRenderMatchesGolden(t *testing.T) {
	doc := mustParse(t, layout)
	c := popup.New(menu.Default(), NewPanel(doc, Links{}), popup.WithCurrentPath("/stations-manage/discount-price/"))
	if err := c.OpenPriceManagement(); err != nil {
		t.Fatalf("open: %v", err)
	}
	testutil.AssertGolden(t, "dom_price_management.golden", RenderNode(doc.ByID(IDPopup)))
}

func TestPanelDrillUsesLinks(t *testing.T) {
	doc := mustParse(t, layout)
	links := Links{
		Drill: func(row popup.Row) string { return "/popup/basic-data/" + strconv.Itoa(row.Index) },
		Back:  "/popup/basic-data",
	}
	c := popup.New(menu.Default(), NewPanel(doc, links))
	if err := c.OpenBasicData(); err != nil {
		t.Fatal(err)
	}
	var drill *html.Node
	for _, n := range items(doc) {
		if Attr(n, "data-action") == "drill" {
			drill = n
		}
	}
	if drill == nil || Attr(drill, "href") != "/popup/basic-data/6" {
		t.Fatalf("expand row not linked: %s", RenderNode(drill))
	}

	if _, err := c.Select(6); err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, n := range items(doc) {
		labels = append(labels, TextContent(n))
	}
	want := "탱크 기초재고|주유기 기초 계기자료|유외상품 기초재고|외상채권 기초잔액"
	if strings.Join(labels, "|") != want {
		t.Fatalf("unexpected nested rows %v", labels)
	}
	title := doc.ByID(IDTitle)
	back := FindAll(title, func(n *html.Node) bool { return HasClass(n, ClassBack) })
	if len(back) != 1 || Attr(back[0], "href") != "/popup/basic-data" {
		t.Fatalf("back control missing: %s", RenderNode(title))
	}
	if !strings.Contains(TextContent(title), "기초 자료(값) 등록") || doc.ByID(IDClose) != nil {
		t.Fatalf("unexpected nested title %s", RenderNode(title))
	}
}

func TestPanelMissingAnchorLeavesDocumentUntouched(t *testing.T) {
	markup := `<html><body><div id="submenuPopup"><div id="submenuTitle">old</div></div><main id="mainContent"></main></body></html>`
	doc := mustParse(t, markup)
	before := doc.String()
	c := popup.New(menu.Default(), NewPanel(doc, Links{}))
	err := c.OpenBasicData()
	if !errors.Is(err, popup.ErrMissingAnchor) || !strings.Contains(err.Error(), IDContent) {
		t.Fatalf("expected missing content anchor, got %v", err)
	}
	if doc.String() != before {
		t.Fatalf("document mutated despite missing anchor")
	}
}

func TestTextIsEscaped(t *testing.T) {
	n := Append(Element("span"), Text(`<script>alert(1)</script>`))
	if out := RenderNode(n); strings.Contains(out, "<script>") {
		t.Fatalf("text not escaped: %s", out)
	}
}
