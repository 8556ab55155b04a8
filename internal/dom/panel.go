package dom

import (
	"fmt"
	"strconv"

	"github.com/oilnote/submenu-popup/internal/popup"
	"golang.org/x/net/html"
)

// Anchor ids and marker classes of the back-office layout.
const (
	IDPopup   = "submenuPopup"
	IDTitle   = "submenuTitle"
	IDContent = "submenuContent"
	IDMain    = "mainContent"
	IDClose   = "submenuCloseBtn"

	// ClassOpen marks the visible popup; ClassMainOpen shifts the main
	// content aside while it is shown.
	ClassOpen     = "show"
	ClassMainOpen = "submenu-open"
	ClassItem     = "submenu-popup-link"
	ClassText     = "menu-text"
	ClassActive   = "active"
	ClassClose    = "submenu-close-btn"
	ClassBack     = "submenu-back"
)

// Links supplies hrefs for controls that are not plain navigation in a
// server-rendered page.
type Links struct {
	// Drill returns the href of an expand row; nil keeps the row's own target.
	Drill func(row popup.Row) string
	// Back is the href of the back control.
	Back string
	// Close is the href of the close control.
	Close string
}

// Panel renders popup state into a Document's anchor elements.
type Panel struct {
	doc   *Document
	links Links
}

// NewPanel binds a panel to doc. Anchors are resolved on every call so a
// document edited between operations is always seen as it is.
func NewPanel(doc *Document, links Links) *Panel {
	return &Panel{doc: doc, links: links}
}

// Check implements popup.Panel.
func (p *Panel) Check() error {
	for _, id := range []string{IDPopup, IDTitle, IDContent, IDMain} {
		if p.doc.ByID(id) == nil {
			return fmt.Errorf("%w: #%s", popup.ErrMissingAnchor, id)
		}
	}
	return nil
}

// SetTitle implements popup.Panel.
func (p *Panel) SetTitle(t popup.TitleBar) {
	title := p.doc.ByID(IDTitle)
	children := make([]*html.Node, 0, 3)
	if t.Back {
		back := Element("a", "href", linkOr(p.links.Back, "#"), "class", ClassBack, "aria-label", "back")
		children = append(children, Append(back, Element("i", "class", "fas fa-arrow-left me-2")))
	}
	children = append(children, Append(Element("span"), Text(t.Text)))
	ReplaceChildren(title, children...)

	if t.Close {
		closeBtn := Element("a", "id", IDClose, "href", linkOr(p.links.Close, "#"), "class", ClassClose, "aria-label", "close")
		Append(title, Append(closeBtn, Element("i", "class", "fas fa-times")))
	}
}

// SetRows implements popup.Panel.
func (p *Panel) SetRows(rows []popup.Row) {
	content := p.doc.ByID(IDContent)
	nodes := make([]*html.Node, 0, len(rows))
	for _, row := range rows {
		nodes = append(nodes, p.rowNode(row))
	}
	ReplaceChildren(content, nodes...)
}

// SetOpen implements popup.Panel.
func (p *Panel) SetOpen(open bool) {
	pop, main := p.doc.ByID(IDPopup), p.doc.ByID(IDMain)
	if open {
		AddClass(pop, ClassOpen)
		AddClass(main, ClassMainOpen)
		return
	}
	RemoveClass(pop, ClassOpen)
	RemoveClass(main, ClassMainOpen)
}

func (p *Panel) rowNode(row popup.Row) *html.Node {
	class := ClassItem
	if row.Active {
		class += " " + ClassActive
	}
	href := row.Href
	if row.Action == popup.ActionDrill && p.links.Drill != nil {
		href = p.links.Drill(row)
	}
	a := Element("a",
		"href", href,
		"class", class,
		"data-index", strconv.Itoa(row.Index),
		"data-action", row.Action.String(),
	)
	return Append(a,
		Element("i", "class", row.Icon),
		Append(Element("span", "class", ClassText), Text(row.Text)),
	)
}

func linkOr(href, fallback string) string {
	if href == "" {
		return fallback
	}
	return href
}
