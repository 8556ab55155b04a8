package menu

// Expand is the navigation target of an item that opens its nested items
// instead of leaving the page.
const Expand = "#"

// Group keys of the built-in back-office configuration.
const (
	GroupBasicData          = "basic-data"
	GroupCustomerManagement = "customer-management"
	GroupPriceManagement    = "price-management"
)

// Item represents a single row of a menu group.
type Item struct {
	Text  string `yaml:"text" json:"text"`
	Icon  string `yaml:"icon" json:"icon"`
	Href  string `yaml:"href" json:"href"`
	Items []Item `yaml:"items,omitempty" json:"items,omitempty"`
}

// Expands reports whether selecting the item reveals nested items rather than
// navigating.
func (i Item) Expands() bool {
	return i.Href == Expand
}

// Group is a titled, ordered collection of top-level items.
type Group struct {
	Key   string `yaml:"key" json:"key"`
	Title string `yaml:"title" json:"title"`
	Items []Item `yaml:"items" json:"items"`
}

// Shortcut binds a menu-bar entry point to a group.
type Shortcut struct {
	Name  string `yaml:"name" json:"name"`
	Group string `yaml:"group" json:"group"`
	Title string `yaml:"title" json:"title"`
}

// CloneItems produces a deep copy of the provided items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	dup := make([]Item, len(items))
	for i, item := range items {
		dup[i] = item
		dup[i].Items = CloneItems(item.Items)
	}
	return dup
}
