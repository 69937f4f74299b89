package models

// ItemType discriminates the four hierarchy variants carried by Item.
type ItemType string

const (
	ItemCompany    ItemType = "company"
	ItemDepartment ItemType = "department"
	ItemFolder     ItemType = "folder"
	ItemDocument   ItemType = "document"
)

// ExplorerItem is implemented by every hierarchy entity that navigation and
// search can surface. Callers switch on ItemKind instead of sniffing a type
// string at each site.
type ExplorerItem interface {
	ItemKind() ItemType
	ItemID() int64
	ItemName() string
	ItemDescription() string
}

func (c *Company) ItemKind() ItemType      { return ItemCompany }
func (c *Company) ItemID() int64           { return c.ID }
func (c *Company) ItemName() string        { return c.Name }
func (c *Company) ItemDescription() string { return c.Description }

func (d *Department) ItemKind() ItemType      { return ItemDepartment }
func (d *Department) ItemID() int64           { return d.ID }
func (d *Department) ItemName() string        { return d.Name }
func (d *Department) ItemDescription() string { return d.Description }

func (f *Folder) ItemKind() ItemType      { return ItemFolder }
func (f *Folder) ItemID() int64           { return f.ID }
func (f *Folder) ItemName() string        { return f.Name }
func (f *Folder) ItemDescription() string { return f.Description }

func (d *Document) ItemKind() ItemType      { return ItemDocument }
func (d *Document) ItemID() int64           { return d.ID }
func (d *Document) ItemName() string        { return d.Name }
func (d *Document) ItemDescription() string { return d.Description }

// Item is the uniform, type-tagged representation of any hierarchy entity
// returned by navigation and search.
type Item struct {
	Type        ItemType `json:"type"`
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Path        string   `json:"path"`
	Icon        string   `json:"icon"`

	// Location is the human-readable ancestor breadcrumb, populated by
	// search results only.
	Location string `json:"location,omitempty"`

	// Aggregate counts over active children; which ones apply depends on
	// the item type.
	DepartmentCount *int `json:"department_count,omitempty"`
	SubfolderCount  *int `json:"subfolder_count,omitempty"`
	DocumentCount   *int `json:"document_count,omitempty"`
}
