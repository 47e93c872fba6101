package models

// DocumentItem is one entry in a category checklist. Uploaded records
// reference it by id, not by name.
type DocumentItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

type DocumentCategory struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Documents []DocumentItem `json:"documents"`
}

// DocumentConfig is a named template of categories and document items.
// Revision is bumped on every update and checked against the caller's
// copy so two admins cannot silently overwrite each other.
type DocumentConfig struct {
	ID          string             `json:"_id,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Categories  []DocumentCategory `json:"categories"`
	Revision    int                `json:"revision"`
	CreatedBy   string             `json:"createdBy,omitempty"`
	CreatedAt   string             `json:"createdAt"`
	UpdatedAt   string             `json:"updatedAt"`
}

// Category returns the category with the given id, or nil.
func (c *DocumentConfig) Category(id string) *DocumentCategory {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// Item returns the item within a category, or nil when either is missing.
func (c *DocumentConfig) Item(categoryID, itemID string) *DocumentItem {
	cat := c.Category(categoryID)
	if cat == nil {
		return nil
	}
	for i := range cat.Documents {
		if cat.Documents[i].ID == itemID {
			return &cat.Documents[i]
		}
	}
	return nil
}
