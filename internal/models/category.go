package models

// UncategorizedName is shown for products whose category id is empty or no
// longer resolves.
const UncategorizedName = "Uncategorized"

type Category struct {
	ID      string `json:"id"`
	Name    string `json:"nome"`
	OwnerID string `json:"userId"`
}

// CategoryName resolves id against categories.
func CategoryName(categories []Category, id string) string {
	if id == "" {
		return UncategorizedName
	}
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return UncategorizedName
}
