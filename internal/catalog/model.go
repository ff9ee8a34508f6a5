package catalog

// Product is the canonical record every feed entry is coerced into.
// Timestamps stay RFC3339 strings, the feed's native shape.
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Images      []string  `json:"images"`
	CreationAt  string    `json:"creationAt"`
	UpdatedAt   string    `json:"updatedAt"`
	IsDeleted   bool      `json:"isDeleted"`
	Comments    []Comment `json:"comments"`
}

// Category is embedded in every product; derived category lists are
// deduplicated by (ID, Name).
type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Image      string `json:"image"`
	CreationAt string `json:"creationAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Comment ids follow the "c<n>" format and are unique per product only.
type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
}

// Stats aggregates the catalog. Average/min/max cover strictly-positive
// prices only; TotalValue covers every price.
type Stats struct {
	TotalProducts   int     `json:"total_products"`
	TotalCategories int     `json:"total_categories"`
	AveragePrice    float64 `json:"average_price"`
	MinPrice        float64 `json:"min_price"`
	MaxPrice        float64 `json:"max_price"`
	TotalValue      float64 `json:"total_value"`
}

// Clone returns a deep copy safe to hand outside the store's lock.
func (p *Product) Clone() Product {
	out := *p
	out.Images = append([]string(nil), p.Images...)
	out.Comments = append([]Comment(nil), p.Comments...)
	return out
}
