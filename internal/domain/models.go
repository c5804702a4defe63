package domain

// Category mirrors one row of the Categories table. All values are stored as
// strings by the row store; no numeric fields exist on this resource.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Product is the normalized read shape of a Products row: delimited columns
// split into slices, numeric columns parsed, DiscountedPrice derived.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"` // category name, not an id
	Price           float64  `json:"price"`
	Discount        float64  `json:"discount"` // percent, 0-100
	DiscountedPrice float64  `json:"discountedPrice"`
	Sizes           []string `json:"sizes"`
	SKU             string   `json:"sku"`
	Images          []string `json:"images"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt,omitempty"`
}

// ProductInput carries raw form values for product creation. Numeric fields
// stay strings here; the service parses them with a zero default.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       string
	Discount    string
	Sizes       string // comma-delimited
	SKU         string
}

// CategoryPatch distinguishes omitted fields (nil) from explicitly cleared
// ones, so an update can blank a description without dropping the change.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Slug        *string `json:"slug"`
}

// ProductPatch is the product counterpart of CategoryPatch. Price and
// Discount are pointers so an explicit zero survives the merge.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Discount    *float64
	Sizes       *string
	SKU         *string
}

// Session is the server-held proof of authentication referenced by the sid
// cookie. Exactly one principal exists; UserID is always "admin".
type Session struct {
	ID        string `db:"id" json:"-"`
	UserID    string `db:"user_id" json:"userId"`
	Username  string `db:"username" json:"username"`
	CreatedAt string `db:"created_at" json:"-"`
	ExpiresAt int64  `db:"expires_at" json:"-"` // unix seconds
}
