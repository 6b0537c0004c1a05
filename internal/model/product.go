package model

// Catalog category tags. These are catalog-controlled constants, compared
// case-sensitively in category-mode filtering.
const (
	CategoryAll         = "all"
	CategoryMens        = "men's clothing"
	CategoryWomens      = "women's clothing"
	CategoryJewelery    = "jewelery"
	CategoryElectronics = "electronics"
)

// Product represents a catalog product. The catalog is read-only to the
// search core; products pass through filtering as opaque values.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	Title       string  `json:"title" db:"title"`
	Price       float64 `json:"price" db:"price"`
	Description string  `json:"description" db:"description"`
	Category    string  `json:"category" db:"category"`
	Image       string  `json:"image,omitempty" db:"image"`
	Rating      *Rating `json:"rating,omitempty" db:"rating"`
}

// Rating holds a product's average rating. Absent on some catalogs; the
// filter engine estimates a rating from price when it is missing.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// EffectiveRating returns the product's rating, or a price-derived estimate
// when the catalog carries no rating data: min(5.0, 3.0 + price/100).
func (p *Product) EffectiveRating() float64 {
	if p.Rating != nil {
		return p.Rating.Rate
	}
	est := 3.0 + p.Price/100
	if est > 5.0 {
		return 5.0
	}
	return est
}

// Categories returns the fixed set of known category tags, without "all".
func Categories() []string {
	return []string{CategoryMens, CategoryWomens, CategoryJewelery, CategoryElectronics}
}
