package domain

// Category is the closed set of product kinds the warehouse stocks.
type Category string

const (
	CategoryTShirt   Category = "t-shirt"
	CategoryHoodie   Category = "hoodie"
	CategoryHat      Category = "hat"
	CategoryNecklace Category = "necklace"
	CategoryBracelet Category = "bracelet"
	CategoryShoes    Category = "shoes"
	CategoryPillow   Category = "pillow"
	CategoryMug      Category = "mug"
	CategoryBook     Category = "book"
	CategoryPuzzle   Category = "puzzle"
	CategoryCards    Category = "cards"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryTShirt,
	CategoryHoodie,
	CategoryHat,
	CategoryNecklace,
	CategoryBracelet,
	CategoryShoes,
	CategoryPillow,
	CategoryMug,
	CategoryBook,
	CategoryPuzzle,
	CategoryCards,
}

// Price bounds, inclusive.
const (
	MinPrice = 0
	MaxPrice = 1000
)

// IsCategory reports whether s is exactly one of the category literals.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Product is a catalog item.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Stock       int      `json:"stock"`
	Image       string   `json:"image,omitempty"`
}
