package model

// Product mirrors the product document served by the storefront backend.
// The backend is the source of truth; this process never mutates products
// beyond the optimistic review-count patch on the rating summary.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Stock         int      `json:"stock"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	MainImage     string   `json:"mainImage,omitempty"`
	Images        []string `json:"images,omitempty"`
}

// RatingSummary is the product's cached review aggregate. The average is
// authoritative only on the backend; the count may be patched locally
// between fetches.
type RatingSummary struct {
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// Summary extracts the rating aggregate from a product document.
func (p *Product) Summary() RatingSummary {
	return RatingSummary{Rating: p.Rating, Reviews: p.Reviews}
}

// EffectivePrice returns the discounted price when one is set.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}
