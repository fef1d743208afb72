package model

// CartItem is a cart line. Product attributes are snapshotted at add time;
// the id is the product id and is unique within a cart.
type CartItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	MainImage     string   `json:"mainImage,omitempty"`
	Quantity      int      `json:"quantity"`
}

// NewCartItem snapshots a product into a cart line with quantity 1.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		MainImage:     p.MainImage,
		Quantity:      1,
	}
}

// Subtotal returns the line total using the discounted price when present.
func (i CartItem) Subtotal() float64 {
	price := i.Price
	if i.DiscountPrice != nil && *i.DiscountPrice > 0 && *i.DiscountPrice < i.Price {
		price = *i.DiscountPrice
	}
	return price * float64(i.Quantity)
}
