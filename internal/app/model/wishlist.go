package model

// WishlistItem is a wishlist entry. Unlike the cart, the wishlist is a
// membership set: adding the same product twice is a no-op, so there is
// no quantity.
type WishlistItem struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	MainImage     string   `json:"mainImage,omitempty"`
}

// NewWishlistItem snapshots a product into a wishlist entry.
func NewWishlistItem(p Product) WishlistItem {
	return WishlistItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		MainImage:     p.MainImage,
	}
}

// Product rebuilds a product from the snapshot, for moving an entry to
// the cart without refetching.
func (i WishlistItem) Product() Product {
	return Product{
		ID:            i.ID,
		Name:          i.Name,
		Price:         i.Price,
		DiscountPrice: i.DiscountPrice,
		MainImage:     i.MainImage,
	}
}
