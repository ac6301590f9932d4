package cart

// LineItem is one product entry in the cart. UnitPrice is in the smallest
// currency unit (paise).
type LineItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url"`
}

// Total returns unit price times quantity for this line.
func (li LineItem) Total() int64 {
	return li.UnitPrice * int64(li.Quantity)
}
