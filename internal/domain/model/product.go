package model

// Product is the slice of the catalog placement needs. SellingPrice is kept
// as raw column text so a malformed price surfaces as a line item error.
type Product struct {
	ID           string
	Name         string
	SellingPrice string
	Active       bool
	Deleted      bool
}

// Orderable reports whether the product may be referenced by a new order.
func (p *Product) Orderable() bool {
	return p != nil && p.Active && !p.Deleted
}
