package domain

// Product is a redemption catalog entry. Reference data only; the engine
// never mutates it.
type Product struct {
	ID             string
	Name           string
	Description    string
	PointsRequired int
	Image          string
	Category       string
}
