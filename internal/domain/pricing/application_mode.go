package pricing

// PriceApplicationMode selects how a customer-facing price lookup behaves
type PriceApplicationMode string

const (
	// ModeAutomatic walks party assignments, then general lists, then the
	// product default price
	ModeAutomatic PriceApplicationMode = "automatic"
	// ModeForcedPriceList requires an explicit list and fails when the list
	// does not contain the product
	ModeForcedPriceList PriceApplicationMode = "forced_price_list"
	// ModeManual requires an explicit price and ignores all price lists
	ModeManual PriceApplicationMode = "manual"
	// ModeHybrid uses a manual price when supplied, otherwise behaves as
	// ModeForcedPriceList
	ModeHybrid PriceApplicationMode = "hybrid_forced_with_overrides"
)

// IsValid returns true if the mode is recognized
func (m PriceApplicationMode) IsValid() bool {
	switch m {
	case ModeAutomatic, ModeForcedPriceList, ModeManual, ModeHybrid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the mode
func (m PriceApplicationMode) String() string {
	return string(m)
}
