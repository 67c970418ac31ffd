package enum

// PricingMode determines which price fields a category's products carry.
// Flat products have a single selling price, weight products are priced per
// half/one kg (cakes), size products come in small/medium/large tiers.
type PricingMode string

const (
	PricingFlat   PricingMode = "flat"
	PricingWeight PricingMode = "weight"
	PricingSize   PricingMode = "size"
)

// IsValid reports whether the value is a known pricing mode
func (m PricingMode) IsValid() bool {
	switch m {
	case PricingFlat, PricingWeight, PricingSize:
		return true
	}
	return false
}

func (m PricingMode) String() string {
	return string(m)
}
