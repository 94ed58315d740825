package domain

// AttributeFit is the per-attribute outcome of scoring one user measurement
// against one chart cell. Difference is nil when either side was absent or
// unparseable; an unknown fit always requires alteration.
type AttributeFit struct {
	FitType            FitType   `json:"fitType,omitempty"`
	AlterationRequired bool      `json:"alterationRequired"`
	Difference         *float64  `json:"difference"`
	Direction          Direction `json:"direction,omitempty"`
}

// SizeMatchResult is the per-size verdict for one chart row against one
// user's measurements. Ephemeral: recomputed per request, cached only
// within one recommendation or search call.
type SizeMatchResult struct {
	Name                 string                  `json:"name"`
	NumericalSize        FlexString              `json:"numericalSize,omitempty"`
	NumericalValue       FlexString              `json:"numericalValue,omitempty"`
	FitType              FitType                 `json:"fitType,omitempty"`
	AlterationRequired   bool                    `json:"alterationRequired"`
	SizeDifference       float64                 `json:"sizeDifference"`
	AttributeDifferences map[string]AttributeFit `json:"attributeDifferences,omitempty"`
}

// ProductMatch is a product-level recommendation: the product plus the
// stocked sizes whose fit classification matched the requested fit type.
type ProductMatch struct {
	Product            Product           `json:"product"`
	Subcategory        string            `json:"subcategory,omitempty"`
	FitType            FitType           `json:"fitType"`
	AlterationRequired bool              `json:"alterationRequired"`
	SizeDifference     float64           `json:"sizeDifference"`
	MatchedSizes       []SizeMatchResult `json:"matchedSizes"`
	IsWishlist         bool              `json:"isWishlist"`
}

// BrandCursor is resumable pagination state per brand. A nil offset means
// the brand is exhausted; a missing key means the brand has not been
// paged yet. The caller owns persistence across calls.
type BrandCursor map[string]*int

// ChartFit is the outcome of searching a whole chart for the best size at
// a requested fit type. Fits is false when no size satisfies the fit type;
// Score is then the distance of the closest fallback (or +Inf for fitted,
// which never falls back).
type ChartFit struct {
	Entry SizeChartEntry `json:"entry"`
	Fits  bool           `json:"fits"`
	Score float64        `json:"score"`
}
