package domain

// Product categories as stored by the catalog. Denim is special: its fit
// subcategory is derived from the product name, not the category itself.
const (
	CategoryDenim = "denim"
)

// Fit subcategories produced by the classifier
const (
	SubcategoryTops      = "tops"
	SubcategoryBottoms   = "bottoms"
	SubcategoryOuterwear = "outerwear"
	SubcategoryDresses   = "dresses"
)

// Genders as stored by the catalog and user profiles
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// ProductSize is one purchasable size label with its stock state
type ProductSize struct {
	Size    string `json:"size"`
	InStock bool   `json:"inStock"`
}

// Product represents a catalog item scraped from a brand site.
// Read-only for the matching engine.
type Product struct {
	ID       string        `json:"id"`
	Brand    string        `json:"brand"`
	Category string        `json:"category"`
	Gender   string        `json:"gender"`
	Name     string        `json:"name"`
	Price    float64       `json:"price,omitempty"`
	Currency string        `json:"currency,omitempty"`
	ImageURL string        `json:"imageUrl,omitempty"`
	URL      string        `json:"url,omitempty"`
	Sizes    []ProductSize `json:"sizes"`
}

// UserProfile holds a user's gender, preferred fit, and named body
// measurements. Measurements are optional per attribute; an absent
// attribute is excluded from scoring, never defaulted.
type UserProfile struct {
	ID            string                 `json:"id"`
	Gender        string                 `json:"gender"`
	FitPreference FitType                `json:"fitPreference"`
	Measurements  map[string]Measurement `json:"measurements"`
}

// MeasurementValuesIn converts all present measurements to the given unit
func (u *UserProfile) MeasurementValuesIn(unit string) map[string]float64 {
	values := make(map[string]float64, len(u.Measurements))
	for attr, m := range u.Measurements {
		values[attr] = m.ValueIn(unit)
	}
	return values
}
