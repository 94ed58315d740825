package usecase

import (
	"github.com/stylefit/backend/internal/domain"
)

// CategoryKey derives the chart-lookup bucket for a classified product.
// Tops, outerwear, and dresses share the tops chart; everything else uses
// bottoms. The one exception: femaleDenimBrand keeps a dedicated denim
// chart slice for female denim instead of folding it into bottoms.
func CategoryKey(brand, gender, category, subcategory, femaleDenimBrand string) string {
	if category == domain.CategoryDenim && gender == domain.GenderFemale && brand == femaleDenimBrand {
		return domain.CategoryKeyDenim
	}
	switch subcategory {
	case domain.SubcategoryTops, domain.SubcategoryOuterwear, domain.SubcategoryDresses:
		return domain.CategoryKeyTops
	}
	return domain.CategoryKeyBottoms
}

// ResolveChart locates the chart slice for a gender and categoryKey.
// Lookup order: chart[gender][categoryKey], chart[gender].default,
// chart.default. Returns nil when no slice exists — the caller skips
// scoring for that product and logs, it is not an error.
func ResolveChart(chart domain.SizeChart, gender, categoryKey string) []domain.SizeChartEntry {
	if chart == nil {
		return nil
	}
	if byGender, ok := chart[gender]; ok {
		if entries := byGender[categoryKey]; len(entries) > 0 {
			return entries
		}
		if entries := byGender[domain.CategoryKeyDefault]; len(entries) > 0 {
			return entries
		}
	}
	if fallback, ok := chart[domain.CategoryKeyDefault]; ok {
		if entries := fallback[categoryKey]; len(entries) > 0 {
			return entries
		}
		if entries := fallback[domain.CategoryKeyDefault]; len(entries) > 0 {
			return entries
		}
	}
	return nil
}
