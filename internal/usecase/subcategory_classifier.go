package usecase

import (
	"regexp"
	"strings"

	"github.com/stylefit/backend/internal/domain"
)

// Ordered keyword rules for refining denim products into fit subcategories.
// First matching rule wins; ordering makes the rules mutually exclusive
// ("jean jacket" is outerwear before the jean token can claim it).
var (
	dressesPattern = regexp.MustCompile(
		`dress|gown|jumpsuit|romper|playsuit|bridal|wedding`)
	outerwearPattern = regexp.MustCompile(
		`coat|jacket|blazer|hoodie|vest|parka|cardigan|bomber|windbreaker|puffer|anorak`)
	topsPattern = regexp.MustCompile(
		`\btop\b|bustier|camisole|\bcami\b|sweater|sweatshirt|shirt|\bbra\b|\btee\b|t-shirt|blouse|tank|bodysuit|polo|tunic|corset`)
	bottomsPattern = regexp.MustCompile(
		`skirt|pant|short|jean|legging|jogger|chino|trouser|waist|boxer|brief|culotte|flare`)
)

// Classifier maps a raw product category plus name into a fit subcategory.
// Results are cached per (brand, product name); create one Classifier per
// brand batch run — the cache is never shared across top-level calls.
type Classifier struct {
	cache map[string]string
}

// NewClassifier creates a classifier with an empty per-run cache
func NewClassifier() *Classifier {
	return &Classifier{cache: make(map[string]string)}
}

// Classify returns the fit subcategory for a product. Non-denim categories
// classify as themselves. Denim products are refined by name keywords; a
// name matching no rule falls back to generic denim.
func (c *Classifier) Classify(brand, category, productName string) string {
	if category != domain.CategoryDenim {
		return category
	}

	key := brand + "|" + productName
	if sub, ok := c.cache[key]; ok {
		return sub
	}

	sub := classifyDenimName(productName)
	c.cache[key] = sub
	return sub
}

func classifyDenimName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case dressesPattern.MatchString(lower):
		return domain.SubcategoryDresses
	case outerwearPattern.MatchString(lower):
		return domain.SubcategoryOuterwear
	case topsPattern.MatchString(lower):
		return domain.SubcategoryTops
	case bottomsPattern.MatchString(lower):
		return domain.SubcategoryBottoms
	}
	return domain.CategoryDenim
}
