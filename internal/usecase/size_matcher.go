package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// MatchCache memoizes size-match results per (brand, subcategory) for the
// duration of one batch run. It is created fresh per top-level call and
// scoped to one brand's processing — never promoted to shared state.
// Computations counts cache fills, for instrumentation in tests.
type MatchCache struct {
	results      map[string][]domain.SizeMatchResult
	Computations int
}

// NewMatchCache creates an empty per-run match cache
func NewMatchCache() *MatchCache {
	return &MatchCache{results: make(map[string][]domain.SizeMatchResult)}
}

// Matcher combines per-attribute fit scores into per-size verdicts.
// sleeveStrictBrand is the one brand whose tops require fitted sleeves
// before a size counts as needing no alteration.
type Matcher struct {
	sleeveStrictBrand string
	logger            zerolog.Logger
}

// NewMatcher creates a matcher with the given brand quirk configuration
func NewMatcher(sleeveStrictBrand string, logger zerolog.Logger) *Matcher {
	return &Matcher{sleeveStrictBrand: sleeveStrictBrand, logger: logger}
}

// MatchSizesForCategory scores every row of a chart slice against the
// user's measurements, memoized per (brand, subcategory) in cache. The
// first caller computes; repeats are served the identical cached slice.
func (m *Matcher) MatchSizesForCategory(
	cache *MatchCache,
	brand, subcategory string,
	chart []domain.SizeChartEntry,
	userValues map[string]float64,
) []domain.SizeMatchResult {
	key := brand + "|" + subcategory
	if results, ok := cache.results[key]; ok {
		return results
	}

	topsLike := isTopsLike(subcategory)
	results := make([]domain.SizeMatchResult, 0, len(chart))
	for _, entry := range chart {
		if topsLike {
			results = append(results, m.matchTopsEntry(brand, entry, userValues))
		} else {
			results = append(results, matchBottomsEntry(entry, userValues))
		}
	}

	cache.results[key] = results
	cache.Computations++

	m.logger.Debug().
		Str("brand", brand).
		Str("subcategory", subcategory).
		Int("sizes", len(results)).
		Msg("size chart scored")

	return results
}

func isTopsLike(subcategory string) bool {
	switch subcategory {
	case domain.SubcategoryTops, domain.SubcategoryOuterwear, domain.SubcategoryDresses:
		return true
	}
	return false
}

// scoredAttr pairs an attribute fit with whether either side had data at
// all. Attributes absent on both sides are excluded from combination and
// reporting; they never block a fit and are never defaulted to zero.
type scoredAttr struct {
	fit     domain.AttributeFit
	present bool
}

func scoreEntryAttribute(entry domain.SizeChartEntry, attr string, userValues map[string]float64) scoredAttr {
	var user *float64
	if v, ok := userValues[attr]; ok {
		user = &v
	}
	cell := ParseCell(entry.Cell(attr))
	return scoredAttr{
		fit:     ScoreAttribute(user, cell),
		present: user != nil || !cell.IsEmpty(),
	}
}

// matchTopsEntry applies the tops/outerwear/dresses rule set: the bust fit
// dominates, the waist decides alteration, and sleeves are informational
// except for the sleeve-strict brand.
func (m *Matcher) matchTopsEntry(brand string, entry domain.SizeChartEntry, userValues map[string]float64) domain.SizeMatchResult {
	bust := scoreEntryAttribute(entry, domain.AttrBust, userValues)
	waist := scoreEntryAttribute(entry, domain.AttrWaist, userValues)
	sleeves := scoreEntryAttribute(entry, domain.AttrSleeves, userValues)

	fit, alteration := combinePrimary(bust, waist)
	if fit == domain.FitFitted && !alteration && brand == m.sleeveStrictBrand {
		if sleeves.present && sleeves.fit.FitType != domain.FitFitted {
			alteration = true
		}
	}

	return domain.SizeMatchResult{
		Name:                 entry.Name,
		NumericalSize:        entry.NumericalSize,
		NumericalValue:       entry.NumericalValue,
		FitType:              fit,
		AlterationRequired:   alteration,
		SizeDifference:       sumDifferences(bust, waist, sleeves),
		AttributeDifferences: attributeDifferences([]string{domain.AttrBust, domain.AttrWaist, domain.AttrSleeves}, bust, waist, sleeves),
	}
}

// matchBottomsEntry applies the bottoms rule set: waist dominates, the hip
// decides alteration.
func matchBottomsEntry(entry domain.SizeChartEntry, userValues map[string]float64) domain.SizeMatchResult {
	waist := scoreEntryAttribute(entry, domain.AttrWaist, userValues)
	hip := scoreEntryAttribute(entry, domain.AttrHip, userValues)

	fit, alteration := combinePrimary(waist, hip)

	return domain.SizeMatchResult{
		Name:                 entry.Name,
		NumericalSize:        entry.NumericalSize,
		NumericalValue:       entry.NumericalValue,
		FitType:              fit,
		AlterationRequired:   alteration,
		SizeDifference:       sumDifferences(waist, hip),
		AttributeDifferences: attributeDifferences([]string{domain.AttrWaist, domain.AttrHip}, waist, hip),
	}
}

// combinePrimary merges a dominant attribute with a secondary one. An
// attribute absent on both sides is vacuously satisfied; an attribute with
// data on exactly one side is unknown and forces alteration. Loose on
// either side wins over tight.
func combinePrimary(primary, secondary scoredAttr) (domain.FitType, bool) {
	if !primary.present && !secondary.present {
		return domain.FitUnknown, true
	}

	pFit := effectiveFit(primary)
	sFit := effectiveFit(secondary)

	switch {
	case pFit == domain.FitFitted && sFit == domain.FitFitted:
		return domain.FitFitted, false
	case pFit == domain.FitFitted:
		return domain.FitFitted, true
	case pFit == domain.FitLoose || sFit == domain.FitLoose:
		return domain.FitLoose, true
	case pFit == domain.FitTight || sFit == domain.FitTight:
		return domain.FitTight, true
	case sFit == domain.FitFitted:
		// Primary is unknown; the secondary fit stands but cannot clear
		// the alteration flag on its own.
		return domain.FitFitted, true
	}
	return domain.FitUnknown, true
}

func effectiveFit(a scoredAttr) domain.FitType {
	if !a.present {
		return domain.FitFitted
	}
	return a.fit.FitType
}

// attributeDifferences collects per-attribute outcomes for explainability,
// excluding attributes absent on both sides.
func attributeDifferences(attrs []string, scored ...scoredAttr) map[string]domain.AttributeFit {
	diffs := make(map[string]domain.AttributeFit, len(attrs))
	for i, attr := range attrs {
		if !scored[i].present {
			continue
		}
		diffs[attr] = scored[i].fit
	}
	return diffs
}

func sumDifferences(scored ...scoredAttr) float64 {
	total := 0.0
	for _, a := range scored {
		if a.fit.Difference != nil {
			total += *a.fit.Difference
		}
	}
	return total
}

// NormalizeSizeLabel strips brand-specific label suffixes so product size
// labels can be matched against chart row names: "M#1" becomes "M" and
// "28/32" becomes "28".
func NormalizeSizeLabel(label string) string {
	if i := strings.Index(label, "#"); i >= 0 {
		label = label[:i]
	}
	if i := strings.Index(label, "/"); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label)
}

// FindBestFitAcrossChart returns the best chart row for a desired fit type
// over one measurement attribute, restricted to rows whose label matches a
// stocked product size. Rows are scanned in ascending order of the
// attribute's primary value; the first perfect score wins outright and
// ties keep encounter order.
func FindBestFitAcrossChart(
	chart []domain.SizeChartEntry,
	user float64,
	desired domain.FitType,
	attr string,
	stocked []domain.ProductSize,
) *domain.ChartFit {
	inStock := make(map[string]struct{}, len(stocked))
	for _, s := range stocked {
		if s.InStock {
			inStock[strings.ToUpper(NormalizeSizeLabel(s.Size))] = struct{}{}
		}
	}

	type candidate struct {
		entry   domain.SizeChartEntry
		primary float64
	}
	var candidates []candidate
	for _, entry := range chart {
		if _, ok := inStock[strings.ToUpper(NormalizeSizeLabel(entry.Name))]; !ok {
			continue
		}
		primary, ok := PrimaryValue(entry.Cell(attr))
		if !ok {
			primary = math.Inf(1)
		}
		candidates = append(candidates, candidate{entry: entry, primary: primary})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].primary < candidates[j].primary
	})

	var best *domain.ChartFit
	for _, c := range candidates {
		fits, score := BestFitForFitType(user, ParseCell(c.entry.Cell(attr)), desired)
		if fits && score == 0 {
			return &domain.ChartFit{Entry: c.entry, Fits: true, Score: 0}
		}
		if best == nil || score < best.Score {
			best = &domain.ChartFit{Entry: c.entry, Fits: fits, Score: score}
		}
	}
	return best
}
