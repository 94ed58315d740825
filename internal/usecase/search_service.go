package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// Compiled once; keyword cleanup runs per search request
var (
	keywordPunctuationRegex = regexp.MustCompile(`[^\w\s-]`)
	keywordSpacesRegex      = regexp.MustCompile(`\s+`)
)

// keywordNoiseWords are marketing and storefront terms that never narrow a
// catalog search
var keywordNoiseWords = map[string]bool{
	"new": true, "sale": true, "exclusive": true, "bestseller": true,
	"trending": true, "limited": true, "edition": true, "premium": true,
	"collection": true, "essential": true, "basic": true, "classic": true,
	"shop": true, "buy": true, "womens": true, "mens": true,
}

// CleanKeyword strips punctuation and storefront noise from a search
// keyword and collapses whitespace
func CleanKeyword(keyword string) string {
	cleaned := keywordPunctuationRegex.ReplaceAllString(strings.ToLower(keyword), " ")

	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if keywordNoiseWords[word] {
			continue
		}
		kept = append(kept, word)
	}

	return strings.TrimSpace(keywordSpacesRegex.ReplaceAllString(strings.Join(kept, " "), " "))
}

// SearchService runs single-pass keyword search over the catalog, scoring
// every hit against the user's measurements and ranking by fit quality.
type SearchService struct {
	products         domain.ProductStore
	charts           domain.SizeChartStore
	users            domain.UserMeasurementStore
	wishlist         domain.WishlistStore
	matcher          *Matcher
	femaleDenimBrand string
	preferredUnit    string
	logger           zerolog.Logger
}

// NewSearchService creates a search service sharing the engine's brand
// quirk configuration
func NewSearchService(
	products domain.ProductStore,
	charts domain.SizeChartStore,
	users domain.UserMeasurementStore,
	wishlist domain.WishlistStore,
	config EngineConfig,
	logger zerolog.Logger,
) *SearchService {
	if config.PreferredUnit == "" {
		config.PreferredUnit = domain.UnitInch
	}
	return &SearchService{
		products:         products,
		charts:           charts,
		users:            users,
		wishlist:         wishlist,
		matcher:          NewMatcher(config.SleeveStrictBrand, logger),
		femaleDenimBrand: config.FemaleDenimChartBrand,
		preferredUnit:    config.PreferredUnit,
		logger:           logger,
	}
}

// SearchRequest is one keyword search. Gender defaults to the user's
// profile gender; category and brand are optional filters.
type SearchRequest struct {
	UserID   string
	Keyword  string
	Gender   string
	Category string
	Brand    string
}

// Search scores every keyword hit and returns them ranked: products
// needing no alteration first, closest aggregate fit first within each
// group. The sort is stable, so store order breaks remaining ties.
func (s *SearchService) Search(ctx context.Context, req *SearchRequest) ([]domain.ProductMatch, error) {
	if req == nil || req.UserID == "" || strings.TrimSpace(req.Keyword) == "" {
		return nil, domain.ErrInvalidRequest
	}

	user, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	fitType := user.FitPreference
	if fitType == domain.FitUnknown {
		fitType = domain.FitFitted
	}

	gender := req.Gender
	if gender == "" {
		gender = user.Gender
	}

	hits, err := s.products.Search(ctx, domain.ProductQuery{
		Keyword:  CleanKeyword(req.Keyword),
		Gender:   gender,
		Category: req.Category,
		Brand:    req.Brand,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}

	wishlisted := s.wishlistSet(ctx, req.UserID)

	// Brand-scoped caches live for this one call only
	classifier := NewClassifier()
	caches := make(map[string]*MatchCache)
	chartCache := make(map[string]brandChart)

	var matches []domain.ProductMatch
	for _, product := range hits {
		bc, ok := chartCache[product.Brand]
		if !ok {
			bc = s.loadBrandChart(ctx, product.Brand)
			chartCache[product.Brand] = bc
		}
		if bc.chart == nil {
			continue
		}

		cache, ok := caches[product.Brand]
		if !ok {
			cache = NewMatchCache()
			caches[product.Brand] = cache
		}

		match := s.scoreHit(classifier, cache, bc, gender, fitType, user, product)
		if match == nil {
			continue
		}
		if _, ok := wishlisted[product.ID]; ok {
			match.IsWishlist = true
		}
		matches = append(matches, *match)
	}

	rankMatches(matches)

	return matches, nil
}

// rankMatches orders results with a two-key stable sort: products needing
// no alteration first, ascending aggregate difference within each group.
// Stability preserves store order for remaining ties.
func rankMatches(matches []domain.ProductMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].AlterationRequired != matches[j].AlterationRequired {
			return !matches[i].AlterationRequired
		}
		return matches[i].SizeDifference < matches[j].SizeDifference
	})
}

type brandChart struct {
	chart domain.SizeChart
	unit  string
}

func (s *SearchService) loadBrandChart(ctx context.Context, brand string) brandChart {
	units := []string{s.preferredUnit, domain.UnitCm}
	if s.preferredUnit == domain.UnitCm {
		units[1] = domain.UnitInch
	}
	for _, unit := range units {
		chart, err := s.charts.Get(ctx, brand, unit)
		if err != nil {
			s.logger.Error().Err(err).Str("brand", brand).Msg("size chart lookup failed")
			return brandChart{}
		}
		if chart != nil {
			return brandChart{chart: chart, unit: unit}
		}
	}
	s.logger.Warn().Str("brand", brand).Msg("no size chart, skipping search hits")
	return brandChart{}
}

func (s *SearchService) scoreHit(
	classifier *Classifier,
	cache *MatchCache,
	bc brandChart,
	gender string,
	fitType domain.FitType,
	user *domain.UserProfile,
	product domain.Product,
) *domain.ProductMatch {
	subcategory := classifier.Classify(product.Brand, product.Category, product.Name)
	categoryKey := CategoryKey(product.Brand, gender, product.Category, subcategory, s.femaleDenimBrand)

	entries := ResolveChart(bc.chart, gender, categoryKey)
	if entries == nil {
		return nil
	}

	sizeMatches := s.matcher.MatchSizesForCategory(cache, product.Brand, subcategory, entries, user.MeasurementValuesIn(bc.unit))

	byName := make(map[string]domain.SizeMatchResult, len(sizeMatches))
	for _, sm := range sizeMatches {
		byName[strings.ToUpper(NormalizeSizeLabel(sm.Name))] = sm
	}

	var matched []domain.SizeMatchResult
	alteration := true
	best := -1
	for _, size := range product.Sizes {
		if !size.InStock {
			continue
		}
		sm, ok := byName[strings.ToUpper(NormalizeSizeLabel(size.Size))]
		if !ok || sm.FitType != fitType {
			continue
		}
		matched = append(matched, sm)
		if !sm.AlterationRequired {
			alteration = false
		}
		if best < 0 || sm.SizeDifference < matched[best].SizeDifference {
			best = len(matched) - 1
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return &domain.ProductMatch{
		Product:            product,
		Subcategory:        subcategory,
		FitType:            fitType,
		AlterationRequired: alteration,
		SizeDifference:     matched[best].SizeDifference,
		MatchedSizes:       matched,
	}
}

func (s *SearchService) wishlistSet(ctx context.Context, userID string) map[string]struct{} {
	if s.wishlist == nil {
		return nil
	}
	set, err := s.wishlist.ContainsSet(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", userID).Msg("wishlist lookup failed")
		return nil
	}
	return set
}
