package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stylefit/backend/internal/domain"
)

// EngineConfig holds the tunables of the matching engine, including the
// two brand quirks the rule set carries.
type EngineConfig struct {
	SleeveStrictBrand     string
	FemaleDenimChartBrand string
	PageSize              int
	DefaultQuota          int
	PreferredUnit         string
}

// RecommendationService assembles per-brand, paginated size
// recommendations. It is stateless across calls: all caches live inside
// one Recommend invocation, and cursors are caller-held.
type RecommendationService struct {
	products  domain.ProductStore
	charts    domain.SizeChartStore
	users     domain.UserMeasurementStore
	wishlist  domain.WishlistStore
	matcher   *Matcher
	processor *BatchProcessor
	config    EngineConfig
	logger    zerolog.Logger
}

// NewRecommendationService creates a recommendation service with its
// dependencies. Zero config fields fall back to sensible defaults.
func NewRecommendationService(
	products domain.ProductStore,
	charts domain.SizeChartStore,
	users domain.UserMeasurementStore,
	wishlist domain.WishlistStore,
	config EngineConfig,
	logger zerolog.Logger,
) *RecommendationService {
	if config.PageSize <= 0 {
		config.PageSize = 20
	}
	if config.DefaultQuota <= 0 {
		config.DefaultQuota = 10
	}
	if config.PreferredUnit == "" {
		config.PreferredUnit = domain.UnitInch
	}

	matcher := NewMatcher(config.SleeveStrictBrand, logger)
	return &RecommendationService{
		products:  products,
		charts:    charts,
		users:     users,
		wishlist:  wishlist,
		matcher:   matcher,
		processor: NewBatchProcessor(products, matcher, config.FemaleDenimChartBrand, config.PageSize, logger),
		config:    config,
		logger:    logger,
	}
}

// RecommendRequest is one recommendation call. Cursor carries the resume
// offsets returned by the previous call, if any.
type RecommendRequest struct {
	UserID        string
	Brands        []string
	Category      string
	FitType       domain.FitType
	QuotaPerBrand int
	Cursor        domain.BrandCursor
}

// RecommendResponse merges per-brand batch outputs. NextCursor must be
// passed back verbatim to resume; HasMore is true while any brand still
// has a finite cursor.
type RecommendResponse struct {
	Results         map[string]map[string][]domain.ProductMatch `json:"results"`
	NextCursor      domain.BrandCursor                          `json:"nextCursor"`
	TotalMatched    int                                         `json:"totalMatched"`
	ProcessedCounts map[string]int                              `json:"processedCounts"`
	HasMore         bool                                        `json:"hasMore"`
}

// Recommend runs one batch of fit matching across the requested brands.
// Brands are processed concurrently; each brand's caches are scoped to its
// own batch, and a store failure on one brand never discards the others.
func (s *RecommendationService) Recommend(ctx context.Context, req *RecommendRequest) (*RecommendResponse, error) {
	if req == nil || req.UserID == "" || len(req.Brands) == 0 || req.Category == "" {
		return nil, domain.ErrInvalidRequest
	}

	user, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	fitType := req.FitType
	if fitType == domain.FitUnknown {
		fitType = user.FitPreference
	}
	if fitType == domain.FitUnknown {
		fitType = domain.FitFitted
	}

	quota := req.QuotaPerBrand
	if quota <= 0 {
		quota = s.config.DefaultQuota
	}

	wishlisted := s.wishlistSet(ctx, req.UserID)

	resp := &RecommendResponse{
		Results:         make(map[string]map[string][]domain.ProductMatch),
		NextCursor:      make(domain.BrandCursor),
		ProcessedCounts: make(map[string]int),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, brand := range req.Brands {
		// A nil cursor entry from the previous call means this brand is
		// already exhausted; keep it terminal without touching the store.
		if offset, ok := req.Cursor[brand]; ok && offset == nil {
			resp.NextCursor[brand] = nil
			continue
		}

		start := 0
		if offset, ok := req.Cursor[brand]; ok && offset != nil {
			start = *offset
		}

		brand := brand
		g.Go(func() error {
			s.processBrand(gctx, brand, req.Category, fitType, quota, start, user, wishlisted, resp, &mu)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, byCategory := range resp.Results {
		for _, matches := range byCategory {
			resp.TotalMatched += len(matches)
		}
	}
	for _, offset := range resp.NextCursor {
		if offset != nil {
			resp.HasMore = true
			break
		}
	}

	return resp, nil
}

// processBrand runs one brand's batch and folds its output into resp.
// Failures are terminal for this brand only and leave its cursor where it
// started so the caller can retry.
func (s *RecommendationService) processBrand(
	ctx context.Context,
	brand, category string,
	fitType domain.FitType,
	quota, start int,
	user *domain.UserProfile,
	wishlisted map[string]struct{},
	resp *RecommendResponse,
	mu *sync.Mutex,
) {
	chart, unit, err := s.chartForBrand(ctx, brand)
	if err != nil {
		s.logger.Error().Err(err).Str("brand", brand).Msg("size chart lookup failed")
		mu.Lock()
		resp.NextCursor[brand] = &start
		mu.Unlock()
		return
	}
	if chart == nil {
		s.logger.Warn().Str("brand", brand).Msg("no size chart, skipping brand")
		mu.Lock()
		resp.NextCursor[brand] = nil
		mu.Unlock()
		return
	}

	result, err := s.processor.Process(ctx, BrandBatch{
		Brand:      brand,
		Category:   category,
		Gender:     user.Gender,
		Chart:      chart,
		UserValues: user.MeasurementValuesIn(unit),
		FitType:    fitType,
		Quota:      quota,
		Offset:     start,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("brand", brand).Msg("brand batch failed")
		mu.Lock()
		resp.NextCursor[brand] = &start
		mu.Unlock()
		return
	}

	mu.Lock()
	defer mu.Unlock()

	byCategory := make(map[string][]domain.ProductMatch)
	for _, match := range result.Matches {
		if _, ok := wishlisted[match.Product.ID]; ok {
			match.IsWishlist = true
		}
		byCategory[match.Product.Category] = append(byCategory[match.Product.Category], match)
	}
	if len(byCategory) > 0 {
		resp.Results[brand] = byCategory
	}
	resp.NextCursor[brand] = result.NextOffset
	resp.ProcessedCounts[brand] = result.Processed
}

// BestFitForProduct finds the single best stocked size of one product for
// the requested fit type, scanning the whole chart slice. Returns
// (nil, nil) when the chart has no row matching a stocked size.
func (s *RecommendationService) BestFitForProduct(ctx context.Context, productID, userID string, fitType domain.FitType) (*domain.ChartFit, error) {
	if productID == "" || userID == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if fitType == domain.FitUnknown {
		fitType = user.FitPreference
	}
	if fitType == domain.FitUnknown {
		fitType = domain.FitFitted
	}

	chart, unit, err := s.chartForBrand(ctx, product.Brand)
	if err != nil {
		return nil, err
	}
	if chart == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSizeChart, product.Brand)
	}

	subcategory := NewClassifier().Classify(product.Brand, product.Category, product.Name)
	categoryKey := CategoryKey(product.Brand, user.Gender, product.Category, subcategory, s.config.FemaleDenimChartBrand)
	entries := ResolveChart(chart, user.Gender, categoryKey)
	if entries == nil {
		return nil, fmt.Errorf("%w: %s/%s/%s", domain.ErrNoSizeChart, product.Brand, user.Gender, categoryKey)
	}

	attr := domain.AttrWaist
	if isTopsLike(subcategory) {
		attr = domain.AttrBust
	}
	measurement, ok := user.Measurements[attr]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s measurement", domain.ErrInvalidRequest, attr)
	}

	return FindBestFitAcrossChart(entries, measurement.ValueIn(unit), fitType, attr, product.Sizes), nil
}

// chartForBrand fetches a brand's chart in the preferred unit, falling
// back to the other unit. Returns the unit the chart is expressed in so
// user measurements can be converted before scoring.
func (s *RecommendationService) chartForBrand(ctx context.Context, brand string) (domain.SizeChart, string, error) {
	units := []string{s.config.PreferredUnit, domain.UnitCm}
	if s.config.PreferredUnit == domain.UnitCm {
		units[1] = domain.UnitInch
	}
	for _, unit := range units {
		chart, err := s.charts.Get(ctx, brand, unit)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
		}
		if chart != nil {
			return chart, unit, nil
		}
	}
	return nil, "", nil
}

// wishlistSet loads the user's wishlisted product ids; failures degrade to
// "nothing wishlisted".
func (s *RecommendationService) wishlistSet(ctx context.Context, userID string) map[string]struct{} {
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
