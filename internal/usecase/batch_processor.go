package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylefit/backend/internal/domain"
)

// BatchProcessor pages through one brand's products in bounded batches,
// scoring each against the user's measurements and stopping as soon as the
// brand's quota of matches is met. Classification and size-match caches
// are created fresh per Process call, so concurrent brands never share
// state.
type BatchProcessor struct {
	products         domain.ProductStore
	matcher          *Matcher
	femaleDenimBrand string
	pageSize         int
	logger           zerolog.Logger
}

// NewBatchProcessor creates a processor with the given page size
func NewBatchProcessor(products domain.ProductStore, matcher *Matcher, femaleDenimBrand string, pageSize int, logger zerolog.Logger) *BatchProcessor {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &BatchProcessor{
		products:         products,
		matcher:          matcher,
		femaleDenimBrand: femaleDenimBrand,
		pageSize:         pageSize,
		logger:           logger,
	}
}

// BrandBatch is one brand's unit of work for a recommendation call.
// UserValues must already be converted to the chart's unit. Offset is the
// caller-held resume cursor; zero starts from the beginning.
type BrandBatch struct {
	Brand      string
	Category   string
	Gender     string
	Chart      domain.SizeChart
	UserValues map[string]float64
	FitType    domain.FitType
	Quota      int
	Offset     int
}

// BrandBatchResult carries a brand's matches plus its resume state.
// NextOffset nil means the brand is exhausted; a finite offset points at
// exactly the first product not yet inspected.
type BrandBatchResult struct {
	Brand      string
	Matches    []domain.ProductMatch
	NextOffset *int
	Processed  int
}

// Process runs the fetch/score loop for one brand until the quota is met
// or the store runs out of products. A store failure is terminal for this
// brand only.
func (p *BatchProcessor) Process(ctx context.Context, batch BrandBatch) (*BrandBatchResult, error) {
	classifier := NewClassifier()
	cache := NewMatchCache()
	result := &BrandBatchResult{Brand: batch.Brand}

	filter := domain.ProductFilter{
		Brand:      batch.Brand,
		Categories: []string{batch.Category},
		Gender:     batch.Gender,
	}

	offset := batch.Offset
	for {
		page, err := p.products.Page(ctx, filter, offset, p.pageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: brand %s: %v", domain.ErrStoreFailure, batch.Brand, err)
		}
		if len(page) == 0 {
			return result, nil
		}

		for i, product := range page {
			result.Processed++

			if match := p.scoreProduct(classifier, cache, batch, product); match != nil {
				result.Matches = append(result.Matches, *match)
			}

			if len(result.Matches) >= batch.Quota {
				// Resume exactly after the last product inspected; an
				// off-by-one here duplicates or skips products next call.
				next := offset + i + 1
				result.NextOffset = &next
				return result, nil
			}
		}

		offset += len(page)
		if len(page) < p.pageSize {
			return result, nil
		}
	}
}

// scoreProduct classifies, chart-resolves, and scores one product,
// returning nil when no stocked size matches the requested fit type.
func (p *BatchProcessor) scoreProduct(classifier *Classifier, cache *MatchCache, batch BrandBatch, product domain.Product) *domain.ProductMatch {
	subcategory := classifier.Classify(batch.Brand, product.Category, product.Name)
	categoryKey := CategoryKey(batch.Brand, batch.Gender, product.Category, subcategory, p.femaleDenimBrand)

	entries := ResolveChart(batch.Chart, batch.Gender, categoryKey)
	if entries == nil {
		p.logger.Warn().
			Str("brand", batch.Brand).
			Str("gender", batch.Gender).
			Str("categoryKey", categoryKey).
			Str("product", product.ID).
			Msg("no size chart, skipping product")
		return nil
	}

	sizeMatches := p.matcher.MatchSizesForCategory(cache, batch.Brand, subcategory, entries, batch.UserValues)

	byName := make(map[string]domain.SizeMatchResult, len(sizeMatches))
	for _, sm := range sizeMatches {
		byName[strings.ToUpper(NormalizeSizeLabel(sm.Name))] = sm
	}

	var matched []domain.SizeMatchResult
	alteration := true
	minDiff := math.Inf(1)
	for _, size := range product.Sizes {
		if !size.InStock {
			continue
		}
		sm, ok := byName[strings.ToUpper(NormalizeSizeLabel(size.Size))]
		if !ok || sm.FitType != batch.FitType {
			continue
		}
		matched = append(matched, sm)
		if !sm.AlterationRequired {
			alteration = false
		}
		if sm.SizeDifference < minDiff {
			minDiff = sm.SizeDifference
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return &domain.ProductMatch{
		Product:            product,
		Subcategory:        subcategory,
		FitType:            batch.FitType,
		AlterationRequired: alteration,
		SizeDifference:     minDiff,
		MatchedSizes:       matched,
	}
}
