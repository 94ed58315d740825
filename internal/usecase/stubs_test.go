package usecase

import (
	"context"
	"strings"

	"github.com/stylefit/backend/internal/domain"
)

// stubProductStore serves a fixed, ordered product list with stable
// pagination, mirroring the catalog store contract. PageCalls counts
// store round trips.
type stubProductStore struct {
	products  []domain.Product
	err       error
	PageCalls int
}

func (s *stubProductStore) Page(_ context.Context, filter domain.ProductFilter, offset, limit int) ([]domain.Product, error) {
	s.PageCalls++
	if s.err != nil {
		return nil, s.err
	}
	var filtered []domain.Product
	for _, p := range s.products {
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		if filter.Gender != "" && p.Gender != filter.Gender {
			continue
		}
		if len(filter.Categories) > 0 && !containsString(filter.Categories, p.Category) {
			continue
		}
		filtered = append(filtered, p)
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (s *stubProductStore) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *stubProductStore) Search(_ context.Context, query domain.ProductQuery) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var hits []domain.Product
	for _, p := range s.products {
		if query.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), query.Keyword) {
			continue
		}
		if query.Gender != "" && p.Gender != query.Gender {
			continue
		}
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		if query.Brand != "" && p.Brand != query.Brand {
			continue
		}
		hits = append(hits, p)
	}
	return hits, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type stubChartStore struct {
	charts map[string]domain.SizeChart // key: brand|unit
	err    error
}

func (s *stubChartStore) Get(_ context.Context, brand, unit string) (domain.SizeChart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.charts[brand+"|"+unit], nil
}

type stubUserStore struct {
	users map[string]*domain.UserProfile
	err   error
}

func (s *stubUserStore) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[userID], nil
}

type stubWishlistStore struct {
	sets map[string]map[string]struct{}
	err  error
}

func (s *stubWishlistStore) ContainsSet(_ context.Context, userID string) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sets[userID], nil
}

// inchChart builds a simple female tops+bottoms chart in inches
func inchChart() domain.SizeChart {
	return domain.SizeChart{
		"female": domain.CategoryCharts{
			"tops": []domain.SizeChartEntry{
				{Name: "S", Measurements: map[string]domain.FlexString{"bust": "33-34", "waist": "25-26"}},
				{Name: "M", Measurements: map[string]domain.FlexString{"bust": "35-36", "waist": "27-28"}},
				{Name: "L", Measurements: map[string]domain.FlexString{"bust": "37-38", "waist": "29-30"}},
			},
			"bottoms": []domain.SizeChartEntry{
				{Name: "28", Measurements: map[string]domain.FlexString{"waist": "28-29", "hip": "38-39"}},
				{Name: "30", Measurements: map[string]domain.FlexString{"waist": "30-31", "hip": "40-41"}},
			},
		},
	}
}

// topsProduct builds an in-stock tops product for a brand
func topsProduct(id, brand, name string) domain.Product {
	return domain.Product{
		ID:       id,
		Brand:    brand,
		Category: "tops",
		Gender:   "female",
		Name:     name,
		Sizes: []domain.ProductSize{
			{Size: "S", InStock: true},
			{Size: "M", InStock: true},
			{Size: "L", InStock: true},
		},
	}
}

func testUser() *domain.UserProfile {
	return &domain.UserProfile{
		ID:            "user-1",
		Gender:        "female",
		FitPreference: domain.FitFitted,
		Measurements: map[string]domain.Measurement{
			"bust":  {Value: 35.5, Unit: "inch"},
			"waist": {Value: 27.5, Unit: "inch"},
			"hip":   {Value: 38.5, Unit: "inch"},
		},
	}
}
