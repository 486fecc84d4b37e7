package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"edu-guidance/internal/domain"
	"edu-guidance/internal/repository"
)

// CollegeService answers lookup, search and filter queries over the
// college directory.
type CollegeService struct {
	colleges repository.CollegeRepository
	logger   *zap.Logger
}

func NewCollegeService(colleges repository.CollegeRepository, logger *zap.Logger) *CollegeService {
	return &CollegeService{colleges: colleges, logger: logger}
}

// List returns the whole directory.
func (s *CollegeService) List(ctx context.Context) ([]domain.College, error) {
	colleges, err := s.colleges.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	return colleges, nil
}

// Search matches college names case-insensitively by substring.
func (s *CollegeService) Search(ctx context.Context, query string) ([]domain.College, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: q", ErrMissingParameter)
	}
	colleges, err := s.colleges.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	var out []domain.College
	for _, college := range colleges {
		if strings.Contains(strings.ToLower(college.Name), strings.ToLower(query)) {
			out = append(out, college)
		}
	}
	return out, nil
}

// Filter applies case-insensitive substring matching per named field.
// Unknown field names are skipped rather than failing the whole query.
func (s *CollegeService) Filter(ctx context.Context, filters map[string]string) ([]domain.College, error) {
	if len(filters) == 0 {
		return nil, fmt.Errorf("%w: no filter criteria provided", ErrMissingParameter)
	}
	colleges, err := s.colleges.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	var out []domain.College
	for _, college := range colleges {
		if collegeMatches(college, filters) {
			out = append(out, college)
		}
	}
	return out, nil
}

func collegeMatches(college domain.College, filters map[string]string) bool {
	fields := map[string]string{
		"college_id":   college.CollegeID,
		"college_name": college.Name,
		"division":     college.Division,
		"district":     college.District,
		"college_type": college.CollegeType,
		"address":      college.Address,
		"website":      college.Website,
	}
	for key, want := range filters {
		if want == "" {
			continue
		}
		have, ok := fields[strings.ToLower(key)]
		if !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// CollegeStats summarizes the directory by division, district and type.
type CollegeStats struct {
	TotalColleges int            `json:"total_colleges"`
	ByDivision    map[string]int `json:"colleges_by_division"`
	ByDistrict    map[string]int `json:"colleges_by_district"`
	ByType        map[string]int `json:"colleges_by_type"`
}

func (s *CollegeService) Stats(ctx context.Context) (CollegeStats, error) {
	colleges, err := s.colleges.List(ctx)
	if err != nil {
		return CollegeStats{}, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	if len(colleges) == 0 {
		return CollegeStats{}, ErrDatasetUnavailable
	}
	stats := CollegeStats{
		TotalColleges: len(colleges),
		ByDivision:    make(map[string]int),
		ByDistrict:    make(map[string]int),
		ByType:        make(map[string]int),
	}
	for _, college := range colleges {
		stats.ByDivision[college.Division]++
		stats.ByDistrict[college.District]++
		stats.ByType[college.CollegeType]++
	}
	return stats, nil
}
