package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/collegehub/cms-api/model"
)

// Search constraints
const (
	SearchMinQueryLength   = 2
	searchResultsPerBucket = 10
)

// ErrQueryTooShort is returned before any database access when the search
// query is below the minimum length.
var ErrQueryTooShort = errors.New("search query must be at least 2 characters")

// SearchResults groups matches by entity category, capped per category
type SearchResults struct {
	Colleges []model.College `json:"colleges"`
	Pages    []model.Page    `json:"pages"`
	Courses  []model.Course  `json:"courses"`
	Faculty  []model.Faculty `json:"faculty"`
}

// SearchService implements the public free-text search
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new search service
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search performs case-insensitive substring matches across colleges,
// pages, courses and faculty. typeFilter narrows to one category when set
// to "colleges", "pages", "courses" or "faculty".
func (s *SearchService) Search(query, typeFilter string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if len(query) < SearchMinQueryLength {
		return nil, ErrQueryTooShort
	}

	pattern := "%" + query + "%"
	results := &SearchResults{
		Colleges: []model.College{},
		Pages:    []model.Page{},
		Courses:  []model.Course{},
		Faculty:  []model.Faculty{},
	}

	wants := func(category string) bool {
		return typeFilter == "" || typeFilter == category
	}

	if wants("colleges") {
		err := s.db.Where("is_active = ?", true).
			Where("name ILIKE ? OR short_description ILIKE ?", pattern, pattern).
			Limit(searchResultsPerBucket).
			Find(&results.Colleges).Error
		if err != nil {
			return nil, err
		}
	}

	if wants("pages") {
		err := s.db.Where("is_active = ?", true).
			Where("title ILIKE ? OR slug ILIKE ?", pattern, pattern).
			Limit(searchResultsPerBucket).
			Find(&results.Pages).Error
		if err != nil {
			return nil, err
		}
	}

	if wants("courses") {
		err := s.db.Where("is_active = ?", true).
			Where("name ILIKE ? OR department ILIKE ? OR overview ILIKE ?", pattern, pattern, pattern).
			Limit(searchResultsPerBucket).
			Find(&results.Courses).Error
		if err != nil {
			return nil, err
		}
	}

	if wants("faculty") {
		err := s.db.Where("is_active = ?", true).
			Where("name ILIKE ? OR designation ILIKE ? OR qualification ILIKE ?", pattern, pattern, pattern).
			Limit(searchResultsPerBucket).
			Find(&results.Faculty).Error
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
