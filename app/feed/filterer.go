package feed

import (
	"fmt"
	"strings"
)

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run returns the articles that pass every filter and the number rejected.
func (f *Filterer) Run(articles []Article, filters []ConfigFilter) ([]Article, int) {
	if len(filters) == 0 {
		return articles, 0
	}

	kept := make([]Article, 0, len(articles))
	for _, article := range articles {
		if isFiltered, _ := f.applyFilters(article, filters); isFiltered {
			continue
		}
		kept = append(kept, article)
	}

	return kept, len(articles) - len(kept)
}

func (f *Filterer) applyFilters(article Article, filters []ConfigFilter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(article, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("Excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("Excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(article Article, field string) string {
	switch field {
	case "title":
		return article.Title
	case "summary":
		return article.Summary
	case "link":
		return article.URL
	default:
		return ""
	}
}
