package catalog

import (
	"errors"
	"sort"
	"strings"
)

// Search errors
var (
	ErrQueryTooShort = errors.New("search query too short")
	ErrNoResults     = errors.New("no results")
)

// SearchResultLimit caps the number of courses returned by a single search.
const SearchResultLimit = 100

// SearchShortcut records a shortcut expansion that was applied to a query,
// e.g. "cs" expanding to "COMP_SCI".
type SearchShortcut struct {
	Replacing string `json:"replacing"`
	With      string `json:"with"`
}

// SearchResults holds the outcome of a catalog search. Courses matched by ID
// are listed before courses matched by name only.
type SearchResults struct {
	Results       []Course        `json:"results"`
	Shortcut      *SearchShortcut `json:"shortcut,omitempty"`
	LimitExceeded int             `json:"limitExceeded,omitempty"`
}

func normalizeQuery(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ReplaceAll(s, "_", " ")
}

// Search finds courses whose ID or name contains the query. The first word of
// the query may be a subject shortcut, in which case one term per expansion is
// searched. Terms shorter than 3 characters are rejected.
func (c *Catalog) Search(query string) (*SearchResults, error) {
	query = normalizeQuery(query)
	terms := []string{query}

	firstWord := query
	if i := strings.IndexByte(query, ' '); i >= 0 {
		firstWord = query[:i]
	}

	var shortcut *SearchShortcut
	if expansions, ok := c.shortcuts[firstWord]; ok {
		remainder := strings.TrimPrefix(query, firstWord)
		remainder = strings.TrimPrefix(remainder, " ")
		terms = make([]string, 0, len(expansions))
		for _, e := range expansions {
			terms = append(terms, strings.TrimSpace(normalizeQuery(e)+" "+remainder))
		}
		shortcut = &SearchShortcut{
			Replacing: strings.ToUpper(firstWord),
			With:      strings.Join(expansions, ", "),
		}
	}

	for _, term := range terms {
		if len(term) < 3 {
			return nil, ErrQueryTooShort
		}
	}

	var idResults, nameResults []Course
	for _, course := range c.courses {
		for _, term := range terms {
			if strings.Contains(normalizeQuery(course.ID), term) {
				idResults = append(idResults, course)
				break
			} else if strings.Contains(normalizeQuery(course.Name), term) {
				nameResults = append(nameResults, course)
				break
			}
		}
	}

	total := len(idResults) + len(nameResults)
	if total == 0 {
		return nil, ErrNoResults
	}

	limitExceeded := 0
	if total > SearchResultLimit {
		limitExceeded = total - SearchResultLimit
		if len(idResults) > SearchResultLimit {
			idResults = idResults[:SearchResultLimit]
			nameResults = nil
		} else {
			nameResults = nameResults[:SearchResultLimit-len(idResults)]
		}
	}

	sort.Slice(idResults, func(i, j int) bool {
		return idResults[i].ID < idResults[j].ID
	})
	sort.Slice(nameResults, func(i, j int) bool {
		return nameResults[i].Name < nameResults[j].Name
	})

	return &SearchResults{
		Results:       append(idResults, nameResults...),
		Shortcut:      shortcut,
		LimitExceeded: limitExceeded,
	}, nil
}
