package plan

import (
	"sort"
	"strings"

	"github.com/planboard/planboard/internal/catalog"
)

// Quarter indices within an academic year. The summer quarter is optional and
// may be added or removed per year.
const (
	QuarterFall = iota
	QuarterWinter
	QuarterSpring
	QuarterSummer
)

// DefaultYears is the number of years a fresh plan starts with.
const DefaultYears = 4

// quartersPerYear is the number of quarters a year starts with (no summer).
const quartersPerYear = 3

// Location identifies one quarter slot in the plan grid. A negative Year is a
// sentinel meaning "not on the grid" (a course dragged in from search or the
// bookmark list).
type Location struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// OffGrid reports whether the location is the off-grid sentinel.
func (l Location) OffGrid() bool {
	return l.Year < 0
}

// Bookmarks holds the two disjoint bookmark sets of a plan.
type Bookmarks struct {
	NoCredit  *CourseSet `json:"noCredit"`
	ForCredit *CourseSet `json:"forCredit"`
}

// Plan is the full user-owned grid of years, quarters and courses plus the
// bookmark sets. Values published by the Store are never mutated in place;
// treat any Plan you are handed as immutable.
type Plan struct {
	Courses   [][][]catalog.Course `json:"courses"`
	Bookmarks Bookmarks            `json:"bookmarks"`
}

// New returns an empty plan with the default grid of four years of three
// quarters each and empty bookmark sets.
func New() *Plan {
	courses := make([][][]catalog.Course, DefaultYears)
	for y := range courses {
		courses[y] = emptyYear()
	}
	return &Plan{
		Courses: courses,
		Bookmarks: Bookmarks{
			NoCredit:  NewCourseSet(),
			ForCredit: NewCourseSet(),
		},
	}
}

func emptyYear() [][]catalog.Course {
	return make([][]catalog.Course, quartersPerYear)
}

// Clone returns a deep copy of the plan's structure. Course values are copied
// by value; their Tags slices are shared, which is safe because tags are never
// mutated after a course enters a plan.
func (p *Plan) Clone() *Plan {
	courses := make([][][]catalog.Course, len(p.Courses))
	for y, year := range p.Courses {
		courses[y] = make([][]catalog.Course, len(year))
		for q, quarter := range year {
			courses[y][q] = append([]catalog.Course(nil), quarter...)
		}
	}
	return &Plan{
		Courses: courses,
		Bookmarks: Bookmarks{
			NoCredit:  p.Bookmarks.NoCredit.Clone(),
			ForCredit: p.Bookmarks.ForCredit.Clone(),
		},
	}
}

// Quarter returns the course list at the given location, or nil when the
// location is out of range.
func (p *Plan) Quarter(loc Location) []catalog.Course {
	if loc.Year < 0 || loc.Year >= len(p.Courses) {
		return nil
	}
	year := p.Courses[loc.Year]
	if loc.Quarter < 0 || loc.Quarter >= len(year) {
		return nil
	}
	return year[loc.Quarter]
}

// contains reports whether the location addresses an existing quarter.
func (p *Plan) contains(loc Location) bool {
	return loc.Year >= 0 && loc.Year < len(p.Courses) &&
		loc.Quarter >= 0 && loc.Quarter < len(p.Courses[loc.Year])
}

// sortQuarter orders a quarter's course list for display: placeholders sort
// last, everything else by case-insensitive ID.
func sortQuarter(courses []catalog.Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		a, b := courses[i], courses[j]
		if a.Placeholder != b.Placeholder {
			return !a.Placeholder
		}
		return strings.ToLower(a.ID) < strings.ToLower(b.ID)
	})
}
