package plan

import (
	"errors"
	"fmt"

	"github.com/planboard/planboard/internal/catalog"
)

// Store errors
var (
	ErrOutOfRange   = errors.New("position out of range")
	ErrLimitReached = errors.New("structural limit reached")
	ErrCustomCourse = errors.New("custom courses cannot be bookmarked")
)

// Limits holds the configurable soft and hard caps a store enforces.
type Limits struct {
	MaxYears           int
	MaxUnitsPerQuarter float64
}

// DefaultLimits returns the standard institutional caps.
func DefaultLimits() Limits {
	return Limits{MaxYears: 10, MaxUnitsPerQuarter: 5.5}
}

// Confirmation describes a soft-constraint collision. The operation was not
// applied; the caller may show Reason to the user and re-issue the mutation
// through the unconditional Apply variant.
type Confirmation struct {
	Reason    string    `json:"reason"`
	Duplicate *Location `json:"duplicate,omitempty"`
	Units     float64   `json:"units,omitempty"`
}

// Store owns the live plan value. Every mutation builds a fresh Plan and
// replaces the current one wholesale, so snapshots handed out earlier stay
// valid immutable views. A Store is not safe for concurrent use; the
// surrounding application drives it from a single goroutine.
type Store struct {
	limits    Limits
	current   *Plan
	observers []func(*Plan)
}

// NewStore creates a store holding the default empty plan.
func NewStore(limits Limits) *Store {
	return &Store{limits: limits, current: New()}
}

// Plan returns the current plan snapshot.
func (s *Store) Plan() *Plan {
	return s.current
}

// OnChange registers an observer invoked with the new plan after every change.
func (s *Store) OnChange(fn func(*Plan)) {
	s.observers = append(s.observers, fn)
}

// Replace swaps in a new plan wholesale, e.g. after a successful decode.
func (s *Store) Replace(p *Plan) *Plan {
	s.current = p
	for _, fn := range s.observers {
		fn(p)
	}
	return p
}

// CheckAddCourse reports whether adding the course at the location would trip
// a soft constraint. Returns nil when the add can proceed unprompted.
func (s *Store) CheckAddCourse(course catalog.Course, loc Location) (*Confirmation, error) {
	if !s.current.contains(loc) {
		return nil, ErrOutOfRange
	}

	if !course.Repeatable && !course.Placeholder {
		if dup := FindDuplicate(course, s.current); dup != nil {
			return &Confirmation{
				Reason: fmt.Sprintf("You already have %s on your plan during the %s quarter of your %s.",
					course.ID, QuarterName(dup.Quarter), YearName(dup.Year)),
				Duplicate: dup,
			}, nil
		}
	}

	return s.checkQuarterUnits(course, loc)
}

// checkQuarterUnits trips when the course would push the target quarter past
// the configured unit cap.
func (s *Store) checkQuarterUnits(course catalog.Course, loc Location) (*Confirmation, error) {
	units := round2(QuarterCredits(s.current.Quarter(loc)) + courseUnits(course))
	if units > s.limits.MaxUnitsPerQuarter {
		return &Confirmation{
			Reason: fmt.Sprintf("With this course, you'll have %g units worth of classes this quarter, which is over the maximum of %g units.",
				units, s.limits.MaxUnitsPerQuarter),
			Units: units,
		}, nil
	}
	return nil, nil
}

// ApplyAddCourse inserts the course unconditionally and re-sorts the quarter.
func (s *Store) ApplyAddCourse(course catalog.Course, loc Location) (*Plan, error) {
	if !s.current.contains(loc) {
		return nil, ErrOutOfRange
	}

	next := s.current.Clone()
	next.Courses[loc.Year][loc.Quarter] = append(next.Courses[loc.Year][loc.Quarter], course)
	sortQuarter(next.Courses[loc.Year][loc.Quarter])
	return s.Replace(next), nil
}

// AddCourse adds the course if no soft constraint trips. On a collision the
// plan is untouched and the confirmation carries the reason; the caller
// resumes via ApplyAddCourse once the user approves.
func (s *Store) AddCourse(course catalog.Course, loc Location) (*Plan, *Confirmation, error) {
	confirmation, err := s.CheckAddCourse(course, loc)
	if err != nil {
		return nil, nil, err
	}
	if confirmation != nil {
		return nil, confirmation, nil
	}

	p, err := s.ApplyAddCourse(course, loc)
	return p, nil, err
}

// RemoveCourse removes the course at the given position within a quarter.
func (s *Store) RemoveCourse(loc Location, index int) (*Plan, error) {
	if !s.current.contains(loc) {
		return nil, ErrOutOfRange
	}
	quarter := s.current.Quarter(loc)
	if index < 0 || index >= len(quarter) {
		return nil, ErrOutOfRange
	}

	next := s.current.Clone()
	q := next.Courses[loc.Year][loc.Quarter]
	next.Courses[loc.Year][loc.Quarter] = append(q[:index], q[index+1:]...)
	return s.Replace(next), nil
}

// RemoveCourseByID removes the first course with the given ID from a quarter.
func (s *Store) RemoveCourseByID(loc Location, id string) (*Plan, error) {
	if !s.current.contains(loc) {
		return nil, ErrOutOfRange
	}
	for i, course := range s.current.Quarter(loc) {
		if course.ID == id {
			return s.RemoveCourse(loc, i)
		}
	}
	return nil, ErrOutOfRange
}

// CheckMoveCourse reports whether moving the course to the destination would
// trip the unit cap. The duplicate check does not apply to moves: the course
// is already on the plan.
func (s *Store) CheckMoveCourse(course catalog.Course, to Location) (*Confirmation, error) {
	if !s.current.contains(to) {
		return nil, ErrOutOfRange
	}
	return s.checkQuarterUnits(course, to)
}

// ApplyMoveCourse moves the course unconditionally. An off-grid from location
// (negative year) means the course came from search or the bookmarks and no
// removal step runs.
func (s *Store) ApplyMoveCourse(course catalog.Course, from, to Location) (*Plan, error) {
	if !s.current.contains(to) {
		return nil, ErrOutOfRange
	}

	next := s.current.Clone()
	if !from.OffGrid() {
		if !next.contains(from) {
			return nil, ErrOutOfRange
		}
		removed := false
		q := next.Courses[from.Year][from.Quarter]
		for i, existing := range q {
			if existing.ID == course.ID {
				next.Courses[from.Year][from.Quarter] = append(q[:i], q[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			return nil, ErrOutOfRange
		}
	}

	next.Courses[to.Year][to.Quarter] = append(next.Courses[to.Year][to.Quarter], course)
	sortQuarter(next.Courses[to.Year][to.Quarter])
	return s.Replace(next), nil
}

// MoveCourse moves the course with the same confirmation semantics as
// AddCourse. Moving a course onto its own quarter is a no-op.
func (s *Store) MoveCourse(course catalog.Course, from, to Location) (*Plan, *Confirmation, error) {
	if !from.OffGrid() && from == to {
		return s.current, nil, nil
	}

	confirmation, err := s.CheckMoveCourse(course, to)
	if err != nil {
		return nil, nil, err
	}
	if confirmation != nil {
		return nil, confirmation, nil
	}

	p, err := s.ApplyMoveCourse(course, from, to)
	return p, nil, err
}

// AddYear appends a new year with three empty quarters.
func (s *Store) AddYear() (*Plan, error) {
	if len(s.current.Courses) >= s.limits.MaxYears {
		return nil, ErrLimitReached
	}

	next := s.current.Clone()
	next.Courses = append(next.Courses, emptyYear())
	return s.Replace(next), nil
}

// AddSummerQuarter appends a fourth quarter to the given year. A year that
// already has one is left unchanged.
func (s *Store) AddSummerQuarter(year int) (*Plan, error) {
	if year < 0 || year >= len(s.current.Courses) {
		return nil, ErrOutOfRange
	}
	if len(s.current.Courses[year]) > QuarterSummer {
		return s.current, nil
	}

	next := s.current.Clone()
	next.Courses[year] = append(next.Courses[year], []catalog.Course{})
	return s.Replace(next), nil
}

// RemoveSummerQuarter drops the given year's summer quarter and everything in
// it. A year without one is left unchanged.
func (s *Store) RemoveSummerQuarter(year int) (*Plan, error) {
	if year < 0 || year >= len(s.current.Courses) {
		return nil, ErrOutOfRange
	}
	if len(s.current.Courses[year]) <= QuarterSummer {
		return s.current, nil
	}

	next := s.current.Clone()
	next.Courses[year] = next.Courses[year][:QuarterSummer]
	return s.Replace(next), nil
}

// AddBookmark inserts the course into one of the bookmark sets. Idempotent.
func (s *Store) AddBookmark(course catalog.Course, forCredit bool) (*Plan, error) {
	if course.Custom {
		return nil, ErrCustomCourse
	}

	next := s.current.Clone()
	if forCredit {
		next.Bookmarks.ForCredit.Add(course)
	} else {
		next.Bookmarks.NoCredit.Add(course)
	}
	return s.Replace(next), nil
}

// RemoveBookmark removes the course from one of the bookmark sets. Idempotent.
func (s *Store) RemoveBookmark(id string, forCredit bool) *Plan {
	next := s.current.Clone()
	if forCredit {
		next.Bookmarks.ForCredit.Remove(id)
	} else {
		next.Bookmarks.NoCredit.Remove(id)
	}
	return s.Replace(next)
}

// ClearYear empties one year back to three empty quarters.
func (s *Store) ClearYear(year int) (*Plan, error) {
	if year < 0 || year >= len(s.current.Courses) {
		return nil, ErrOutOfRange
	}

	next := s.current.Clone()
	next.Courses[year] = emptyYear()
	return s.Replace(next), nil
}

// Clear resets the store to the default empty plan.
func (s *Store) Clear() *Plan {
	return s.Replace(New())
}
