package plan

import (
	"encoding/json"

	"github.com/planboard/planboard/internal/catalog"
)

// CourseSet is an insertion-ordered set of courses keyed by course ID.
// Adding a course whose ID is already present is a no-op.
type CourseSet struct {
	order []string
	byID  map[string]catalog.Course
}

// NewCourseSet returns an empty course set.
func NewCourseSet() *CourseSet {
	return &CourseSet{byID: make(map[string]catalog.Course)}
}

// Add inserts the course if its ID is not already present.
func (s *CourseSet) Add(c catalog.Course) {
	if _, ok := s.byID[c.ID]; ok {
		return
	}
	s.byID[c.ID] = c
	s.order = append(s.order, c.ID)
}

// Remove deletes the course with the given ID if present.
func (s *CourseSet) Remove(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether a course with the given ID is in the set.
func (s *CourseSet) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of courses in the set.
func (s *CourseSet) Len() int {
	return len(s.order)
}

// Courses returns the set's courses in insertion order.
func (s *CourseSet) Courses() []catalog.Course {
	courses := make([]catalog.Course, 0, len(s.order))
	for _, id := range s.order {
		courses = append(courses, s.byID[id])
	}
	return courses
}

// Clone returns a copy of the set.
func (s *CourseSet) Clone() *CourseSet {
	clone := &CourseSet{
		order: append([]string(nil), s.order...),
		byID:  make(map[string]catalog.Course, len(s.byID)),
	}
	for id, c := range s.byID {
		clone.byID[id] = c
	}
	return clone
}

// MarshalJSON encodes the set as an ordered array of courses.
func (s *CourseSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Courses())
}

// UnmarshalJSON decodes an array of courses into the set.
func (s *CourseSet) UnmarshalJSON(data []byte) error {
	var courses []catalog.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return err
	}
	s.order = nil
	s.byID = make(map[string]catalog.Course, len(courses))
	for _, c := range courses {
		s.Add(c)
	}
	return nil
}
