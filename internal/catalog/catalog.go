package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Catalog errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrUnknownSubject = errors.New("unknown subject")
)

// Course represents a single course in the catalog. Courses are immutable
// after the catalog is loaded; a Course value handed out by the catalog is a
// copy and may be annotated freely by the caller.
type Course struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Units       string  `json:"units"`
	Description string  `json:"description,omitempty"`
	Prereqs     *string `json:"prereqs,omitempty"`
	Distros     *string `json:"distros,omitempty"`
	Placeholder bool    `json:"placeholder,omitempty"`
	Repeatable  bool    `json:"repeatable,omitempty"`
	Custom      bool    `json:"custom,omitempty"`

	// Tags holds opaque positional metadata attached when a plan is decoded
	// (section-variant markers and the like). Never sourced from the catalog
	// dataset itself.
	Tags []string `json:"tags,omitempty"`
}

// Subject returns the subject prefix of the course ID ("COMP_SCI 213" -> "COMP_SCI").
func (c Course) Subject() string {
	if i := strings.IndexByte(c.ID, ' '); i >= 0 {
		return c.ID[:i]
	}
	return c.ID
}

// Number returns the catalog number of the course ID ("COMP_SCI 213" -> "213").
func (c Course) Number() string {
	if i := strings.IndexByte(c.ID, ' '); i >= 0 {
		return c.ID[i+1:]
	}
	return ""
}

// Major holds per-subject metadata from the dataset.
type Major struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// dataset mirrors the JSON layout produced by the catalog scraper.
type dataset struct {
	Courses   []Course            `json:"courses"`
	Majors    map[string]Major    `json:"majors"`
	MajorIDs  map[string]string   `json:"major_ids"`
	Shortcuts map[string][]string `json:"shortcuts"`
}

// Catalog is the immutable course lookup table. It is loaded once at process
// start and safe for unsynchronized concurrent reads afterwards.
type Catalog struct {
	courses   []Course
	byID      map[string]int
	majors    map[string]Major
	majorIDs  map[string]string
	shortcuts map[string][]string
}

// Load reads and parses a catalog dataset from a JSON file.
func Load(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog dataset: %w", err)
	}

	var ds dataset
	if err := json.Unmarshal(content, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse catalog dataset: %w", err)
	}

	return New(ds.Courses, ds.Majors, ds.Shortcuts), nil
}

// New builds a catalog from already-parsed data. The reverse subject code
// table is derived from majors when the dataset does not carry one.
func New(courses []Course, majors map[string]Major, shortcuts map[string][]string) *Catalog {
	c := &Catalog{
		courses:   courses,
		byID:      make(map[string]int, len(courses)),
		majors:    majors,
		majorIDs:  make(map[string]string, len(majors)),
		shortcuts: shortcuts,
	}

	for i, course := range courses {
		c.byID[course.ID] = i
	}
	for subject, major := range majors {
		c.majorIDs[major.ID] = subject
	}

	return c
}

// GetCourse resolves a course by its canonical ID. Returns a copy of the
// catalog record, or nil if the ID does not resolve.
func (c *Catalog) GetCourse(id string) *Course {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	course := c.courses[i]
	return &course
}

// GetColor returns the display color tag for the course's subject prefix.
// The core never interprets this value, it is passed through to presentation.
func (c *Catalog) GetColor(id string) string {
	subject := id
	if i := strings.IndexByte(id, ' '); i >= 0 {
		subject = id[:i]
	}
	return c.majors[subject].Color
}

// SubjectCode maps a subject name to its short encoded form ("COMP_SCI" -> "51").
func (c *Catalog) SubjectCode(subject string) (string, bool) {
	major, ok := c.majors[subject]
	if !ok {
		return "", false
	}
	return major.ID, true
}

// SubjectForCode maps a short subject code back to the subject name.
func (c *Catalog) SubjectForCode(code string) (string, bool) {
	subject, ok := c.majorIDs[code]
	return subject, ok
}

// Size returns the number of courses in the catalog.
func (c *Catalog) Size() int {
	return len(c.courses)
}
