package plan

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/planboard/planboard/internal/catalog"
)

// Codec bounds. Decode grows the grid on demand but never past these, so a
// crafted link cannot inflate a plan beyond what the UI can render.
const (
	maxYearIndex    = 9
	maxQuarterIndex = 3
)

// DecodeStatus distinguishes the three decode outcomes. Callers must branch
// on exactly these: a malformed link is not the same as an absent one.
type DecodeStatus int

const (
	// DecodeOK means the input held plan data and all of it resolved.
	DecodeOK DecodeStatus = iota
	// DecodeEmpty means the input held no plan data at all.
	DecodeEmpty
	// DecodeMalformed means some token failed to resolve; no partial plan
	// is ever returned.
	DecodeMalformed
)

// DecodeResult is the outcome of decoding a serialized plan. Plan is non-nil
// only when Status is DecodeOK.
type DecodeResult struct {
	Status DecodeStatus
	Plan   *Plan
}

// Encode serializes a plan into its compact query-string form. Quarter slots
// become y{year}q{quarter} keys holding comma-joined course tokens; bookmark
// sets share the single f key. Empty quarters contribute no key.
func Encode(p *Plan, cat *catalog.Catalog) (string, error) {
	params := url.Values{}

	for y, year := range p.Courses {
		for q, quarter := range year {
			if len(quarter) == 0 {
				continue
			}
			tokens := make([]string, 0, len(quarter))
			for _, course := range quarter {
				token, err := encodeCourse(course, cat)
				if err != nil {
					return "", err
				}
				tokens = append(tokens, token)
			}
			params.Set(fmt.Sprintf("y%dq%d", y, q), strings.Join(tokens, ","))
		}
	}

	noCredit := p.Bookmarks.NoCredit.Courses()
	forCredit := p.Bookmarks.ForCredit.Courses()
	if len(noCredit) > 0 || len(forCredit) > 0 {
		noCreditTokens := make([]string, 0, len(noCredit))
		for _, course := range noCredit {
			token, err := encodeCourse(course, cat)
			if err != nil {
				return "", err
			}
			noCreditTokens = append(noCreditTokens, token)
		}
		forCreditTokens := make([]string, 0, len(forCredit))
		for _, course := range forCredit {
			token, err := encodeCourse(course, cat)
			if err != nil {
				return "", err
			}
			forCreditTokens = append(forCreditTokens, token)
		}
		params.Set("f", strings.Join(noCreditTokens, ",")+";"+strings.Join(forCreditTokens, ","))
	}

	return params.Encode(), nil
}

// encodeCourse maps a course to its {subjectCode}_{number} token, appending
// any attached tags verbatim.
func encodeCourse(course catalog.Course, cat *catalog.Catalog) (string, error) {
	code, ok := cat.SubjectCode(course.Subject())
	if !ok {
		return "", fmt.Errorf("%w: cannot encode %q", catalog.ErrUnknownSubject, course.ID)
	}

	token := code + "_" + course.Number()
	for _, tag := range course.Tags {
		token += "_" + tag
	}
	return token, nil
}

// Decode deserializes a plan from its query-string form. Any token that fails
// catalog resolution poisons the whole decode; the grid grows on demand for
// whatever y/q keys appear, in any order.
func Decode(raw string, cat *catalog.Catalog) DecodeResult {
	params, err := url.ParseQuery(raw)
	if err != nil {
		return DecodeResult{Status: DecodeMalformed}
	}

	p := New()
	loaded := false

	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch {
		case strings.HasPrefix(key, "y"):
			year, quarter, ok := parseGridKey(key)
			if !ok {
				return DecodeResult{Status: DecodeMalformed}
			}
			loaded = true

			courses := make([]catalog.Course, 0, 4)
			for _, token := range strings.Split(value, ",") {
				course := decodeCourse(token, cat)
				if course == nil {
					return DecodeResult{Status: DecodeMalformed}
				}
				courses = append(courses, *course)
			}
			sortQuarter(courses)

			growGrid(p, year, quarter)
			p.Courses[year][quarter] = courses

		case key == "f":
			loaded = true

			for i, list := range strings.Split(value, ";") {
				for _, token := range strings.Split(list, ",") {
					if token == "" {
						continue
					}
					course := decodeCourse(token, cat)
					if course == nil {
						return DecodeResult{Status: DecodeMalformed}
					}
					if i == 0 {
						p.Bookmarks.NoCredit.Add(*course)
					} else {
						p.Bookmarks.ForCredit.Add(*course)
					}
				}
			}
		}
	}

	if !loaded {
		return DecodeResult{Status: DecodeEmpty}
	}

	return DecodeResult{Status: DecodeOK, Plan: p}
}

// parseGridKey parses a y{Y}q{Q} key into its year and quarter indices.
func parseGridKey(key string) (year, quarter int, ok bool) {
	rest := key[1:]
	qi := strings.IndexByte(rest, 'q')
	if qi < 0 {
		return 0, 0, false
	}

	year, err := strconv.Atoi(rest[:qi])
	if err != nil || year < 0 || year > maxYearIndex {
		return 0, 0, false
	}
	quarter, err = strconv.Atoi(rest[qi+1:])
	if err != nil || quarter < 0 || quarter > maxQuarterIndex {
		return 0, 0, false
	}
	return year, quarter, true
}

// decodeCourse resolves one {subjectCode}_{number}[_{tag}]* token against the
// catalog. Returns nil when any part of the token fails to resolve.
func decodeCourse(token string, cat *catalog.Catalog) *catalog.Course {
	parts := strings.Split(token, "_")
	if len(parts) < 2 {
		return nil
	}

	subject, ok := cat.SubjectForCode(parts[0])
	if !ok {
		return nil
	}

	course := cat.GetCourse(subject + " " + parts[1])
	if course == nil {
		return nil
	}
	if len(parts) > 2 {
		course.Tags = parts[2:]
	}
	return course
}

// growGrid extends the plan's year and quarter slices so that the given
// location exists, filling intervening slots with empty quarters.
func growGrid(p *Plan, year, quarter int) {
	for len(p.Courses) < year+1 {
		p.Courses = append(p.Courses, emptyYear())
	}
	for len(p.Courses[year]) < quarter+1 {
		p.Courses[year] = append(p.Courses[year], []catalog.Course{})
	}
}
