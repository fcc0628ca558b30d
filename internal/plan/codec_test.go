package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/planboard/internal/catalog"
)

func strPtr(s string) *string { return &s }

// testCatalog builds the small fixed catalog shared by the plan package tests.
func testCatalog() *catalog.Catalog {
	courses := []catalog.Course{
		{ID: "COMP_SCI 111", Name: "Fundamentals of Computer Programming I", Units: "1", Distros: strPtr("2")},
		{ID: "COMP_SCI 211", Name: "Fundamentals of Computer Programming II", Units: "1"},
		{ID: "COMP_SCI 213", Name: "Intro to Computer Systems", Units: "1"},
		{ID: "MATH 228-1", Name: "Multivariable Differential Calculus", Units: "1", Distros: strPtr("2")},
		{ID: "MATH 300", Name: "Foundations of Higher Mathematics", Units: "1", Repeatable: true},
		{ID: "ENGLISH 210-1", Name: "British Literary Traditions", Units: "1", Distros: strPtr("6")},
		{ID: "CHEM 151", Name: "Accelerated General Chemistry", Units: "1", Distros: strPtr("1")},
	}
	majors := map[string]catalog.Major{
		"COMP_SCI": {ID: "51", Color: "purple"},
		"MATH":     {ID: "23", Color: "blue"},
		"ENGLISH":  {ID: "13", Color: "red"},
		"CHEM":     {ID: "7", Color: "green"},
	}
	return catalog.New(courses, majors, map[string][]string{"cs": {"COMP_SCI"}})
}

func mustCourse(t *testing.T, cat *catalog.Catalog, id string) catalog.Course {
	t.Helper()
	course := cat.GetCourse(id)
	require.NotNil(t, course, "fixture course %s must resolve", id)
	return *course
}

func quarterIDs(courses []catalog.Course) []string {
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestCodec_RoundTrip(t *testing.T) {
	cat := testCatalog()

	p := New()
	p.Courses[0][0] = []catalog.Course{
		mustCourse(t, cat, "COMP_SCI 111"),
		mustCourse(t, cat, "MATH 228-1"),
	}
	p.Courses[1][2] = []catalog.Course{mustCourse(t, cat, "ENGLISH 210-1")}
	p.Bookmarks.NoCredit.Add(mustCourse(t, cat, "CHEM 151"))
	p.Bookmarks.ForCredit.Add(mustCourse(t, cat, "MATH 300"))

	encoded, err := Encode(p, cat)
	require.NoError(t, err)

	result := Decode(encoded, cat)
	require.Equal(t, DecodeOK, result.Status)

	decoded := result.Plan
	assert.Len(t, decoded.Courses, DefaultYears)
	assert.Equal(t, []string{"COMP_SCI 111", "MATH 228-1"}, quarterIDs(decoded.Courses[0][0]))
	assert.Equal(t, []string{"ENGLISH 210-1"}, quarterIDs(decoded.Courses[1][2]))
	assert.Empty(t, decoded.Courses[0][1])
	assert.True(t, decoded.Bookmarks.NoCredit.Contains("CHEM 151"))
	assert.True(t, decoded.Bookmarks.ForCredit.Contains("MATH 300"))
	assert.Equal(t, 1, decoded.Bookmarks.NoCredit.Len())
	assert.Equal(t, 1, decoded.Bookmarks.ForCredit.Len())
}

func TestCodec_DecodeFailsFast(t *testing.T) {
	cat := testCatalog()

	// One resolvable token plus one unresolvable token poisons the whole
	// decode; no partial plan comes back.
	result := Decode("y0q0=51_111,99_999", cat)
	assert.Equal(t, DecodeMalformed, result.Status)
	assert.Nil(t, result.Plan)
}

func TestCodec_EmptyVersusMalformed(t *testing.T) {
	cat := testCatalog()

	assert.Equal(t, DecodeEmpty, Decode("", cat).Status)
	assert.Equal(t, DecodeEmpty, Decode("theme=dark", cat).Status)
	assert.Equal(t, DecodeMalformed, Decode("y0q0=zz_1", cat).Status)
}

func TestCodec_DecodeGrowsGrid(t *testing.T) {
	cat := testCatalog()

	result := Decode("y5q2=51_111", cat)
	require.Equal(t, DecodeOK, result.Status)

	p := result.Plan
	require.Len(t, p.Courses, 6)
	for y := 0; y < 5; y++ {
		require.Len(t, p.Courses[y], 3)
		for q := range p.Courses[y] {
			assert.Empty(t, p.Courses[y][q], "y%dq%d should be empty", y, q)
		}
	}
	assert.Empty(t, p.Courses[5][0])
	assert.Empty(t, p.Courses[5][1])
	assert.Equal(t, []string{"COMP_SCI 111"}, quarterIDs(p.Courses[5][2]))
}

func TestCodec_DecodeSortsQuarter(t *testing.T) {
	cat := testCatalog()

	result := Decode("y0q0=23_228-1,51_111", cat)
	require.Equal(t, DecodeOK, result.Status)
	assert.Equal(t, []string{"COMP_SCI 111", "MATH 228-1"}, quarterIDs(result.Plan.Courses[0][0]))
}

func TestCodec_BookmarksOnlyIsNotEmpty(t *testing.T) {
	cat := testCatalog()

	result := Decode("f=51_111%3B23_300", cat)
	require.Equal(t, DecodeOK, result.Status)
	assert.True(t, result.Plan.Bookmarks.NoCredit.Contains("COMP_SCI 111"))
	assert.True(t, result.Plan.Bookmarks.ForCredit.Contains("MATH 300"))

	// A one-sided bookmark list keeps the separator.
	result = Decode("f=51_111%3B", cat)
	require.Equal(t, DecodeOK, result.Status)
	assert.Equal(t, 1, result.Plan.Bookmarks.NoCredit.Len())
	assert.Equal(t, 0, result.Plan.Bookmarks.ForCredit.Len())
}

func TestCodec_TagsRoundTripVerbatim(t *testing.T) {
	cat := testCatalog()

	result := Decode("y0q0=51_111_w1_x", cat)
	require.Equal(t, DecodeOK, result.Status)

	course := result.Plan.Courses[0][0][0]
	assert.Equal(t, []string{"w1", "x"}, course.Tags)

	encoded, err := Encode(result.Plan, cat)
	require.NoError(t, err)
	assert.Equal(t, "y0q0=51_111_w1_x", encoded)
}

func TestCodec_BadGridKeys(t *testing.T) {
	cat := testCatalog()

	for _, raw := range []string{
		"yXq0=51_111",
		"y0qX=51_111",
		"y0=51_111",
		"y0q4=51_111",
		"y10q0=51_111",
	} {
		assert.Equal(t, DecodeMalformed, Decode(raw, cat).Status, "input %q", raw)
	}
}

func TestCodec_EncodeRejectsUnknownSubject(t *testing.T) {
	cat := testCatalog()

	p := New()
	p.Courses[0][0] = []catalog.Course{{ID: "BASKET_WEAVING 101", Units: "1", Custom: true}}

	_, err := Encode(p, cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownSubject)
}

func TestCodec_EncodeSkipsEmptyQuarters(t *testing.T) {
	cat := testCatalog()

	p := New()
	p.Courses[2][1] = []catalog.Course{mustCourse(t, cat, "COMP_SCI 213")}

	encoded, err := Encode(p, cat)
	require.NoError(t, err)
	assert.Equal(t, "y2q1=51_213", encoded)
}
