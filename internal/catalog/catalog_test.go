package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := Load(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	return cat
}

func TestLoad(t *testing.T) {
	cat := loadTestCatalog(t)
	assert.Equal(t, 8, cat.Size())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestGetCourse(t *testing.T) {
	cat := loadTestCatalog(t)

	course := cat.GetCourse("COMP_SCI 213")
	require.NotNil(t, course)
	assert.Equal(t, "Introduction to Computer Systems", course.Name)
	assert.Equal(t, "1", course.Units)
	require.NotNil(t, course.Prereqs)
	assert.Equal(t, "COMP_SCI 211", *course.Prereqs)

	assert.Nil(t, cat.GetCourse("COMP_SCI 999"))
}

func TestGetCourse_ReturnsCopy(t *testing.T) {
	cat := loadTestCatalog(t)

	course := cat.GetCourse("COMP_SCI 111")
	require.NotNil(t, course)
	course.Tags = []string{"w1"}
	course.Name = "mutated"

	again := cat.GetCourse("COMP_SCI 111")
	assert.Nil(t, again.Tags)
	assert.Equal(t, "Fundamentals of Computer Programming I", again.Name)
}

func TestSubjectCodes(t *testing.T) {
	cat := loadTestCatalog(t)

	code, ok := cat.SubjectCode("COMP_SCI")
	require.True(t, ok)
	assert.Equal(t, "51", code)

	subject, ok := cat.SubjectForCode("23")
	require.True(t, ok)
	assert.Equal(t, "MATH", subject)

	_, ok = cat.SubjectCode("BASKET_WEAVING")
	assert.False(t, ok)
	_, ok = cat.SubjectForCode("999")
	assert.False(t, ok)
}

func TestGetColor(t *testing.T) {
	cat := loadTestCatalog(t)

	assert.Equal(t, "purple", cat.GetColor("COMP_SCI 213"))
	assert.Equal(t, "blue", cat.GetColor("MATH 300"))
	assert.Equal(t, "", cat.GetColor("UNKNOWN 1"))
}

func TestCourseSubjectAndNumber(t *testing.T) {
	course := Course{ID: "MATH 228-1"}
	assert.Equal(t, "MATH", course.Subject())
	assert.Equal(t, "228-1", course.Number())

	odd := Course{ID: "NOSPACE"}
	assert.Equal(t, "NOSPACE", odd.Subject())
	assert.Equal(t, "", odd.Number())
}
