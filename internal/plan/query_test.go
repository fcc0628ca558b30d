package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/planboard/internal/catalog"
)

func TestQuarterCredits_RoundsHalfUp(t *testing.T) {
	quarter := []catalog.Course{
		{ID: "A 1", Units: "3.25"},
		{ID: "B 1", Units: "1.0"},
		{ID: "C 1", Units: "0.708333"},
	}

	// 4.958333 rounds half-up at the hundredths digit.
	assert.InDelta(t, 4.96, QuarterCredits(quarter), 1e-9)
}

func TestQuarterCredits_UnparsableUnitsCountAsZero(t *testing.T) {
	quarter := []catalog.Course{
		{ID: "A 1", Units: "1.5"},
		{ID: "B 1", Units: "varies"},
	}

	assert.InDelta(t, 1.5, QuarterCredits(quarter), 1e-9)
}

func TestTotalCredits_IncludesForCreditBookmarks(t *testing.T) {
	p := New()
	p.Courses[0][0] = []catalog.Course{{ID: "A 1", Units: "1"}}
	p.Courses[3][2] = []catalog.Course{{ID: "B 1", Units: "1.34"}}
	p.Bookmarks.ForCredit.Add(catalog.Course{ID: "C 1", Units: "1"})
	p.Bookmarks.NoCredit.Add(catalog.Course{ID: "D 1", Units: "99"})

	assert.InDelta(t, 3.34, TotalCredits(p), 1e-9)
	assert.InDelta(t, 1.0, ExtraCredits(p), 1e-9)
}

func TestFindDuplicate(t *testing.T) {
	p := New()
	p.Courses[1][2] = []catalog.Course{{ID: "COMP_SCI 213", Units: "1"}}

	loc := FindDuplicate(catalog.Course{ID: "COMP_SCI 213"}, p)
	require.NotNil(t, loc)
	assert.Equal(t, Location{Year: 1, Quarter: 2}, *loc)

	assert.Nil(t, FindDuplicate(catalog.Course{ID: "COMP_SCI 111"}, p))
}

func TestDistributionFulfillment_SingleLinearPass(t *testing.T) {
	p := New()
	p.Courses[0][0] = []catalog.Course{
		{ID: "CHEM 151", Units: "1", Distros: strPtr("1")},
		{ID: "PHIL 110", Units: "1", Distros: strPtr("25")},
	}
	p.Courses[2][1] = []catalog.Course{
		{ID: "ENGLISH 210-1", Units: "1", Distros: strPtr("6")},
		{ID: "COMP_SCI 213", Units: "1"},
	}

	groups := DistributionFulfillment(p)
	require.Len(t, groups, len(DistroAreas))

	byArea := make(map[string][]string)
	for _, g := range groups {
		byArea[g.Area] = g.CourseIDs
	}

	assert.Equal(t, []string{"CHEM 151"}, byArea["Natural Sciences"])
	assert.Equal(t, []string{"PHIL 110"}, byArea["Formal Studies"])
	assert.Equal(t, []string{"PHIL 110"}, byArea["Ethics and Values"])
	assert.Equal(t, []string{"ENGLISH 210-1"}, byArea["Literature and Fine Arts"])
	assert.Empty(t, byArea["Historical Studies"])
}

func TestDistributionFulfillment_IgnoresBogusDigits(t *testing.T) {
	p := New()
	p.Courses[0][0] = []catalog.Course{{ID: "A 1", Units: "1", Distros: strPtr("09")}}

	groups := DistributionFulfillment(p)
	for _, g := range groups {
		assert.Empty(t, g.CourseIDs, "area %s", g.Area)
	}
}
