package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/planboard/internal/catalog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(DefaultLimits())
}

func applyAdd(t *testing.T, s *Store, course catalog.Course, loc Location) {
	t.Helper()
	_, err := s.ApplyAddCourse(course, loc)
	require.NoError(t, err)
}

func TestStore_AddCourseDuplicateNeedsConfirmation(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	course := mustCourse(t, cat, "COMP_SCI 213")

	applyAdd(t, s, course, Location{Year: 0, Quarter: 0})

	p, confirmation, err := s.AddCourse(course, Location{Year: 1, Quarter: 1})
	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Nil(t, p)
	assert.Contains(t, confirmation.Reason, "COMP_SCI 213")
	assert.Contains(t, confirmation.Reason, "fall quarter")
	assert.Contains(t, confirmation.Reason, "first year")
	require.NotNil(t, confirmation.Duplicate)
	assert.Equal(t, Location{Year: 0, Quarter: 0}, *confirmation.Duplicate)

	// The collision left the plan untouched.
	assert.Empty(t, s.Plan().Courses[1][1])

	// Forcing through the unconditional mutator keeps both occurrences.
	p, err = s.ApplyAddCourse(course, Location{Year: 1, Quarter: 1})
	require.NoError(t, err)
	assert.Len(t, p.Courses[0][0], 1)
	assert.Len(t, p.Courses[1][1], 1)
}

func TestStore_RepeatableAndPlaceholderSkipDuplicateCheck(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	repeatable := mustCourse(t, cat, "MATH 300")

	applyAdd(t, s, repeatable, Location{Year: 0, Quarter: 0})
	p, confirmation, err := s.AddCourse(repeatable, Location{Year: 0, Quarter: 1})
	require.NoError(t, err)
	assert.Nil(t, confirmation)
	assert.Len(t, p.Courses[0][1], 1)

	placeholder := catalog.Course{ID: "PLACEHOLDER A", Units: "1", Placeholder: true}
	applyAdd(t, s, placeholder, Location{Year: 1, Quarter: 0})
	_, confirmation, err = s.AddCourse(placeholder, Location{Year: 1, Quarter: 1})
	require.NoError(t, err)
	assert.Nil(t, confirmation)
}

func TestStore_AddCourseUnitCap(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	loc := Location{Year: 0, Quarter: 0}

	applyAdd(t, s, catalog.Course{ID: "CHEM 171", Units: "2.5"}, loc)
	applyAdd(t, s, catalog.Course{ID: "CHEM 181", Units: "2.5"}, loc)

	added := mustCourse(t, cat, "COMP_SCI 111")
	p, confirmation, err := s.AddCourse(added, loc)
	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Nil(t, p)
	assert.InDelta(t, 6.0, confirmation.Units, 1e-9)

	p, err = s.ApplyAddCourse(added, loc)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, QuarterCredits(p.Courses[0][0]), 1e-9)
}

func TestStore_QuarterSortsPlaceholdersLast(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	loc := Location{Year: 0, Quarter: 0}

	applyAdd(t, s, catalog.Course{ID: "PLACEHOLDER A", Units: "1", Placeholder: true}, loc)
	applyAdd(t, s, mustCourse(t, cat, "COMP_SCI 111"), loc)

	ids := quarterIDs(s.Plan().Courses[0][0])
	assert.Equal(t, []string{"COMP_SCI 111", "PLACEHOLDER A"}, ids)
}

func TestStore_RemoveCourse(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	loc := Location{Year: 0, Quarter: 0}

	applyAdd(t, s, mustCourse(t, cat, "COMP_SCI 111"), loc)
	applyAdd(t, s, mustCourse(t, cat, "MATH 228-1"), loc)

	p, err := s.RemoveCourse(loc, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"MATH 228-1"}, quarterIDs(p.Courses[0][0]))

	_, err = s.RemoveCourse(loc, 5)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.RemoveCourse(Location{Year: 9, Quarter: 0}, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStore_MoveCourseOnGrid(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	course := mustCourse(t, cat, "COMP_SCI 211")
	from := Location{Year: 0, Quarter: 0}
	to := Location{Year: 2, Quarter: 1}

	applyAdd(t, s, course, from)

	p, confirmation, err := s.MoveCourse(course, from, to)
	require.NoError(t, err)
	assert.Nil(t, confirmation)
	assert.Empty(t, p.Courses[0][0])
	assert.Equal(t, []string{"COMP_SCI 211"}, quarterIDs(p.Courses[2][1]))
}

func TestStore_MoveCourseFromOffGridSkipsRemoval(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	course := mustCourse(t, cat, "COMP_SCI 211")

	// Dragged in from search: the sentinel year means no removal step runs.
	p, confirmation, err := s.MoveCourse(course, Location{Year: -1, Quarter: 0}, Location{Year: 0, Quarter: 2})
	require.NoError(t, err)
	assert.Nil(t, confirmation)
	assert.Equal(t, []string{"COMP_SCI 211"}, quarterIDs(p.Courses[0][2]))
}

func TestStore_MoveCourseOntoItselfIsNoOp(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	course := mustCourse(t, cat, "COMP_SCI 211")
	loc := Location{Year: 0, Quarter: 0}

	applyAdd(t, s, course, loc)
	before := s.Plan()

	p, confirmation, err := s.MoveCourse(course, loc, loc)
	require.NoError(t, err)
	assert.Nil(t, confirmation)
	assert.Same(t, before, p)
}

func TestStore_AddYearLimit(t *testing.T) {
	s := NewStore(Limits{MaxYears: 5, MaxUnitsPerQuarter: 5.5})

	p, err := s.AddYear()
	require.NoError(t, err)
	assert.Len(t, p.Courses, 5)
	assert.Len(t, p.Courses[4], 3)

	_, err = s.AddYear()
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestStore_SummerQuarters(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)

	p, err := s.AddSummerQuarter(1)
	require.NoError(t, err)
	assert.Len(t, p.Courses[1], 4)

	// Adding again is a no-op success.
	p2, err := s.AddSummerQuarter(1)
	require.NoError(t, err)
	assert.Same(t, p, p2)

	applyAdd(t, s, mustCourse(t, cat, "CHEM 151"), Location{Year: 1, Quarter: QuarterSummer})

	p, err = s.RemoveSummerQuarter(1)
	require.NoError(t, err)
	assert.Len(t, p.Courses[1], 3)
	assert.Nil(t, FindDuplicate(mustCourse(t, cat, "CHEM 151"), p))

	_, err = s.AddSummerQuarter(42)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStore_BookmarksIdempotent(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	course := mustCourse(t, cat, "COMP_SCI 111")

	_, err := s.AddBookmark(course, false)
	require.NoError(t, err)
	p, err := s.AddBookmark(course, false)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Bookmarks.NoCredit.Len())

	// The two sets are independent.
	p, err = s.AddBookmark(course, true)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Bookmarks.ForCredit.Len())

	p = s.RemoveBookmark(course.ID, false)
	assert.Equal(t, 0, p.Bookmarks.NoCredit.Len())
	assert.Equal(t, 1, p.Bookmarks.ForCredit.Len())

	// Removing an absent bookmark is fine.
	p = s.RemoveBookmark(course.ID, false)
	assert.Equal(t, 0, p.Bookmarks.NoCredit.Len())
}

func TestStore_CustomCoursesCannotBeBookmarked(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddBookmark(catalog.Course{ID: "MY_COURSE 1", Units: "1", Custom: true}, false)
	assert.ErrorIs(t, err, ErrCustomCourse)
}

func TestStore_ClearAndClearYear(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)

	applyAdd(t, s, mustCourse(t, cat, "COMP_SCI 111"), Location{Year: 0, Quarter: 0})
	applyAdd(t, s, mustCourse(t, cat, "CHEM 151"), Location{Year: 1, Quarter: 0})

	p, err := s.ClearYear(0)
	require.NoError(t, err)
	assert.Empty(t, p.Courses[0][0])
	assert.Len(t, p.Courses[1][0], 1)

	p = s.Clear()
	assert.Len(t, p.Courses, DefaultYears)
	assert.Empty(t, p.Courses[1][0])
	assert.Equal(t, 0, p.Bookmarks.NoCredit.Len())
}

func TestStore_SnapshotsStayValid(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)
	loc := Location{Year: 0, Quarter: 0}

	applyAdd(t, s, mustCourse(t, cat, "COMP_SCI 111"), loc)
	snapshot := s.Plan()

	applyAdd(t, s, mustCourse(t, cat, "MATH 228-1"), loc)

	// The earlier snapshot still shows the plan as it was.
	assert.Equal(t, []string{"COMP_SCI 111"}, quarterIDs(snapshot.Courses[0][0]))
	assert.Equal(t, []string{"COMP_SCI 111", "MATH 228-1"}, quarterIDs(s.Plan().Courses[0][0]))
}

func TestStore_ObserversNotified(t *testing.T) {
	cat := testCatalog()
	s := newTestStore(t)

	var seen []*Plan
	s.OnChange(func(p *Plan) { seen = append(seen, p) })

	applyAdd(t, s, mustCourse(t, cat, "COMP_SCI 111"), Location{Year: 0, Quarter: 0})
	s.Clear()

	require.Len(t, seen, 2)
	assert.Same(t, s.Plan(), seen[1])
}
