package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/planboard/planboard/internal/catalog"
	"github.com/planboard/planboard/internal/plan"
)

// Plan operation actions accepted by PlanOperationRequest.
const (
	PlanActionAddCourse      = "add_course"
	PlanActionRemoveCourse   = "remove_course"
	PlanActionMoveCourse     = "move_course"
	PlanActionAddYear        = "add_year"
	PlanActionAddSummer      = "add_summer"
	PlanActionRemoveSummer   = "remove_summer"
	PlanActionAddBookmark    = "add_bookmark"
	PlanActionRemoveBookmark = "remove_bookmark"
	PlanActionClearYear      = "clear_year"
	PlanActionClear          = "clear"
)

// PlanContentRequest carries a serialized plan to decode
type PlanContentRequest struct {
	Content string `json:"content" example:"y0q0=51_111,23_228-1&y0q1=51_211"`
}

// PlanLocation identifies a quarter slot within a plan
type PlanLocation struct {
	Year    int `json:"year" example:"0"`
	Quarter int `json:"quarter" example:"1"`
}

// PlanOperationRequest applies a single mutation to a serialized plan
type PlanOperationRequest struct {
	Content   string        `json:"content" example:"y0q0=51_111"`
	Action    string        `json:"action" binding:"required" example:"add_course"`
	CourseID  string        `json:"courseId,omitempty" example:"COMP_SCI 211"`
	Location  *PlanLocation `json:"location,omitempty"`
	From      *PlanLocation `json:"from,omitempty"`
	To        *PlanLocation `json:"to,omitempty"`
	Index     *int          `json:"index,omitempty" example:"0"`
	Year      *int          `json:"year,omitempty" example:"2"`
	ForCredit bool          `json:"forCredit,omitempty" example:"true"`
	Force     bool          `json:"force,omitempty" example:"false"`
}

// PlanConfirmation describes a soft constraint that blocked an operation
type PlanConfirmation struct {
	Reason    string        `json:"reason" example:"You already have COMP_SCI 111 on your plan during the fall quarter of your first year."`
	Duplicate *PlanLocation `json:"duplicate,omitempty"`
	Units     float64       `json:"units,omitempty" example:"6.5"`
}

// PlanOperationResponse returns the updated plan after a mutation
type PlanOperationResponse struct {
	Content      string            `json:"content" example:"y0q0=51_111,51_211"`
	Plan         *PlanView         `json:"plan"`
	Confirmation *PlanConfirmation `json:"confirmation,omitempty"`
}

// CourseView is a course as rendered inside a decoded plan
type CourseView struct {
	ID          string   `json:"id" example:"COMP_SCI 111"`
	Name        string   `json:"name" example:"Fundamentals of Computer Programming"`
	Units       string   `json:"units" example:"1"`
	Distros     *string  `json:"distros,omitempty" example:"2"`
	Placeholder bool     `json:"placeholder,omitempty"`
	Repeatable  bool     `json:"repeatable,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Color       string   `json:"color,omitempty" example:"51"`
}

// PlanView is a fully decoded plan with derived statistics
type PlanView struct {
	Years        [][][]CourseView `json:"years"`
	Bookmarks    BookmarksView    `json:"bookmarks"`
	TotalCredits float64          `json:"totalCredits" example:"12.5"`
}

// BookmarksView holds the two bookmark sets of a plan
type BookmarksView struct {
	NoCredit  []CourseView `json:"noCredit"`
	ForCredit []CourseView `json:"forCredit"`
}

// SavedPlanRequest creates or updates a persisted plan slot
type SavedPlanRequest struct {
	Name    string `json:"name" binding:"required,max=100" example:"CS + Math double major"`
	Content string `json:"content" example:"y0q0=51_111"`
}

// SavedPlanResponse represents a persisted plan slot
type SavedPlanResponse struct {
	ID        uuid.UUID `json:"id" example:"8f14e45f-ceea-467f-a8fb-9acdbefad2c1"`
	Name      string    `json:"name" example:"CS + Math double major"`
	Content   string    `json:"content" example:"y0q0=51_111"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCourseView maps a catalog course into its plan rendering.
func NewCourseView(c catalog.Course, color string) CourseView {
	return CourseView{
		ID:          c.ID,
		Name:        c.Name,
		Units:       c.Units,
		Distros:     c.Distros,
		Placeholder: c.Placeholder,
		Repeatable:  c.Repeatable,
		Tags:        c.Tags,
		Color:       color,
	}
}

// NewPlanView renders a decoded plan with per-course colors and totals.
func NewPlanView(p *plan.Plan, cat *catalog.Catalog) *PlanView {
	years := make([][][]CourseView, len(p.Courses))
	for y, yearCourses := range p.Courses {
		years[y] = make([][]CourseView, len(yearCourses))
		for q, quarter := range yearCourses {
			views := make([]CourseView, 0, len(quarter))
			for _, c := range quarter {
				views = append(views, NewCourseView(c, cat.GetColor(c.ID)))
			}
			years[y][q] = views
		}
	}
	return &PlanView{
		Years:        years,
		Bookmarks:    newBookmarksView(p, cat),
		TotalCredits: plan.TotalCredits(p),
	}
}

func newBookmarksView(p *plan.Plan, cat *catalog.Catalog) BookmarksView {
	view := BookmarksView{
		NoCredit:  make([]CourseView, 0, p.Bookmarks.NoCredit.Len()),
		ForCredit: make([]CourseView, 0, p.Bookmarks.ForCredit.Len()),
	}
	for _, c := range p.Bookmarks.NoCredit.Courses() {
		view.NoCredit = append(view.NoCredit, NewCourseView(c, cat.GetColor(c.ID)))
	}
	for _, c := range p.Bookmarks.ForCredit.Courses() {
		view.ForCredit = append(view.ForCredit, NewCourseView(c, cat.GetColor(c.ID)))
	}
	return view
}
