package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planboard/planboard/internal/app/models"
	"github.com/planboard/planboard/internal/app/models/dto"
	"github.com/planboard/planboard/internal/catalog"
	"github.com/planboard/planboard/internal/pkg/apperrors"
	"github.com/planboard/planboard/internal/plan"
)

type fakePlanRepo struct {
	plans map[uuid.UUID]*models.SavedPlan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[uuid.UUID]*models.SavedPlan)}
}

func (r *fakePlanRepo) CreatePlan(_ context.Context, p *models.SavedPlan) error {
	for _, existing := range r.plans {
		if existing.UserID == p.UserID && existing.Name == p.Name {
			return apperrors.ErrPlanNameTaken
		}
	}
	p.ID = uuid.New()
	stored := *p
	r.plans[p.ID] = &stored
	return nil
}

func (r *fakePlanRepo) GetPlanByID(_ context.Context, id uuid.UUID) (*models.SavedPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, apperrors.ErrPlanNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePlanRepo) ListPlansByUser(_ context.Context, userID int64) ([]*models.SavedPlan, error) {
	var out []*models.SavedPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) UpdatePlan(_ context.Context, p *models.SavedPlan) error {
	if _, ok := r.plans[p.ID]; !ok {
		return apperrors.ErrPlanNotFound
	}
	stored := *p
	r.plans[p.ID] = &stored
	return nil
}

func (r *fakePlanRepo) DeletePlan(_ context.Context, id uuid.UUID) error {
	if _, ok := r.plans[id]; !ok {
		return apperrors.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

func strPtr(s string) *string { return &s }

func serviceCatalog() *catalog.Catalog {
	courses := []catalog.Course{
		{ID: "COMP_SCI 111", Name: "Fundamentals of Computer Programming I", Units: "1", Distros: strPtr("2")},
		{ID: "COMP_SCI 211", Name: "Fundamentals of Computer Programming II", Units: "1"},
		{ID: "MATH 228-1", Name: "Multivariable Differential Calculus", Units: "1", Distros: strPtr("2")},
		{ID: "ART 101", Name: "Studio Art", Units: "1", Custom: true},
	}
	majors := map[string]catalog.Major{
		"COMP_SCI": {ID: "51", Color: "purple"},
		"MATH":     {ID: "23", Color: "blue"},
	}
	return catalog.New(courses, majors, nil)
}

func newTestPlanService() (*PlanService, *fakePlanRepo) {
	repo := newFakePlanRepo()
	svc := NewPlanService(repo, serviceCatalog(), plan.DefaultLimits(), zerolog.Nop())
	return svc, repo
}

func TestDecodePlan(t *testing.T) {
	svc, _ := newTestPlanService()

	view, err := svc.DecodePlan("y0q0=51_111,23_228-1")
	require.NoError(t, err)
	require.Len(t, view.Years, 4)
	require.Len(t, view.Years[0][0], 2)
	assert.Equal(t, "COMP_SCI 111", view.Years[0][0][0].ID)
	assert.Equal(t, "51", view.Years[0][0][0].Color)
	assert.InDelta(t, 2.0, view.TotalCredits, 1e-9)
}

func TestDecodePlanEmptyContent(t *testing.T) {
	svc, _ := newTestPlanService()

	view, err := svc.DecodePlan("")
	require.NoError(t, err)
	assert.Len(t, view.Years, 4)
	assert.Zero(t, view.TotalCredits)
}

func TestDecodePlanMalformed(t *testing.T) {
	svc, _ := newTestPlanService()

	_, err := svc.DecodePlan("y0q0=99_999")
	assert.ErrorIs(t, err, apperrors.ErrMalformedPlan)
}

func TestApplyOperationAddCourse(t *testing.T) {
	svc, _ := newTestPlanService()

	resp, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Action:   dto.PlanActionAddCourse,
		CourseID: "COMP_SCI 111",
		Location: &dto.PlanLocation{Year: 0, Quarter: 0},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Confirmation)
	assert.Equal(t, "y0q0=51_111", resp.Content)
	assert.Equal(t, "COMP_SCI 111", resp.Plan.Years[0][0][0].ID)
}

func TestApplyOperationDuplicateNeedsConfirmation(t *testing.T) {
	svc, _ := newTestPlanService()

	resp, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Content:  "y0q0=51_111",
		Action:   dto.PlanActionAddCourse,
		CourseID: "COMP_SCI 111",
		Location: &dto.PlanLocation{Year: 1, Quarter: 0},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Confirmation)
	assert.Contains(t, resp.Confirmation.Reason, "COMP_SCI 111")
	// Content is untouched until the caller confirms
	assert.Equal(t, "y0q0=51_111", resp.Content)

	forced, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Content:  "y0q0=51_111",
		Action:   dto.PlanActionAddCourse,
		CourseID: "COMP_SCI 111",
		Location: &dto.PlanLocation{Year: 1, Quarter: 0},
		Force:    true,
	})
	require.NoError(t, err)
	assert.Nil(t, forced.Confirmation)
	assert.Equal(t, "y0q0=51_111&y1q0=51_111", forced.Content)
}

func TestApplyOperationUnknownCourse(t *testing.T) {
	svc, _ := newTestPlanService()

	_, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Action:   dto.PlanActionAddCourse,
		CourseID: "COMP_SCI 999",
		Location: &dto.PlanLocation{Year: 0, Quarter: 0},
	})
	assert.ErrorIs(t, err, catalog.ErrCourseNotFound)
}

func TestApplyOperationMoveCourse(t *testing.T) {
	svc, _ := newTestPlanService()

	resp, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Content:  "y0q0=51_111",
		Action:   dto.PlanActionMoveCourse,
		CourseID: "COMP_SCI 111",
		From:     &dto.PlanLocation{Year: 0, Quarter: 0},
		To:       &dto.PlanLocation{Year: 0, Quarter: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "y0q2=51_111", resp.Content)
}

func TestApplyOperationBookmarks(t *testing.T) {
	svc, _ := newTestPlanService()

	resp, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Action:    dto.PlanActionAddBookmark,
		CourseID:  "MATH 228-1",
		ForCredit: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Plan.Bookmarks.ForCredit, 1)
	assert.Equal(t, "MATH 228-1", resp.Plan.Bookmarks.ForCredit[0].ID)
	assert.InDelta(t, 1.0, resp.Plan.TotalCredits, 1e-9)

	removed, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Content:   resp.Content,
		Action:    dto.PlanActionRemoveBookmark,
		CourseID:  "MATH 228-1",
		ForCredit: true,
	})
	require.NoError(t, err)
	assert.Empty(t, removed.Plan.Bookmarks.ForCredit)
}

func TestApplyOperationAddYearAndSummer(t *testing.T) {
	svc, _ := newTestPlanService()

	resp, err := svc.ApplyOperation(&dto.PlanOperationRequest{Action: dto.PlanActionAddYear})
	require.NoError(t, err)
	assert.Len(t, resp.Plan.Years, 5)

	year := 0
	summer, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Action: dto.PlanActionAddSummer,
		Year:   &year,
	})
	require.NoError(t, err)
	assert.Len(t, summer.Plan.Years[0], 4)
}

func TestApplyOperationUnknownAction(t *testing.T) {
	svc, _ := newTestPlanService()

	_, err := svc.ApplyOperation(&dto.PlanOperationRequest{Action: "explode"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestApplyOperationMalformedContent(t *testing.T) {
	svc, _ := newTestPlanService()

	_, err := svc.ApplyOperation(&dto.PlanOperationRequest{
		Content: "y0q0=zz_1",
		Action:  dto.PlanActionClear,
	})
	assert.ErrorIs(t, err, apperrors.ErrMalformedPlan)
}

func TestSavedPlanLifecycle(t *testing.T) {
	svc, _ := newTestPlanService()
	ctx := context.Background()

	saved, err := svc.CreateSavedPlan(ctx, 1, &dto.SavedPlanRequest{
		Name:    "freshman year",
		Content: "y0q0=51_111",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, saved.ID)

	got, err := svc.GetSavedPlan(ctx, 1, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "y0q0=51_111", got.Content)

	updated, err := svc.UpdateSavedPlan(ctx, 1, saved.ID, &dto.SavedPlanRequest{
		Name:    "freshman year v2",
		Content: "y0q0=51_111&y0q1=51_211",
	})
	require.NoError(t, err)
	assert.Equal(t, "freshman year v2", updated.Name)

	require.NoError(t, svc.DeleteSavedPlan(ctx, 1, saved.ID))
	_, err = svc.GetSavedPlan(ctx, 1, saved.ID)
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}

func TestSavedPlanOwnership(t *testing.T) {
	svc, _ := newTestPlanService()
	ctx := context.Background()

	saved, err := svc.CreateSavedPlan(ctx, 1, &dto.SavedPlanRequest{
		Name:    "mine",
		Content: "y0q0=51_111",
	})
	require.NoError(t, err)

	// A different user must not see or touch the plan
	_, err = svc.GetSavedPlan(ctx, 2, saved.ID)
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)

	err = svc.DeleteSavedPlan(ctx, 2, saved.ID)
	assert.ErrorIs(t, err, apperrors.ErrPlanNotFound)
}

func TestSavedPlanRejectsMalformedContent(t *testing.T) {
	svc, _ := newTestPlanService()

	_, err := svc.CreateSavedPlan(context.Background(), 1, &dto.SavedPlanRequest{
		Name:    "broken",
		Content: "y0q0=99_999",
	})
	assert.ErrorIs(t, err, apperrors.ErrMalformedPlan)
}

func TestSavedPlanNameTaken(t *testing.T) {
	svc, _ := newTestPlanService()
	ctx := context.Background()

	_, err := svc.CreateSavedPlan(ctx, 1, &dto.SavedPlanRequest{Name: "plan a", Content: ""})
	require.NoError(t, err)

	_, err = svc.CreateSavedPlan(ctx, 1, &dto.SavedPlanRequest{Name: "plan a", Content: ""})
	assert.ErrorIs(t, err, apperrors.ErrPlanNameTaken)
}
