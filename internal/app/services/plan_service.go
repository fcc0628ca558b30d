package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/planboard/planboard/internal/app/models"
	"github.com/planboard/planboard/internal/app/models/dto"
	"github.com/planboard/planboard/internal/catalog"
	"github.com/planboard/planboard/internal/pkg/apperrors"
	"github.com/planboard/planboard/internal/plan"
)

// SavedPlanStore is the saved plan persistence surface the plan service needs
type SavedPlanStore interface {
	CreatePlan(ctx context.Context, plan *models.SavedPlan) error
	GetPlanByID(ctx context.Context, id uuid.UUID) (*models.SavedPlan, error)
	ListPlansByUser(ctx context.Context, userID int64) ([]*models.SavedPlan, error)
	UpdatePlan(ctx context.Context, plan *models.SavedPlan) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
}

// PlanService decodes, mutates and persists plans
type PlanService struct {
	planRepo SavedPlanStore
	cat      *catalog.Catalog
	limits   plan.Limits
	logger   zerolog.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo SavedPlanStore, cat *catalog.Catalog, limits plan.Limits, logger zerolog.Logger) *PlanService {
	return &PlanService{
		planRepo: planRepo,
		cat:      cat,
		limits:   limits,
		logger:   logger,
	}
}

// decode turns serialized content into a plan, mapping malformed input to
// the service level sentinel. Empty content yields a fresh plan.
func (s *PlanService) decode(content string) (*plan.Plan, error) {
	result := plan.Decode(content, s.cat)
	switch result.Status {
	case plan.DecodeMalformed:
		return nil, apperrors.ErrMalformedPlan
	case plan.DecodeEmpty:
		return plan.New(), nil
	default:
		return result.Plan, nil
	}
}

// DecodePlan renders serialized plan content into its full form
func (s *PlanService) DecodePlan(content string) (*dto.PlanView, error) {
	p, err := s.decode(content)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanView(p, s.cat), nil
}

// ApplyOperation applies a single mutation to serialized plan content and
// returns the re-encoded result. Soft constraint violations come back as a
// confirmation with the content unchanged unless the request forces them.
func (s *PlanService) ApplyOperation(req *dto.PlanOperationRequest) (*dto.PlanOperationResponse, error) {
	p, err := s.decode(req.Content)
	if err != nil {
		return nil, err
	}

	store := plan.NewStore(s.limits)
	store.Replace(p)

	confirmation, err := s.dispatch(store, req)
	if err != nil {
		return nil, err
	}
	if confirmation != nil {
		return &dto.PlanOperationResponse{
			Content:      req.Content,
			Plan:         dto.NewPlanView(store.Plan(), s.cat),
			Confirmation: newPlanConfirmation(confirmation),
		}, nil
	}

	updated := store.Plan()
	content, err := plan.Encode(updated, s.cat)
	if err != nil {
		return nil, fmt.Errorf("error encoding plan: %w", err)
	}

	return &dto.PlanOperationResponse{
		Content: content,
		Plan:    dto.NewPlanView(updated, s.cat),
	}, nil
}

func (s *PlanService) dispatch(store *plan.Store, req *dto.PlanOperationRequest) (*plan.Confirmation, error) {
	switch req.Action {
	case dto.PlanActionAddCourse:
		course, loc, err := s.resolveCourseAndLocation(req.CourseID, req.Location)
		if err != nil {
			return nil, err
		}
		if req.Force {
			_, err := store.ApplyAddCourse(*course, loc)
			return nil, err
		}
		_, confirmation, err := store.AddCourse(*course, loc)
		return confirmation, err

	case dto.PlanActionRemoveCourse:
		loc, err := requireLocation(req.Location)
		if err != nil {
			return nil, err
		}
		if req.Index != nil {
			_, err := store.RemoveCourse(loc, *req.Index)
			return nil, err
		}
		if req.CourseID == "" {
			return nil, fmt.Errorf("%w: remove_course needs an index or a course id", apperrors.ErrBadRequest)
		}
		_, err = store.RemoveCourseByID(loc, req.CourseID)
		return nil, err

	case dto.PlanActionMoveCourse:
		course, to, err := s.resolveCourseAndLocation(req.CourseID, req.To)
		if err != nil {
			return nil, err
		}
		from := plan.Location{Year: -1}
		if req.From != nil {
			from = plan.Location{Year: req.From.Year, Quarter: req.From.Quarter}
		}
		if req.Force {
			_, err := store.ApplyMoveCourse(*course, from, to)
			return nil, err
		}
		_, confirmation, err := store.MoveCourse(*course, from, to)
		return confirmation, err

	case dto.PlanActionAddYear:
		_, err := store.AddYear()
		return nil, err

	case dto.PlanActionAddSummer:
		year, err := requireYear(req.Year)
		if err != nil {
			return nil, err
		}
		_, err = store.AddSummerQuarter(year)
		return nil, err

	case dto.PlanActionRemoveSummer:
		year, err := requireYear(req.Year)
		if err != nil {
			return nil, err
		}
		_, err = store.RemoveSummerQuarter(year)
		return nil, err

	case dto.PlanActionAddBookmark:
		course, err := s.resolveCourse(req.CourseID)
		if err != nil {
			return nil, err
		}
		_, err = store.AddBookmark(*course, req.ForCredit)
		return nil, err

	case dto.PlanActionRemoveBookmark:
		if req.CourseID == "" {
			return nil, fmt.Errorf("%w: remove_bookmark needs a course id", apperrors.ErrBadRequest)
		}
		store.RemoveBookmark(req.CourseID, req.ForCredit)
		return nil, nil

	case dto.PlanActionClearYear:
		year, err := requireYear(req.Year)
		if err != nil {
			return nil, err
		}
		_, err = store.ClearYear(year)
		return nil, err

	case dto.PlanActionClear:
		store.Clear()
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: unknown action %q", apperrors.ErrBadRequest, req.Action)
	}
}

func (s *PlanService) resolveCourse(id string) (*catalog.Course, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: course id is required", apperrors.ErrBadRequest)
	}
	course := s.cat.GetCourse(id)
	if course == nil {
		return nil, catalog.ErrCourseNotFound
	}
	return course, nil
}

func (s *PlanService) resolveCourseAndLocation(id string, loc *dto.PlanLocation) (*catalog.Course, plan.Location, error) {
	course, err := s.resolveCourse(id)
	if err != nil {
		return nil, plan.Location{}, err
	}
	location, err := requireLocation(loc)
	if err != nil {
		return nil, plan.Location{}, err
	}
	return course, location, nil
}

func requireLocation(loc *dto.PlanLocation) (plan.Location, error) {
	if loc == nil {
		return plan.Location{}, fmt.Errorf("%w: location is required", apperrors.ErrBadRequest)
	}
	return plan.Location{Year: loc.Year, Quarter: loc.Quarter}, nil
}

func requireYear(year *int) (int, error) {
	if year == nil {
		return 0, fmt.Errorf("%w: year is required", apperrors.ErrBadRequest)
	}
	return *year, nil
}

func newPlanConfirmation(c *plan.Confirmation) *dto.PlanConfirmation {
	confirmation := &dto.PlanConfirmation{
		Reason: c.Reason,
		Units:  c.Units,
	}
	if c.Duplicate != nil {
		confirmation.Duplicate = &dto.PlanLocation{Year: c.Duplicate.Year, Quarter: c.Duplicate.Quarter}
	}
	return confirmation
}

// CreateSavedPlan persists a named plan slot for a user
func (s *PlanService) CreateSavedPlan(ctx context.Context, userID int64, req *dto.SavedPlanRequest) (*models.SavedPlan, error) {
	if _, err := s.decode(req.Content); err != nil {
		return nil, err
	}

	saved := &models.SavedPlan{
		UserID:  userID,
		Name:    req.Name,
		Content: req.Content,
	}
	if err := s.planRepo.CreatePlan(ctx, saved); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("planID", saved.ID.String()).Msg("Plan saved")
	return saved, nil
}

// ListSavedPlans returns all plan slots of a user
func (s *PlanService) ListSavedPlans(ctx context.Context, userID int64) ([]*models.SavedPlan, error) {
	return s.planRepo.ListPlansByUser(ctx, userID)
}

// GetSavedPlan returns a plan slot if it belongs to the user
func (s *PlanService) GetSavedPlan(ctx context.Context, userID int64, id uuid.UUID) (*models.SavedPlan, error) {
	saved, err := s.planRepo.GetPlanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved.UserID != userID {
		// Do not leak existence of other users' plans
		return nil, apperrors.ErrPlanNotFound
	}
	return saved, nil
}

// UpdateSavedPlan updates the name and content of an owned plan slot
func (s *PlanService) UpdateSavedPlan(ctx context.Context, userID int64, id uuid.UUID, req *dto.SavedPlanRequest) (*models.SavedPlan, error) {
	saved, err := s.GetSavedPlan(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.decode(req.Content); err != nil {
		return nil, err
	}

	saved.Name = req.Name
	saved.Content = req.Content
	if err := s.planRepo.UpdatePlan(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// DeleteSavedPlan removes an owned plan slot
func (s *PlanService) DeleteSavedPlan(ctx context.Context, userID int64, id uuid.UUID) error {
	if _, err := s.GetSavedPlan(ctx, userID, id); err != nil {
		return err
	}
	return s.planRepo.DeletePlan(ctx, id)
}
