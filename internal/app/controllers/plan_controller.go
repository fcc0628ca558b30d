package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/planboard/planboard/internal/app/models"
	"github.com/planboard/planboard/internal/app/models/dto"
	"github.com/planboard/planboard/internal/app/services"
	"github.com/planboard/planboard/internal/middleware"
)

// PlanController handles plan decoding, mutations and saved plan slots
type PlanController struct {
	planService *services.PlanService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService *services.PlanService) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// DecodePlan renders serialized plan content
// @Summary Decode a plan
// @Description Decodes serialized plan content into its full course grid with derived statistics
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.PlanContentRequest true "Serialized plan content"
// @Success 200 {object} dto.APIResponse{data=dto.PlanView} "Plan decoded successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed plan data"
// @Router /plans/decode [post]
func (c *PlanController) DecodePlan(ctx *gin.Context) {
	var req dto.PlanContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	view, err := c.planService.DecodePlan(req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      view,
		Timestamp: time.Now(),
	})
}

// ApplyOperation applies a single mutation to a plan
// @Summary Apply a plan operation
// @Description Applies a single mutation to serialized plan content and returns the re-encoded result. Soft constraint violations return 409 with a confirmation payload; repeat the request with force=true to override.
// @Tags plans
// @Accept json
// @Produce json
// @Param request body dto.PlanOperationRequest true "Plan operation"
// @Success 200 {object} dto.APIResponse{data=dto.PlanOperationResponse} "Operation applied successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed plan data or invalid operation"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Operation needs confirmation or a limit was reached"
// @Router /plans/operations [post]
func (c *PlanController) ApplyOperation(ctx *gin.Context) {
	var req dto.PlanOperationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid operation data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.planService.ApplyOperation(&req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if resp.Confirmation != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeNeedsConfirmation, resp.Confirmation.Reason)
		errorDetail = errorDetail.WithSeverity(dto.ErrorSeverityWarning)
		errorDetail = errorDetail.WithDetails(resp.Confirmation)
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(errorDetail))
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// CreatePlan saves a new plan slot
// @Summary Save a plan
// @Description Creates a named plan slot owned by the authenticated user
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SavedPlanRequest true "Plan name and content"
// @Success 201 {object} dto.APIResponse{data=dto.SavedPlanResponse} "Plan saved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or malformed plan content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "A plan with this name already exists"
// @Router /plans [post]
func (c *PlanController) CreatePlan(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.SavedPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	saved, err := c.planService.CreateSavedPlan(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      newSavedPlanResponse(saved),
		Timestamp: time.Now(),
	})
}

// ListPlans lists the authenticated user's plan slots
// @Summary List saved plans
// @Description Lists all plan slots owned by the authenticated user, most recently updated first
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SavedPlanResponse} "Plans retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /plans [get]
func (c *PlanController) ListPlans(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	plans, err := c.planService.ListSavedPlans(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SavedPlanResponse, 0, len(plans))
	for _, saved := range plans {
		responses = append(responses, newSavedPlanResponse(saved))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetPlan retrieves one saved plan slot
// @Summary Get a saved plan
// @Description Retrieves a plan slot owned by the authenticated user
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=dto.SavedPlanResponse} "Plan retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid plan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id} [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID")
		errorDetail = errorDetail.WithDetails("Plan ID must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	saved, err := c.planService.GetSavedPlan(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      newSavedPlanResponse(saved),
		Timestamp: time.Now(),
	})
}

// UpdatePlan updates a saved plan slot
// @Summary Update a saved plan
// @Description Updates the name and content of a plan slot owned by the authenticated user
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body dto.SavedPlanRequest true "Plan name and content"
// @Success 200 {object} dto.APIResponse{data=dto.SavedPlanResponse} "Plan updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or malformed plan content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 409 {object} dto.ErrorResponse "A plan with this name already exists"
// @Router /plans/{id} [put]
func (c *PlanController) UpdatePlan(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID")
		errorDetail = errorDetail.WithDetails("Plan ID must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SavedPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	saved, err := c.planService.UpdateSavedPlan(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      newSavedPlanResponse(saved),
		Timestamp: time.Now(),
	})
}

// DeletePlan deletes a saved plan slot
// @Summary Delete a saved plan
// @Description Deletes a plan slot owned by the authenticated user
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Plan deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid plan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Router /plans/{id} [delete]
func (c *PlanController) DeletePlan(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan ID")
		errorDetail = errorDetail.WithDetails("Plan ID must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.planService.DeleteSavedPlan(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Plan deleted"},
		Timestamp: time.Now(),
	})
}

func newSavedPlanResponse(saved *models.SavedPlan) dto.SavedPlanResponse {
	return dto.SavedPlanResponse{
		ID:        saved.ID,
		Name:      saved.Name,
		Content:   saved.Content,
		CreatedAt: saved.CreatedAt,
		UpdatedAt: saved.UpdatedAt,
	}
}
