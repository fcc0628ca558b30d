package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planboard/planboard/internal/app/models/dto"
	"github.com/planboard/planboard/internal/catalog"
	"github.com/planboard/planboard/internal/middleware"
)

// CatalogController serves course catalog lookups and search
type CatalogController struct {
	cat *catalog.Catalog
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(cat *catalog.Catalog) *CatalogController {
	return &CatalogController{
		cat: cat,
	}
}

// GetCourse retrieves a single course
// @Summary Get course by subject and number
// @Description Retrieves a course from the catalog by its subject and catalog number
// @Tags catalog
// @Accept json
// @Produce json
// @Param subject path string true "Subject identifier" example(COMP_SCI)
// @Param number path string true "Catalog number" example(111)
// @Success 200 {object} dto.APIResponse{data=dto.CourseView} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /catalog/courses/{subject}/{number} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	subject := strings.ToUpper(ctx.Param("subject"))
	number := ctx.Param("number")
	id := fmt.Sprintf("%s %s", subject, number)

	course := c.cat.GetCourse(id)
	if course == nil {
		middleware.HandleAPIError(ctx, catalog.ErrCourseNotFound)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewCourseView(*course, c.cat.GetColor(course.ID)),
		Timestamp: time.Now(),
	})
}

// Search searches the catalog
// @Summary Search courses
// @Description Searches the catalog by course identifier or name, with subject shortcut expansion
// @Tags catalog
// @Accept json
// @Produce json
// @Param q query string true "Search query" example(comp sci 111)
// @Success 200 {object} dto.APIResponse{data=catalog.SearchResults} "Search results"
// @Failure 400 {object} dto.ErrorResponse "Query too short"
// @Failure 404 {object} dto.ErrorResponse "No matching courses"
// @Router /catalog/search [get]
func (c *CatalogController) Search(ctx *gin.Context) {
	query := ctx.Query("q")

	results, err := c.cat.Search(query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      results,
		Timestamp: time.Now(),
	})
}
