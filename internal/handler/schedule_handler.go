package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itsanla/sita-bi-sub000/internal/dto"
	"github.com/itsanla/sita-bi-sub000/internal/service"
	appErrors "github.com/itsanla/sita-bi-sub000/pkg/errors"
	"github.com/itsanla/sita-bi-sub000/pkg/response"
)

// ScheduleHandler exposes the defense scheduling endpoints.
type ScheduleHandler struct {
	scheduler *service.SchedulerService
	admin     *service.ScheduleAdminService
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(scheduler *service.SchedulerService, admin *service.ScheduleAdminService) *ScheduleHandler {
	return &ScheduleHandler{scheduler: scheduler, admin: admin}
}

// Register mounts the schedule routes on the router group.
func (h *ScheduleHandler) Register(group *gin.RouterGroup) {
	schedules := group.Group("/schedules")
	schedules.POST("/generate", h.Generate)
	schedules.GET("", h.List)
	schedules.GET("/export", h.Export)
	schedules.GET("/options", h.EditOptions)
	schedules.GET("/failed", h.FailedStudents)
	schedules.GET("/ready", h.ReadyStudents)
	schedules.POST("/move", h.Move)
	schedules.POST("/swap", h.Swap)
	schedules.PATCH("/:id", h.Update)
	schedules.DELETE("/:id", h.Delete)
	schedules.DELETE("", h.DeleteAll)
}

// Generate runs the automatic scheduling pass.
func (h *ScheduleHandler) Generate(c *gin.Context) {
	result, err := h.scheduler.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// List returns the schedule board.
func (h *ScheduleHandler) List(c *gin.Context) {
	rows, err := h.admin.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Export streams the board as CSV or PDF.
func (h *ScheduleHandler) Export(c *gin.Context) {
	result, err := h.admin.ExportBoard(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// Update patches one schedule.
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.admin.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// Delete removes one schedule.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	var req dto.DeleteScheduleRequest
	_ = c.ShouldBindJSON(&req)
	if err := h.admin.Delete(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteAll tears down the active period's board.
func (h *ScheduleHandler) DeleteAll(c *gin.Context) {
	count, err := h.admin.DeleteAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deleted": count})
}

// Move shifts schedules forward by a date offset.
func (h *ScheduleHandler) Move(c *gin.Context) {
	var req dto.MoveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	count, err := h.admin.Move(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"moved": count})
}

// Swap exchanges the slots of two schedules.
func (h *ScheduleHandler) Swap(c *gin.Context) {
	var req dto.SwapScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.admin.Swap(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"swapped": true})
}

// EditOptions lists the pickers for manual edits.
func (h *ScheduleHandler) EditOptions(c *gin.Context) {
	options, err := h.admin.EditOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// FailedStudents lists students the run could not place.
func (h *ScheduleHandler) FailedStudents(c *gin.Context) {
	students, err := h.admin.FailedStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// ReadyStudents lists students eligible for defense.
func (h *ScheduleHandler) ReadyStudents(c *gin.Context) {
	students, err := h.admin.ReadyStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}
