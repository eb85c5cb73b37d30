package handlers

import (
	"net/http"
	"strconv"

	"github.com/waste3d/learnpath-api/internal/application/usecase"
	"github.com/waste3d/learnpath-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	uc *usecase.ProgressUseCase
}

func NewProgressHandler(uc *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) tier(c *gin.Context) (domain.Tier, bool) {
	tier, err := h.uc.ResolveTier(c, userID(c), c.Query("timeCommitment"))
	if err != nil {
		failErr(c, err)
		return "", false
	}
	return tier, true
}

func (h *ProgressHandler) moduleRequest(c *gin.Context) (usecase.ModuleRequest, bool) {
	moduleID, err := strconv.Atoi(c.Param("moduleId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid module id")
		return usecase.ModuleRequest{}, false
	}
	tier, ok := h.tier(c)
	if !ok {
		return usecase.ModuleRequest{}, false
	}
	return usecase.ModuleRequest{UserID: userID(c), CourseID: c.Param("id"), ModuleID: moduleID, Tier: tier}, true
}

// GET /api/v1/courses/:id/progress
func (h *ProgressHandler) Load(c *gin.Context) {
	tier, ok := h.tier(c)
	if !ok {
		return
	}

	state, err := h.uc.LoadProgress(c, userID(c), c.Param("id"), tier)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

// POST /api/v1/courses/:id/modules/:moduleId/start
func (h *ProgressHandler) StartModule(c *gin.Context) {
	req, ok := h.moduleRequest(c)
	if !ok {
		return
	}

	state, err := h.uc.StartModule(c, req)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

// POST /api/v1/courses/:id/modules/:moduleId/toggle
func (h *ProgressHandler) ToggleModule(c *gin.Context) {
	req, ok := h.moduleRequest(c)
	if !ok {
		return
	}

	state, err := h.uc.ToggleModule(c, req)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

// POST /api/v1/courses/:id/videos/:videoId/toggle
func (h *ProgressHandler) ToggleVideo(c *gin.Context) {
	tier, ok := h.tier(c)
	if !ok {
		return
	}

	state, err := h.uc.ToggleVideo(c, usecase.VideoRequest{
		UserID:   userID(c),
		CourseID: c.Param("id"),
		VideoID:  c.Param("videoId"),
		Tier:     tier,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, state)
}

// DELETE /api/v1/courses/:id/snapshot
func (h *ProgressHandler) ClearSnapshot(c *gin.Context) {
	if err := h.uc.ClearSnapshot(c, userID(c), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, nil)
}

// GET /api/v1/progress
func (h *ProgressHandler) Check(c *gin.Context) {
	tier, ok := h.tier(c)
	if !ok {
		return
	}
	respond(c, http.StatusOK, h.uc.Check(c, userID(c), tier))
}
