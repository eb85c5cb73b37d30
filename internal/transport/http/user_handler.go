package handlers

import (
	"net/http"

	"github.com/waste3d/learnpath-api/internal/application/usecase"
	"github.com/waste3d/learnpath-api/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	uc *usecase.ProgressUseCase
}

func NewUserHandler(uc *usecase.ProgressUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

type syncReq struct {
	Email    string `json:"email" binding:"required,email"`
	Fullname string `json:"fullname"`
	Username string `json:"username"`
}

type onboardingReq struct {
	LearningGoal    string `json:"learning_goal"`
	TimeCommitment  string `json:"time_commitment" binding:"required"`
	ExperienceLevel string `json:"experience_level"`
}

// POST /api/v1/users/anonymous
func (h *UserHandler) Anonymous(c *gin.Context) {
	respond(c, http.StatusCreated, gin.H{"user_id": h.uc.NewAnonymousID()})
}

// POST /api/v1/users/sync
func (h *UserHandler) Sync(c *gin.Context) {
	var req syncReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	cred, created, err := h.uc.SyncUser(c, &domain.LoginCredential{
		UserID:       userID(c),
		EmailAddress: req.Email,
		Fullname:     req.Fullname,
		Username:     req.Username,
	})
	if err != nil {
		failErr(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(c, status, cred)
}

// GET /api/v1/onboarding
func (h *UserHandler) GetOnboarding(c *gin.Context) {
	o, found, err := h.uc.GetOnboarding(c, userID(c), domain.Onboarding{
		LearningGoal:    c.Query("learningGoal"),
		TimeCommitment:  c.Query("timeCommitment"),
		ExperienceLevel: c.Query("experience"),
	})
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"onboarding": o, "exists": found})
}

// PUT /api/v1/onboarding
func (h *UserHandler) SaveOnboarding(c *gin.Context) {
	var req onboardingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	o := &domain.Onboarding{
		UserID:          userID(c),
		LearningGoal:    req.LearningGoal,
		TimeCommitment:  req.TimeCommitment,
		ExperienceLevel: req.ExperienceLevel,
	}
	updated, err := h.uc.SaveOnboarding(c, o)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"onboarding": o, "needs_update": updated})
}
