package handlers

import (
	"net/http"

	"github.com/waste3d/learnpath-api/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	uc       *usecase.ProgressUseCase
	progress *ProgressHandler
}

func NewCourseHandler(uc *usecase.ProgressUseCase, ph *ProgressHandler) *CourseHandler {
	return &CourseHandler{uc: uc, progress: ph}
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.uc.ListCourses())
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	tier, ok := h.progress.tier(c)
	if !ok {
		return
	}

	course, enrolled, err := h.uc.CourseDetail(c, userID(c), c.Param("id"), tier)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"course": course, "is_enrolled": enrolled})
}

// GET /api/v1/courses/last
func (h *CourseHandler) Last(c *gin.Context) {
	course, err := h.uc.LastCourse(c, userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, course)
}

// GET /api/v1/courses/:id/enrollment
func (h *CourseHandler) Enrollment(c *gin.Context) {
	enrolled, err := h.uc.IsEnrolled(c, userID(c), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"is_enrolled": enrolled})
}

// POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	tier, ok := h.progress.tier(c)
	if !ok {
		return
	}

	e, err := h.uc.Enroll(c, userID(c), c.Param("id"), tier)
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusCreated, e)
}

// GET /api/v1/enrollments
func (h *CourseHandler) Enrollments(c *gin.Context) {
	list, err := h.uc.Enrollments(c, userID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}
