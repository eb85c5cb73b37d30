package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/waste3d/learnpath-api/internal/domain"
	"github.com/waste3d/learnpath-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failErr maps domain errors to HTTP statuses. Anything unknown is a 500 and is logged.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrModuleNotFound),
		errors.Is(err, domain.ErrVideoNotFound),
		errors.Is(err, domain.ErrProgressNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTier):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProgressConflict),
		errors.Is(err, domain.ErrUserAlreadyExists):
		fail(c, http.StatusConflict, err.Error())
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "internal error")
	}
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
