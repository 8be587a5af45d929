package response

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/errors"
)

// JSON writes the standard response envelope.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	responsedata := gin.H{
		"message":   message,
		"data":      data,
		"errors":    errMessage,
		"status":    http.StatusText(status),
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	}

	c.JSON(status, responsedata)
}

// HandleErrors reports business errors with their own status and hides everything else behind a 500.
func HandleErrors(c *gin.Context, err error) {
	var apiErr *errors.Error
	if stderrors.As(err, &apiErr) {
		JSON(c, "", apiErr.Status, nil, apiErr)
		return
	}
	log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	JSON(c, "", http.StatusInternalServerError, nil, errors.ErrInternalServerError)
}
