package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/studyfocus/models"
	"github.com/techagentng/studyfocus/server/response"
)

func (s *Server) handlePostAssignment() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}
		studyID, err := idParam(c, "studyID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.CreateAssignmentRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		assignment, err := s.BoardService.PostAssignment(studyID, user.ID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "assignment posted", http.StatusCreated, assignment, nil)
	}
}

func (s *Server) handlePostAnnouncement() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}
		studyID, err := idParam(c, "studyID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.CreateAnnouncementRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		announcement, err := s.BoardService.PostAnnouncement(studyID, user.ID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "announcement posted", http.StatusCreated, announcement, nil)
	}
}
