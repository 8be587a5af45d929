package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/studyfocus/models"
	"github.com/techagentng/studyfocus/server/response"
)

func (s *Server) handleCreateStudy() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}
		var req models.CreateStudyRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		study, err := s.StudyService.CreateStudy(user.ID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "study created", http.StatusCreated, study, nil)
	}
}

func (s *Server) handleGetStudy() gin.HandlerFunc {
	return func(c *gin.Context) {
		studyID, err := idParam(c, "studyID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		study, err := s.StudyService.GetStudy(studyID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "study retrieved", http.StatusOK, study, nil)
	}
}

func (s *Server) handleGetMembers() gin.HandlerFunc {
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
		members, err := s.StudyMemberService.GetMembers(studyID, user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "members retrieved", http.StatusOK, members, nil)
	}
}

func (s *Server) handleLeaveStudy() gin.HandlerFunc {
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
		if err := s.StudyMemberService.LeaveStudy(studyID, user.ID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "left the study", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleExpelMember() gin.HandlerFunc {
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
		expelUserID, err := idParam(c, "userID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.StudyMemberService.ExpelMember(studyID, expelUserID, user.ID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "member expelled", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleApply() gin.HandlerFunc {
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
		var req models.ApplyRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		application, err := s.StudyService.Apply(studyID, user.ID, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "application submitted", http.StatusCreated, application, nil)
	}
}

func (s *Server) handleAcceptApplication() gin.HandlerFunc {
	return s.handleApplicationDecision("application accepted", func(studyID, applicationID, userID uint) error {
		return s.StudyService.AcceptApplication(studyID, applicationID, userID)
	})
}

func (s *Server) handleRejectApplication() gin.HandlerFunc {
	return s.handleApplicationDecision("application rejected", func(studyID, applicationID, userID uint) error {
		return s.StudyService.RejectApplication(studyID, applicationID, userID)
	})
}

func (s *Server) handleApplicationDecision(message string, decide func(studyID, applicationID, userID uint) error) gin.HandlerFunc {
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
		applicationID, err := idParam(c, "applicationID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := decide(studyID, applicationID, user.ID); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, message, http.StatusOK, nil, nil)
	}
}
