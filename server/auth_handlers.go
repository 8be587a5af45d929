package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
	"github.com/techagentng/studyfocus/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		userResponse, err := s.AuthService.SignupUser(&req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.HandleErrors(c, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

// handleLogout invalidates the access token by adding it to the blacklist
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}
		if err := s.AuthService.Logout(token); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}
		profile, err := s.AuthService.GetMyProfile(user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "profile retrieved", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleUpdateProfileImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			response.HandleErrors(c, errs.New("image file is required", http.StatusBadRequest))
			return
		}

		url, err := s.MediaService.UpdateProfileImage(user.ID, fileHeader)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "profile image updated", http.StatusOK, gin.H{"profile_image_url": url}, nil)
	}
}
