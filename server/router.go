package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())
	r.Use(requestID())

	r.Use(cors.New(s.corsConfig()))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) corsConfig() cors.Config {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if s.Config.AccessControlAllowOrigin == "" {
		conf.AllowAllOrigins = true
		conf.AllowCredentials = false
		return conf
	}
	conf.AllowOrigins = strings.Split(s.Config.AccessControlAllowOrigin, ",")
	return conf
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  s.Config.LoginRateWindow,
		Limit: s.Config.LoginRateLimit,
	})
	limitRate := limitRateForLogin(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", limitRate, s.handleLogin())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/profile-image", s.handleUpdateProfileImage())

	authorized.POST("/studies", s.handleCreateStudy())
	authorized.GET("/studies/:studyID", s.handleGetStudy())

	authorized.GET("/studies/:studyID/members", s.handleGetMembers())
	authorized.DELETE("/studies/:studyID/members/me", s.handleLeaveStudy())
	authorized.DELETE("/studies/:studyID/members/:userID", s.handleExpelMember())

	authorized.GET("/studies/:studyID/notifications", s.handleGetNotifications())
	authorized.GET("/studies/:studyID/notifications/live", s.handleLiveNotifications())
	authorized.GET("/studies/:studyID/notifications/:notificationID", s.handleGetNotificationDetail())

	authorized.POST("/studies/:studyID/applications", s.handleApply())
	authorized.POST("/studies/:studyID/applications/:applicationID/accept", s.handleAcceptApplication())
	authorized.POST("/studies/:studyID/applications/:applicationID/reject", s.handleRejectApplication())

	authorized.POST("/studies/:studyID/assignments", s.handlePostAssignment())
	authorized.POST("/studies/:studyID/announcements", s.handlePostAnnouncement())
}
