package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	errs "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/server/response"
	"github.com/techagentng/studyfocus/services/jwt"
	"gorm.io/gorm"
)

const requestIDHeader = "X-Request-ID"

func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "Access token is blacklisted", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		userID, err := jwt.UserIDFromClaims(accessClaims)
		if err != nil {
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			default:
				log.WithError(err).Error("authorize: unable to load user")
				respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			}
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

func limitRateForLogin(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      keyFunc,
	})
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

// requestID tags every request with an id, reusing the caller's when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Debug("request handled")
	}
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the bearer token. Browsers cannot set headers on
// websocket upgrades, so the access_token query parameter is accepted too.
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") && len(authHeader) > len("Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return c.Query("access_token")
}
