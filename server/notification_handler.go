package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	errs "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
	"github.com/techagentng/studyfocus/server/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleGetNotifications() gin.HandlerFunc {
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
		notifications, err := s.NotificationService.GetNotifications(studyID, user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "notifications retrieved", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleGetNotificationDetail() gin.HandlerFunc {
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
		notificationID, err := idParam(c, "notificationID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		detail, err := s.NotificationService.GetNotificationDetail(studyID, notificationID, user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "notification retrieved", http.StatusOK, detail, nil)
	}
}

// handleLiveNotifications streams new notifications of a study over a websocket.
// Leader-only notifications reach the leader's connections only.
func (s *Server) handleLiveNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, user, apiErr := GetValuesFromContext(c)
		if apiErr != nil {
			response.HandleErrors(c, apiErr)
			return
		}
		if s.Hub == nil {
			response.HandleErrors(c, errs.New("live notifications are disabled", http.StatusServiceUnavailable))
			return
		}
		studyID, err := idParam(c, "studyID")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		member, err := s.GroupService.MemberValidation(studyID, user.ID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		sub := s.Hub.Subscribe(studyID, user.ID, member.Role == models.StudyRoleLeader)
		defer s.Hub.Unsubscribe(sub)

		logger := log.WithFields(log.Fields{"study_id": studyID, "user_id": user.ID})
		logger.Info("live notification stream opened")
		defer logger.Info("live notification stream closed")

		closed := make(chan struct{})
		go readUntilClosed(conn, closed)

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case n, ok := <-sub.C:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(n); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	}
}

// readUntilClosed drains client frames so pongs and close messages get processed.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
