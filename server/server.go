package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/config"
	"github.com/techagentng/studyfocus/db"
	"github.com/techagentng/studyfocus/live"
	"github.com/techagentng/studyfocus/services"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Config              *config.Config
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	MediaService        services.MediaService
	GroupService        services.GroupService
	StudyService        services.StudyService
	StudyMemberService  services.StudyMemberService
	NotificationService services.NotificationService
	BoardService        services.BoardService
	Hub                 *live.Hub
}

// Start serves until SIGINT or SIGTERM and then drains in-flight requests.
func (s *Server) Start() {
	r := s.setupRouter()

	port := fmt.Sprintf(":%d", s.Config.Port)
	srv := &http.Server{
		Addr:              port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server started on %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server exiting")
}
