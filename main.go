package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/config"
	"github.com/techagentng/studyfocus/db"
	"github.com/techagentng/studyfocus/live"
	"github.com/techagentng/studyfocus/mailingservices"
	"github.com/techagentng/studyfocus/push"
	"github.com/techagentng/studyfocus/server"
	"github.com/techagentng/studyfocus/services"
	"github.com/techagentng/studyfocus/storage"
)

func initLogger(conf *config.Config) {
	log.SetOutput(os.Stdout)
	if conf.IsProd() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	if conf.Debug {
		log.SetLevel(log.DebugLevel)
	}
}

// initPublisher returns nil when FCM is not configured so no typed nil reaches the dispatcher.
func initPublisher(conf *config.Config) push.Publisher {
	if conf.FirebaseCredentialsFile == "" {
		log.Warn("firebase credentials not set, push notifications are disabled")
		return nil
	}
	fcm, err := push.NewFCM(context.Background(), conf.FirebaseCredentialsFile)
	if err != nil {
		log.Errorf("error initializing Firebase messaging: %v", err)
		return nil
	}
	log.Println("Firebase Messaging client initialized")
	return fcm
}

func initStorage(conf *config.Config) storage.ObjectStorage {
	if conf.AWSBucket == "" {
		log.Warn("aws bucket not set, profile image uploads are disabled")
		return nil
	}
	s3Storage, err := storage.NewS3Storage(conf)
	if err != nil {
		log.Errorf("error initializing S3 storage: %v", err)
		return nil
	}
	return s3Storage
}

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	initLogger(conf)

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)
	authRepo := db.NewAuthRepo(gormDB)
	profileRepo := db.NewUserProfileRepo(gormDB)
	studyRepo := db.NewStudyRepo(gormDB)
	memberRepo := db.NewStudyMemberRepo(gormDB)
	notificationRepo := db.NewNotificationRepo(gormDB)
	applicationRepo := db.NewApplicationRepo(gormDB)
	boardRepo := db.NewBoardRepo(gormDB)

	hub := live.NewHub()
	dispatcher := services.NewNotificationDispatcher(memberRepo, initPublisher(conf), mailgunClient, hub)

	groupService := services.NewGroupService(memberRepo)
	notificationService := services.NewNotificationService(groupService, studyRepo, memberRepo, profileRepo, notificationRepo, dispatcher)
	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	mediaService := services.NewMediaService(profileRepo, initStorage(conf))
	studyService := services.NewStudyService(studyRepo, memberRepo, applicationRepo, groupService, notificationService)
	studyMemberService := services.NewStudyMemberService(memberRepo, groupService, notificationService)
	boardService := services.NewBoardService(boardRepo, groupService, notificationService)

	s := &server.Server{
		Config:              conf,
		AuthRepository:      authRepo,
		AuthService:         authService,
		MediaService:        mediaService,
		GroupService:        groupService,
		StudyService:        studyService,
		StudyMemberService:  studyMemberService,
		NotificationService: notificationService,
		BoardService:        boardService,
		Hub:                 hub,
	}
	s.Start()

	// flush push and mail deliveries still in flight
	dispatcher.Wait()
}
