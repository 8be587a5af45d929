package services

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/config"
	"github.com/techagentng/studyfocus/db"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/mailingservices"
	"github.com/techagentng/studyfocus/models"
	"github.com/techagentng/studyfocus/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.UserResponse, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, error)
	Logout(accessToken string) error
	GetMyProfile(userID uint) (*models.GetMyProfileResponse, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mailer   mailingservices.Mailer
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, mailer mailingservices.Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mailer:   mailer,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.UserResponse, error) {
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		if errors.Is(err, db.ErrEmailTaken) {
			return nil, apiError.New(err.Error(), http.StatusConflict)
		}
		return nil, err
	}

	hashedPassword, err := GenerateHashPassword(request.Password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &models.User{
		Email:          request.Email,
		HashedPassword: hashedPassword,
	}
	profile := &models.UserProfile{Nickname: request.Nickname}
	if err := s.authRepo.CreateUserWithProfile(user, profile); err != nil {
		log.WithError(err).Error("SignupUser error creating user")
		return nil, apiError.GetUniqueContraintError(err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeMessage(user.Email, profile.Nickname); err != nil {
			log.WithError(err).Warn("error sending welcome email")
		}
	}

	return &models.UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: profile.Nickname,
	}, nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidCredentials)
	}

	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateToken(user.ID, s.Config.JWTSecret, s.Config.AccessTokenTTL)
	if err != nil {
		return nil, errors.Wrap(err, "generate access token")
	}

	now := time.Now()
	if err := s.authRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			Nickname: user.Profile.Nickname,
		},
		AccessToken: accessToken,
	}, nil
}

func (s *authService) Logout(accessToken string) error {
	return s.authRepo.AddToBlackList(&models.Blacklist{Token: accessToken})
}

func (s *authService) GetMyProfile(userID uint) (*models.GetMyProfileResponse, error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		return nil, err
	}
	return &models.GetMyProfileResponse{
		UserID:          user.ID,
		Email:           user.Email,
		Nickname:        user.Profile.Nickname,
		ProfileImageURL: user.Profile.ProfileImageURL,
		LastLoginAt:     user.LastLoginAt,
	}, nil
}
