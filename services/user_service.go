package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/FelipeAraujoBS/weather-monitoring-system/config"
	"github.com/FelipeAraujoBS/weather-monitoring-system/models"
	"github.com/FelipeAraujoBS/weather-monitoring-system/utils"
)

var (
	// ErrEmailTaken signals a registration conflict.
	ErrEmailTaken = errors.New("email is already in use")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InterfaceUserService registers and authenticates dashboard accounts.
type InterfaceUserService interface {
	Register(email, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, string, error)
}

// UserService provides account registration and login.
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
	JWT    InterfaceJWTService
}

// NewUserService creates a new user service.
func NewUserService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService) *UserService {
	return &UserService{
		DB:     db,
		Config: cfg,
		JWT:    jwtService,
	}
}

// Register creates a new account with a bcrypt password hash. The returned
// user never carries the hash back to the caller.
func (s *UserService) Register(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// Authenticate verifies the credentials and issues a signed access token.
func (s *UserService) Authenticate(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.JWT.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return &user, token, nil
}
