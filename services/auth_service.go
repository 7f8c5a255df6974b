package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/Anjali11s/prolance/config"
	"github.com/Anjali11s/prolance/db"
	apiError "github.com/Anjali11s/prolance/errors"
	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/services/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	GetUserProfile(userID uint) (*models.User, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.User, error) {
	if request == nil {
		log.Println("SignupUser error: request is nil")
		return nil, errors.New("request is nil")
	}

	if err := models.ValidateWhiteSpaces(request); err != nil {
		log.Printf("SignupUser error conforming request: %v", err)
		return nil, apiError.ErrBadRequest
	}

	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	// Check if the email already exists
	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	role := request.Role
	if role == "" {
		role = models.RoleFreelancer
	}

	user := &models.User{
		Fullname:       request.Fullname,
		Email:          request.Email,
		HashedPassword: string(hashedPassword),
		Role:           role,
	}
	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	return user, nil
}

// LoginUser logs in a user and returns the login response
func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnprocessableEntity)
		}
		log.Printf("Error finding user by email: %v", err)
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		log.Printf("Invalid password for user %s", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	accessToken, err := jwt.GenerateToken(foundUser.ID, a.Config.JWTSecret)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		UserResponse: foundUser.Profile(),
		AccessToken:  accessToken,
	}, nil
}

func (a *authService) GetUserProfile(userID uint) (*models.User, error) {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetUserProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return user, nil
}
