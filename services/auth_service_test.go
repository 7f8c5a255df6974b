package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Anjali11s/prolance/config"
	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/services"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func TestAuthService_SignupUser(t *testing.T) {
	authRepo := new(MockAuthRepository)
	svc := services.NewAuthService(authRepo, testConfig())

	authRepo.On("IsEmailExist", "ada@example.com").Return(nil)
	authRepo.On("CreateUser", mock.AnythingOfType("*models.User")).
		Return(&models.User{Model: models.Model{ID: 1}, Email: "ada@example.com", Role: models.RoleFreelancer}, nil)

	user, err := svc.SignupUser(&models.SignupRequest{
		Fullname: "Ada Lovelace",
		Email:    "  Ada@Example.com ",
		Password: "secret123",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleFreelancer, user.Role, "role defaults to freelancer")

	// The stored email is conformed to lowercase without surrounding space.
	authRepo.AssertCalled(t, "IsEmailExist", "ada@example.com")
}

func TestAuthService_SignupUser_ShortPassword(t *testing.T) {
	authRepo := new(MockAuthRepository)
	svc := services.NewAuthService(authRepo, testConfig())

	_, err := svc.SignupUser(&models.SignupRequest{
		Fullname: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "abc",
	})
	assert.Error(t, err)
	authRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestAuthService_SignupUser_DuplicateEmail(t *testing.T) {
	authRepo := new(MockAuthRepository)
	svc := services.NewAuthService(authRepo, testConfig())

	authRepo.On("IsEmailExist", "ada@example.com").Return(assert.AnError)

	_, err := svc.SignupUser(&models.SignupRequest{
		Fullname: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	assert.Error(t, err)
	authRepo.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestAuthService_LoginUser(t *testing.T) {
	authRepo := new(MockAuthRepository)
	svc := services.NewAuthService(authRepo, testConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	authRepo.On("FindUserByEmail", "ada@example.com").Return(&models.User{
		Model:          models.Model{ID: 1},
		Email:          "ada@example.com",
		HashedPassword: string(hashed),
	}, nil)

	resp, apiErr := svc.LoginUser(&models.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	assert.Nil(t, apiErr)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, uint(1), resp.ID)
}

func TestAuthService_LoginUser_WrongPassword(t *testing.T) {
	authRepo := new(MockAuthRepository)
	svc := services.NewAuthService(authRepo, testConfig())

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	authRepo.On("FindUserByEmail", "ada@example.com").Return(&models.User{
		Email:          "ada@example.com",
		HashedPassword: string(hashed),
	}, nil)

	_, apiErr := svc.LoginUser(&models.LoginRequest{Email: "ada@example.com", Password: "nope"})
	assert.NotNil(t, apiErr)
}

func TestAuthService_LoginUser_UnknownEmail(t *testing.T) {
	authRepo := new(MockAuthRepository)
	svc := services.NewAuthService(authRepo, testConfig())

	authRepo.On("FindUserByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, apiErr := svc.LoginUser(&models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.NotNil(t, apiErr)
}
