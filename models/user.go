package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
	RoleBoth       = "both"
)

// User represents a user of the application
type User struct {
	Model
	Fullname       string   `json:"fullname" binding:"required,min=2"`
	Email          string   `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string   `json:"password,omitempty" gorm:"-" validate:"omitempty,min=4"`
	HashedPassword string   `json:"-"`
	Role           string   `json:"role" gorm:"default:freelancer"`
	Avatar         string   `json:"avatar"`
	Bio            string   `json:"bio"`
	Skills         []string `json:"skills" gorm:"serializer:json"`
	HourlyRate     float64  `json:"hourly_rate"`
	Location       string   `json:"location"`
	Phone          string   `json:"phone"`
	Online         bool     `json:"online"`
	DeviceToken    string   `json:"-"`
}

// IsClient reports whether the user can own projects
func (u *User) IsClient() bool {
	return u.Role == RoleClient || u.Role == RoleBoth
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
	if err != nil {
		return err // Passwords do not match
	}
	return nil
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	err := passwordValidator.Validate(password)
	return err
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []error{err}
	}
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

type SignupRequest struct {
	Fullname string `json:"fullname" binding:"required,min=2" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=client freelancer both" conform:"trim"`
}

type UpdateDeviceTokenRequest struct {
	DeviceToken string `json:"device_token" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID         uint     `json:"id"`
	Fullname   string   `json:"fullname"`
	Email      string   `json:"email,omitempty"`
	Role       string   `json:"role"`
	Avatar     string   `json:"avatar"`
	Bio        string   `json:"bio"`
	Skills     []string `json:"skills,omitempty"`
	HourlyRate float64  `json:"hourly_rate,omitempty"`
	Location   string   `json:"location,omitempty"`
	Online     bool     `json:"online"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

// PublicProfile strips fields not meant for anonymous viewers
func (u *User) PublicProfile() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Fullname:   u.Fullname,
		Role:       u.Role,
		Avatar:     u.Avatar,
		Bio:        u.Bio,
		Skills:     u.Skills,
		HourlyRate: u.HourlyRate,
		Location:   u.Location,
		Online:     u.Online,
	}
}

// Profile includes contact fields visible to authenticated users
func (u *User) Profile() UserResponse {
	resp := u.PublicProfile()
	resp.Email = u.Email
	return resp
}
