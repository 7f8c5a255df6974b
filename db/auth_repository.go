package db

import (
	"fmt"
	"log"

	"github.com/Anjali11s/prolance/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	FindUsersByIDs(ids []uint) ([]models.User, error)
	UpdateUserOnlineStatus(userID uint, online bool) error
	UpdateDeviceToken(userID uint, token string) error
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		log.Println("CreateUser error: user is nil")
		return nil, errors.New("user is nil")
	}

	result := a.DB.Create(user)
	if result.Error != nil {
		log.Printf("CreateUser error: %v", result.Error)
		return nil, result.Error
	}

	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ?", email).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	user := &models.User{}
	err := a.DB.First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (a *authRepo) FindUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	err := a.DB.Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not find users: %v", err)
	}
	return users, nil
}

func (a *authRepo) UpdateUserOnlineStatus(userID uint, online bool) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Update("online", online).Error
}

func (a *authRepo) UpdateDeviceToken(userID uint, token string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Update("device_token", token).Error
}
