package db

import (
	"log"

	"github.com/Anjali11s/prolance/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	CreateApplication(app *models.Application) (*models.Application, error)
	CountPendingForClient(clientID uint) (int64, error)
	RecentPendingForClient(clientID uint, limit int) ([]models.Application, error)
}

type applicationRepo struct {
	DB *gorm.DB
}

func NewApplicationRepo(db *GormDB) ApplicationRepository {
	return &applicationRepo{db.DB}
}

func (r *applicationRepo) CreateApplication(app *models.Application) (*models.Application, error) {
	if err := r.DB.Create(app).Error; err != nil {
		log.Printf("CreateApplication error: %v", err)
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) CountPendingForClient(clientID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Application{}).
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("projects.client_id = ? AND applications.status = ?", clientID, models.ApplicationStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "count pending applications")
	}
	return count, nil
}

func (r *applicationRepo) RecentPendingForClient(clientID uint, limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.DB.
		Joins("JOIN projects ON projects.id = applications.project_id").
		Where("projects.client_id = ? AND applications.status = ?", clientID, models.ApplicationStatusPending).
		Order("applications.created_at DESC").
		Limit(limit).
		Preload("Freelancer").
		Preload("Project").
		Find(&apps).Error
	if err != nil {
		return nil, errors.Wrap(err, "list pending applications")
	}
	return apps, nil
}
