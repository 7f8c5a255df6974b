package db

import (
	"log"

	"github.com/Anjali11s/prolance/models"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	CreateProject(project *models.Project) (*models.Project, error)
	FindProjectByID(id uint) (*models.Project, error)
}

type projectRepo struct {
	DB *gorm.DB
}

func NewProjectRepo(db *GormDB) ProjectRepository {
	return &projectRepo{db.DB}
}

func (r *projectRepo) CreateProject(project *models.Project) (*models.Project, error) {
	if err := r.DB.Create(project).Error; err != nil {
		log.Printf("CreateProject error: %v", err)
		return nil, err
	}
	return project, nil
}

func (r *projectRepo) FindProjectByID(id uint) (*models.Project, error) {
	project := &models.Project{}
	err := r.DB.First(project, id).Error
	if err != nil {
		return nil, err
	}
	return project, nil
}
