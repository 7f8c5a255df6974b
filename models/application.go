package models

const (
	ApplicationStatusPending   = "pending"
	ApplicationStatusAccepted  = "accepted"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusWithdrawn = "withdrawn"
)

// Application is a freelancer's proposal on a project. A freelancer can only
// apply once per project.
type Application struct {
	Model
	ProjectID         uint    `json:"project_id" gorm:"not null;uniqueIndex:idx_project_freelancer;index"`
	Project           Project `json:"project" gorm:"foreignKey:ProjectID"`
	FreelancerID      uint    `json:"freelancer_id" gorm:"not null;uniqueIndex:idx_project_freelancer;index"`
	Freelancer        User    `json:"freelancer" gorm:"foreignKey:FreelancerID"`
	CoverLetter       string  `json:"cover_letter" binding:"required,min=50,max=2000"`
	ProposedBudgetMin float64 `json:"proposed_budget_min" binding:"required"`
	ProposedBudgetMax float64 `json:"proposed_budget_max" binding:"required"`
	ProposedDuration  string  `json:"proposed_duration" binding:"required"`
	Status            string  `json:"status" gorm:"default:pending;index"`
	ClientNotes       string  `json:"client_notes"`
}
