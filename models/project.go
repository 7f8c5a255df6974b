package models

const (
	ProjectStatusOpen       = "open"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// Project is a job posting owned by a client. The messaging core only needs it
// as a context reference for conversations and pending-application counts.
type Project struct {
	Model
	ClientID    uint   `json:"client_id" gorm:"not null;index"`
	Client      User   `json:"client" gorm:"foreignKey:ClientID"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status" gorm:"default:open;index"`
}
