package services

import (
	"log"

	"github.com/Anjali11s/prolance/db"
	apiError "github.com/Anjali11s/prolance/errors"
	"github.com/Anjali11s/prolance/models"
)

// NotificationService derives the per-user "items needing attention" counters.
// Unread chat messages and pending project applications are unrelated signals;
// they stay separate here and are only composed at the handler layer.
type NotificationService interface {
	UnreadMessageCount(userID uint) (int64, error)
	PendingApplications(clientID uint) (int64, []models.Application, error)
}

type notificationService struct {
	chatRepo        db.ChatRepository
	applicationRepo db.ApplicationRepository
}

// NewNotificationService instantiate a notificationService
func NewNotificationService(chatRepo db.ChatRepository, applicationRepo db.ApplicationRepository) NotificationService {
	return &notificationService{
		chatRepo:        chatRepo,
		applicationRepo: applicationRepo,
	}
}

const recentApplicationsLimit = 10

// UnreadMessageCount reads committed message state directly; the result is
// never staler than the last committed write.
func (s *notificationService) UnreadMessageCount(userID uint) (int64, error) {
	count, err := s.chatRepo.CountUnreadForUser(userID)
	if err != nil {
		log.Printf("UnreadMessageCount error: %v", err)
		return 0, apiError.ErrInternalServerError
	}
	return count, nil
}

func (s *notificationService) PendingApplications(clientID uint) (int64, []models.Application, error) {
	count, err := s.applicationRepo.CountPendingForClient(clientID)
	if err != nil {
		log.Printf("PendingApplications count error: %v", err)
		return 0, nil, apiError.ErrInternalServerError
	}

	recent, err := s.applicationRepo.RecentPendingForClient(clientID, recentApplicationsLimit)
	if err != nil {
		log.Printf("PendingApplications list error: %v", err)
		return 0, nil, apiError.ErrInternalServerError
	}
	return count, recent, nil
}
