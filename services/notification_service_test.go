package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/services"
)

func TestNotificationService_UnreadMessageCount(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := services.NewNotificationService(chatRepo, new(MockApplicationRepository))

	chatRepo.On("CountUnreadForUser", uint(1)).Return(int64(7), nil)

	count, err := svc.UnreadMessageCount(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestNotificationService_UnreadMessageCount_RepoError(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := services.NewNotificationService(chatRepo, new(MockApplicationRepository))

	chatRepo.On("CountUnreadForUser", uint(1)).Return(int64(0), assert.AnError)

	_, err := svc.UnreadMessageCount(1)
	assert.Error(t, err)
}

func TestNotificationService_PendingApplications(t *testing.T) {
	applicationRepo := new(MockApplicationRepository)
	svc := services.NewNotificationService(new(MockChatRepository), applicationRepo)

	recent := []models.Application{
		{ProjectID: 10, FreelancerID: 4, Status: models.ApplicationStatusPending},
		{ProjectID: 11, FreelancerID: 5, Status: models.ApplicationStatusPending},
	}
	applicationRepo.On("CountPendingForClient", uint(1)).Return(int64(12), nil)
	applicationRepo.On("RecentPendingForClient", uint(1), 10).Return(recent, nil)

	count, got, err := svc.PendingApplications(1)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.Equal(t, recent, got)
}
