package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/server/response"
)

// currentUser pulls the full user record set by Authorize.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// handleGetPendingApplications reports how many applications await the client's
// review, with a short list of the most recent ones for the notification
// dropdown.
func (s *Server) handleGetPendingApplications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}
		if !user.IsClient() {
			response.JSON(c, "only clients can view pending applications", http.StatusForbidden, nil, nil)
			return
		}

		count, recent, err := s.NotificationService.PendingApplications(user.ID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"pendingCount":       count,
			"recentApplications": recent,
		}, nil)
	}
}
