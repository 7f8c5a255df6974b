package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/server/response"
)

func (s *Server) handleGetConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		conversations, err := s.ChatService.ListConversations(userID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleCreateConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		var request models.CreateConversationRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		conv, err := s.ChatService.GetOrCreateConversation(userID, request.RecipientID, request.ProjectID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, conv, nil)
	}
}

func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		conv, err := s.ChatService.ConversationForUser(conversationID, userID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, conv, nil)
	}
}

func (s *Server) handleGetMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		conversationID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			limit, _ = strconv.Atoi(raw)
		}

		var beforeAt *time.Time
		var beforeID *uuid.UUID
		if raw := c.Query("before"); raw != "" {
			parsed, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				response.JSON(c, "invalid before cursor", http.StatusBadRequest, nil, err)
				return
			}
			beforeAt = &parsed
		}
		if raw := c.Query("before_id"); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				response.JSON(c, "invalid before_id cursor", http.StatusBadRequest, nil, err)
				return
			}
			beforeID = &parsed
		}

		page, err := s.ChatService.ListMessages(conversationID, userID, limit, beforeAt, beforeID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, page, nil)
	}
}

// handleSendMessage goes through the hub so REST sends share the same
// per-conversation ordering and fan-out as websocket sends.
func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		var request models.SendMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		conversationID := request.ConversationID
		if conversationID == uuid.Nil {
			conv, err := s.ChatService.GetOrCreateConversation(userID, request.RecipientID, request.ProjectID)
			if err != nil {
				response.JSON(c, "", apiStatus(err), nil, err)
				return
			}
			conversationID = conv.ID
		}

		msg, err := s.Hub.SendMessage(userID, conversationID, request.Content)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "message sent", http.StatusCreated, msg, nil)
	}
}

func (s *Server) handleMarkRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		var request models.MarkReadRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		count, err := s.Hub.MarkRead(userID, request.ConversationID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"updated": count}, nil)
	}
}

func (s *Server) handleDeleteMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		messageID, err := uuid.Parse(c.Param("messageID"))
		if err != nil {
			response.JSON(c, "invalid message id", http.StatusBadRequest, nil, err)
			return
		}

		if err := s.ChatService.DeleteMessage(messageID, userID); err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "message deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetUnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		count, err := s.NotificationService.UnreadMessageCount(userID)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"unreadCount": count}, nil)
	}
}
