package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Anjali11s/prolance/chathub"
	"github.com/Anjali11s/prolance/server/response"
	"github.com/Anjali11s/prolance/services/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleWebSocket authenticates the caller and hands the connection over to
// the hub. Browsers cannot set headers on websocket requests, so the token is
// also accepted as a query parameter.
func (s *Server) handleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := c.Query("token")
		if accessToken == "" {
			accessToken = getTokenFromHeader(c)
		}
		if accessToken == "" {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		claims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, err)
			return
		}
		userID, err := jwt.UserIDFromClaims(claims)
		if err != nil {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, err)
			return
		}
		if _, err := s.AuthRepository.FindUserByID(userID); err != nil {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("websocket upgrade failed for user %d: %v", userID, err)
			return
		}

		client := chathub.NewWebSocketClient(s.Hub, userID, conn)
		s.Hub.RegisterCh <- client
		client.Run()
	}
}
