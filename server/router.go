package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	errs "github.com/Anjali11s/prolance/errors"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if s.Config.AccessControlAllowOrigin != "" {
		corsConfig.AllowOrigins = []string{s.Config.AccessControlAllowOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "PONG")
	})

	router.POST("/auth/signup", s.handleSignup())
	router.POST("/auth/login", s.handleLogin())

	router.GET("/ws", s.handleWebSocket())

	apirouter := router.Group("/api/v1")
	apirouter.GET("/users/:id", s.OptionalAuthorize(), s.handleGetUserProfile())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Second, Limit: 5})
	sendMessageLimiter := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      keyFuncUserID,
	})

	authorized.GET("/chat/conversations", s.handleGetConversations())
	authorized.POST("/chat/conversations", s.handleCreateConversation())
	authorized.GET("/chat/conversations/:id", s.handleGetConversation())
	authorized.GET("/chat/conversations/:id/messages", s.handleGetMessages())
	authorized.POST("/chat/messages", sendMessageLimiter, s.handleSendMessage())
	authorized.PATCH("/chat/messages/read", s.handleMarkRead())
	authorized.DELETE("/chat/messages/:messageID", s.handleDeleteMessage())
	authorized.GET("/chat/unread/count", s.handleGetUnreadCount())

	authorized.PUT("/users/device-token", s.handleUpdateDeviceToken())

	authorized.GET("/applications/pending/count", s.handleGetPendingApplications())
	authorized.POST("/applications", s.handleCreateApplication())
	authorized.POST("/projects", s.handleCreateProject())
}

// keyFuncUserID scopes the send rate limit to the authenticated user.
func keyFuncUserID(c *gin.Context) string {
	if userID, ok := currentUserID(c); ok {
		return strconv.FormatUint(uint64(userID), 10)
	}
	return c.ClientIP()
}
