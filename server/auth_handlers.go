package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	errs "github.com/Anjali11s/prolance/errors"
	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/server/response"
)

var trans ut.Translator

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ = uni.GetTranslator("en")
		_ = entranslations.RegisterDefaultTranslations(v, trans)
	}
}

// bindingErrorMessage renders validator errors in plain english.
func bindingErrorMessage(err error) string {
	translated := models.TranslateError(err, trans)
	if len(translated) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(translated))
	for _, e := range translated {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, " ")
}

// apiStatus maps a service error to the HTTP status to respond with.
func apiStatus(err error) int {
	if e, ok := err.(*errs.Error); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.SignupRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthService.SignupUser(&request)
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}

		response.JSON(c, "signup successful", http.StatusCreated, user.Profile(), nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.LoginRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		loginResponse, apiErr := s.AuthService.LoginUser(&request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "login successful", http.StatusOK, loginResponse, nil)
	}
}

// handleUpdateDeviceToken registers the caller's device token for offline push.
func (s *Server) handleUpdateDeviceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		var request models.UpdateDeviceTokenRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		if err := s.AuthRepository.UpdateDeviceToken(userID, request.DeviceToken); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}
		response.JSON(c, "device token updated", http.StatusOK, nil, nil)
	}
}

// handleGetUserProfile serves public profiles; authenticated viewers also get
// contact fields.
func (s *Server) handleGetUserProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthService.GetUserProfile(uint(id))
		if err != nil {
			response.JSON(c, "", apiStatus(err), nil, err)
			return
		}

		if _, authenticated := currentUserID(c); authenticated {
			response.JSON(c, "", http.StatusOK, user.Profile(), nil)
			return
		}
		response.JSON(c, "", http.StatusOK, user.PublicProfile(), nil)
	}
}
