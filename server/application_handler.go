package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Anjali11s/prolance/models"
	"github.com/Anjali11s/prolance/server/response"
)

type createApplicationRequest struct {
	ProjectID         uint    `json:"project_id" binding:"required"`
	CoverLetter       string  `json:"cover_letter" binding:"required,min=50,max=2000"`
	ProposedBudgetMin float64 `json:"proposed_budget_min" binding:"required"`
	ProposedBudgetMax float64 `json:"proposed_budget_max" binding:"required"`
	ProposedDuration  string  `json:"proposed_duration" binding:"required"`
}

type createProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) handleCreateApplication() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}

		var request createApplicationRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		project, err := s.ProjectRepository.FindProjectByID(request.ProjectID)
		if err != nil {
			response.JSON(c, "project not found", http.StatusNotFound, nil, err)
			return
		}
		if project.ClientID == userID {
			response.JSON(c, "cannot apply to your own project", http.StatusForbidden, nil, nil)
			return
		}
		if project.Status != models.ProjectStatusOpen {
			response.JSON(c, "project is not open for applications", http.StatusBadRequest, nil, nil)
			return
		}

		app := &models.Application{
			ProjectID:         request.ProjectID,
			FreelancerID:      userID,
			CoverLetter:       request.CoverLetter,
			ProposedBudgetMin: request.ProposedBudgetMin,
			ProposedBudgetMax: request.ProposedBudgetMax,
			ProposedDuration:  request.ProposedDuration,
			Status:            models.ApplicationStatusPending,
		}
		app, err = s.ApplicationRepository.CreateApplication(app)
		if err != nil {
			response.JSON(c, "you have already applied to this project", http.StatusConflict, nil, err)
			return
		}

		// Nudge the client's open sessions so the pending badge refreshes.
		s.Hub.EmitToUser(project.ClientID, "application-received", gin.H{
			"projectId":     project.ID,
			"applicationId": app.ID,
		})

		response.JSON(c, "application submitted", http.StatusCreated, app, nil)
	}
}

func (s *Server) handleCreateProject() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "Unauthorized", http.StatusUnauthorized, nil, nil)
			return
		}
		if !user.IsClient() {
			response.JSON(c, "only clients can post projects", http.StatusForbidden, nil, nil)
			return
		}

		var request createProjectRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, bindingErrorMessage(err), http.StatusBadRequest, nil, err)
			return
		}

		project := &models.Project{
			ClientID:    user.ID,
			Title:       request.Title,
			Description: request.Description,
			Status:      models.ProjectStatusOpen,
		}
		project, err := s.ProjectRepository.CreateProject(project)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "project created", http.StatusCreated, project, nil)
	}
}
