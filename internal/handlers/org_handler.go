package handlers

import (
	"net/http"

	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
)

type OrgHandler struct {
	orgs *services.OrgService
}

func NewOrgHandler(orgs *services.OrgService) *OrgHandler {
	return &OrgHandler{orgs: orgs}
}

func (h *OrgHandler) Get(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}

	org, err := h.orgs.GetOrg(orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *OrgHandler) ListMembers(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}

	members, err := h.orgs.ListMembers(orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *OrgHandler) CreateProject(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.orgs.CreateProject(orgID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *OrgHandler) ListProjects(c *gin.Context) {
	orgID, ok := orgScope(c)
	if !ok {
		return
	}

	projects, err := h.orgs.ListProjects(orgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *OrgHandler) GetProject(c *gin.Context) {
	orgID, projectID, ok := projectScope(c)
	if !ok {
		return
	}

	project, err := h.orgs.GetProject(orgID, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
