package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Floumy/floumy-sub002/internal/config"
	"github.com/Floumy/floumy-sub002/internal/models"
	"github.com/Floumy/floumy-sub002/internal/observability/metrics"
	"github.com/Floumy/floumy-sub002/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db         *gorm.DB
	orgService *services.OrgService
	jwt        config.JWTConfig
}

func NewAuthHandler(db *gorm.DB, orgService *services.OrgService, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, orgService: orgService, jwt: jwtCfg}
}

type SignUpRequest struct {
	OrgName  string `json:"org_name" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp creates a new org (with its default project) and the org's first
// user, then returns an access token.
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignUpRequest true "sign up request"
// @Success 201 {object} map[string]interface{}
// @Router /api/v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := h.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	// Org, default project and first user commit or roll back together.
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	org, err := h.orgService.CreateOrgWithOwner(req.OrgName, &user)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.generateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token": token,
		"user":         user,
		"org":          org,
	})
}

// Login authenticates by email and password and returns an access token.
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "login request"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error; err != nil {
		metrics.RecordLogin("failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.RecordLogin("failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	now := time.Now().UTC()
	h.db.Model(&user).Update("last_login_at", now)

	token, err := h.generateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	metrics.RecordLogin("success")
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}

// GetMe returns the authenticated user.
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"org_id":  user.OrgID.String(),
		"exp":     time.Now().Add(time.Duration(h.jwt.ExpiryHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwt.Secret))
}
