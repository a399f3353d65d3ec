package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/config"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/middleware"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
	"github.com/BruksfildServices01/studio-manager/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	StudioName    string `json:"studio_name" binding:"required"`
	StudioSlug    string `json:"studio_slug" binding:"required"`
	StudioPhone   string `json:"studio_phone"`
	StudioAddress string `json:"studio_address"`
	Timezone      string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email, err := validators.NormalizeEmail(req.Email)
	if err != nil || email == "" {
		httperr.BadRequest(c, "invalid_email", "Email không hợp lệ.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Múi giờ không hợp lệ.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Đã xảy ra lỗi, vui lòng thử lại.")
		return
	}

	studio := models.Studio{
		Name:     strings.TrimSpace(req.StudioName),
		Slug:     strings.ToLower(strings.TrimSpace(req.StudioSlug)),
		Phone:    strings.TrimSpace(req.StudioPhone),
		Address:  strings.TrimSpace(req.StudioAddress),
		Timezone: tz,
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         "owner",
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Studio{}).Where("slug = ?", studio.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slug_exists")
		}

		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("email_exists")
		}

		if err := tx.Create(&studio).Error; err != nil {
			return err
		}

		user.StudioID = studio.ID
		if err := tx.Omit("Studio").Create(&user).Error; err != nil {
			return err
		}

		hours := defaultWorkingHours(studio.ID)
		return tx.Create(&hours).Error
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_register")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTTTL, &user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Đã xảy ra lỗi, vui lòng thử lại.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   userJSON(&user),
		"studio": studio,
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Studio").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.FromError(c, httperr.ErrBusiness("invalid_credentials"), "")
			return
		}
		httperr.FromError(c, err, "failed_to_login")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.FromError(c, httperr.ErrBusiness("invalid_credentials"), "")
		return
	}

	token, err := middleware.IssueToken(h.config.JWTSecret, h.config.JWTTTL, &user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Đã xảy ra lỗi, vui lòng thử lại.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   userJSON(&user),
		"studio": user.Studio,
		"token":  token,
	})
}

func userJSON(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"phone":     u.Phone,
		"role":      u.Role,
		"studio_id": u.StudioID,
	}
}

// defaultWorkingHours opens a new studio Monday to Saturday, 08:00-18:00
// with a lunch break. Owners adjust it through PUT /me/working-hours.
func defaultWorkingHours(studioID uint) []models.WorkingHours {
	hours := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		wh := models.WorkingHours{StudioID: studioID, Weekday: wd}
		if wd != 0 {
			wh.Active = true
			wh.StartTime = "08:00"
			wh.EndTime = "18:00"
			wh.LunchStart = "12:00"
			wh.LunchEnd = "13:00"
		}
		hours = append(hours, wh)
	}
	return hours
}
