package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/respond"
	"resumegen-backend/internal/server/middleware"
	"resumegen-backend/internal/util"
)

const sessionCookieName = "session_token"

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the routes that must work without a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.GET("/activate", h.activate)
	rg.POST("/login", h.login)
}

// RegisterProtectedRoutes attaches the routes that require a live session.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/user/me", h.me)
	rg.PUT("/user/update", h.update)
	rg.POST("/upload-resume", h.uploadResume)
}

func (h *Handler) register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid request body", nil)
		return
	}
	if details := in.Validate(); len(details) > 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid registration data", details)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			respond.Error(c, http.StatusBadRequest, "email_taken", "Email already registered", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register user", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, user)
}

func (h *Handler) activate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_activation_token", "missing activation token", nil)
		return
	}

	message, err := h.Svc.Activate(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredSignature):
			respond.Error(c, http.StatusBadRequest, "invalid_activation_token", "Activation link expired", gin.H{"reason": "expired"})
		case errors.Is(err, auth.ErrBadSignature):
			respond.Error(c, http.StatusBadRequest, "invalid_activation_token", "Invalid activation token", gin.H{"reason": "bad_signature"})
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to activate account", nil)
		}
		return
	}
	respond.OK(c, gin.H{"message": message})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid request body", nil)
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid email or password", nil)
			return
		}
		if errors.Is(err, ErrAccountInactive) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Account is not activated", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(auth.SessionTTL.Seconds()), "/", "", true, true)
	respond.OK(c, gin.H{"message": "Login successful"})
}

func (h *Handler) logout(c *gin.Context) {
	token, err := c.Cookie(sessionCookieName)
	if err == nil && token != "" {
		if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log out", nil)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", true, true)
	respond.OK(c, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	profile, err := h.Svc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) update(c *gin.Context) {
	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid request body", nil)
		return
	}
	if details := update.Validate(); len(details) > 0 {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid profile data", details)
		return
	}

	userID := middleware.UserIDFromContext(c)
	profile, err := h.Svc.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "Email already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) uploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "missing file", []respond.FieldDetail{
			{Field: "file", Issue: "required"},
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to read upload", nil)
		return
	}
	defer src.Close()

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "invalid file name", []respond.FieldDetail{
			{Field: "file", Issue: "invalid file name"},
		})
		return
	}

	userID := middleware.UserIDFromContext(c)
	file, text, extracted, err := h.Svc.AttachResumeFile(c.Request.Context(), userID, fileName, src)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		return
	}

	body := gin.H{
		"message":     "Resume uploaded successfully",
		"resume_file": file,
		"resume_text": text,
	}
	if extracted != nil {
		body["extracted_profile"] = extracted
	}
	respond.OK(c, body)
}
