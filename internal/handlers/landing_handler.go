package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/services"
)

// LandingHandler serves the post-login landing page and the module tiles it
// shows. It also owns the redirect routes that override the platform's
// default home.
type LandingHandler struct {
	landing services.LandingService
	users   services.UserService
	tmpl    *template.Template
}

func NewLandingHandler(landing services.LandingService, users services.UserService, templateGlob string) (*LandingHandler, error) {
	tmpl, err := template.ParseGlob(templateGlob)
	if err != nil {
		return nil, err
	}
	return &LandingHandler{landing: landing, users: users, tmpl: tmpl}, nil
}

// @Summary      List installed modules
// @Description  Installed application modules; degrades to [] if the registry is unavailable
// @Tags         Landing
// @Produce      json
// @Success      200  {array}  models.ModuleSummary
// @Router       /landing/modules [get]
func (h *LandingHandler) GetModules(c *gin.Context) {
	modules, err := h.landing.ListInstalledModules(c.Request.Context())
	if err != nil {
		// registry trouble must not break the landing page
		log.Printf("[landing][modules][err] %v", err)
		c.JSON(http.StatusOK, []models.ModuleSummary{})
		return
	}
	c.JSON(http.StatusOK, modules)
}

// @Summary      Landing page
// @Description  Rendered dashboard scoped to the current user and their company
// @Tags         Landing
// @Produce      html
// @Success      200  {string}  string
// @Router       /landing [get]
func (h *LandingHandler) LandingPage(c *gin.Context) {
	userID := currentUserID(c)

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		log.Printf("[landing][render][err] user lookup userID=%d: %v", userID, err)
		c.Redirect(http.StatusFound, "/web/home")
		return
	}

	// Render into a buffer first so a template failure can still fall back
	// to the plain home page instead of a half-written response.
	var buf bytes.Buffer
	data := gin.H{
		"User":    user,
		"Company": user.CompanyName,
	}
	if err := h.tmpl.ExecuteTemplate(&buf, "landing.html", data); err != nil {
		log.Printf("[landing][render][err] userID=%d: %v", userID, err)
		c.Redirect(http.StatusFound, "/web/home")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// RedirectToLanding intercepts the standard post-login flow: both /web and
// /web/redirect land the user on /landing unconditionally.
func (h *LandingHandler) RedirectToLanding(c *gin.Context) {
	c.Redirect(http.StatusFound, "/landing")
}

// HomeFallback is the generic page users end up on when the landing page
// cannot be rendered.
func (h *LandingHandler) HomeFallback(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<!DOCTYPE html><html><body><h1>TaskHub</h1><p>Welcome.</p></body></html>"))
}
