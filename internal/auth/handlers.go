package auth

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Form validation messages. Kept as constants so the handler tests assert
// on the exact copy the user sees.
const (
	MsgFieldsRequired    = "Username, name and email are all required"
	MsgPasswordTooShort  = "Password must be at least 8 characters"
	MsgAlreadyTaken      = "Username or email already taken"
	MsgCredentialsPrompt = "Please enter your username and password"
	MsgUsernamePrompt    = "Please enter your username"
	MsgPasswordPrompt    = "Please enter your password"
	MsgWrongCredentials  = "Wrong credentials"
	MsgInternalError     = "Something went wrong. Please try again."
)

// Notifier queues a welcome message for a freshly signed-up user. The send
// happens in the background; enqueue failures are the controller's to log,
// never the requester's to see.
type Notifier interface {
	EnqueueWelcomeEmail(email, name string) error
}

// Controller handles the authentication HTTP endpoints.
type Controller struct {
	service   *Service
	sessions  *SessionManager
	notifier  Notifier
	templates *template.Template
}

// NewController creates the authentication controller. templatesPath may
// point at a directory without auth templates, in which case responses fall
// back to JSON (used by the tests).
func NewController(service *Service, sessions *SessionManager, notifier Notifier, templatesPath string) *Controller {
	tmpl, err := template.ParseGlob(filepath.Join(templatesPath, "auth", "*.html"))
	if err != nil {
		tmpl = nil
	}

	return &Controller{
		service:   service,
		sessions:  sessions,
		notifier:  notifier,
		templates: tmpl,
	}
}

// RegisterRoutes registers the authentication routes with their guards.
func (ac *Controller) RegisterRoutes(router *gin.Engine, guards *Guards) {
	router.GET("/auth/signup", guards.RequireAnonymous(), ac.SignupPage)
	router.POST("/auth/signup", guards.RequireAnonymous(), ac.Signup)
	router.GET("/auth/login", guards.RequireAnonymous(), ac.LoginPage)
	router.POST("/auth/login", guards.RequireAnonymous(), ac.Login)
	router.GET("/auth/logout", guards.RequireAuthenticated(), ac.Logout)
}

// SignupPage renders the signup form.
func (ac *Controller) SignupPage(c *gin.Context) {
	ac.render(c, http.StatusOK, "signup.html", gin.H{
		"Title":     "Sign up",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Signup handles the signup form submission. Validation short-circuits in
// order; every failure re-renders the form with the entered values echoed
// back, except the password, which is never echoed.
func (ac *Controller) Signup(c *gin.Context) {
	username := c.PostForm("username")
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	borough := c.PostForm("borough")
	longitude := parseCoordinate(c.PostForm("longitude"))
	latitude := parseCoordinate(c.PostForm("latitude"))

	echo := gin.H{
		"Title":     "Sign up",
		"Username":  username,
		"Name":      name,
		"Email":     email,
		"Borough":   borough,
		"CSRFToken": GetCSRFToken(c),
	}

	if username == "" || name == "" || email == "" {
		echo["Error"] = MsgFieldsRequired
		ac.render(c, http.StatusBadRequest, "signup.html", echo)
		return
	}

	if len(password) < MinPasswordLength {
		echo["Error"] = MsgPasswordTooShort
		ac.render(c, http.StatusBadRequest, "signup.html", echo)
		return
	}

	user, err := ac.service.Signup(SignupInput{
		Username:  username,
		Name:      name,
		Email:     email,
		Password:  password,
		Borough:   borough,
		Longitude: longitude,
		Latitude:  latitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			echo["Error"] = MsgAlreadyTaken
			ac.render(c, http.StatusBadRequest, "signup.html", echo)
		case errors.Is(err, ErrPasswordTooLong):
			echo["Error"] = "Password exceeds maximum length of 72 characters"
			ac.render(c, http.StatusBadRequest, "signup.html", echo)
		default:
			ac.fail(c, "signup", err)
		}
		return
	}

	if err := ac.sessions.CreateSession(c.Request, user); err != nil {
		ac.fail(c, "signup session", err)
		return
	}

	if ac.notifier != nil {
		if err := ac.notifier.EnqueueWelcomeEmail(user.Email, user.Name); err != nil {
			log.Error().Err(err).Str("email", user.Email).Msg("failed to queue welcome email")
		}
	}

	c.Redirect(http.StatusFound, HomePath)
}

// LoginPage renders the login form.
func (ac *Controller) LoginPage(c *gin.Context) {
	ac.render(c, http.StatusOK, "login.html", gin.H{
		"Title":     "Log in",
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
	})
}

// Login handles the login form submission.
func (ac *Controller) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	echo := gin.H{
		"Title":     "Log in",
		"Username":  username,
		"Next":      next,
		"CSRFToken": GetCSRFToken(c),
	}

	var prompt string
	switch {
	case username == "" && password == "":
		prompt = MsgCredentialsPrompt
	case username == "":
		prompt = MsgUsernamePrompt
	case password == "":
		prompt = MsgPasswordPrompt
	case len(password) < MinPasswordLength:
		prompt = MsgPasswordTooShort
	}
	if prompt != "" {
		echo["Error"] = prompt
		ac.render(c, http.StatusBadRequest, "login.html", echo)
		return
	}

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			echo["Error"] = MsgWrongCredentials
			ac.render(c, http.StatusBadRequest, "login.html", echo)
			return
		}
		ac.fail(c, "login", err)
		return
	}

	if err := ac.sessions.CreateSession(c.Request, user); err != nil {
		ac.fail(c, "login session", err)
		return
	}

	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session entirely so the token itself stops resolving,
// then redirects home.
func (ac *Controller) Logout(c *gin.Context) {
	if err := ac.sessions.DestroySession(c.Request); err != nil {
		ac.fail(c, "logout", err)
		return
	}
	c.Redirect(http.StatusFound, HomePath)
}

// fail is the single channel for unexpected failures in the auth flow: log
// the raw error, render a generic 500 error view.
func (ac *Controller) fail(c *gin.Context, operation string, err error) {
	log.Error().Err(err).Str("operation", operation).Msg("auth flow failed")
	ac.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title": "Error",
		"Error": MsgInternalError,
	})
}

// render executes an auth template, falling back to JSON when templates are
// not loaded.
func (ac *Controller) render(c *gin.Context, status int, name string, data gin.H) {
	if ac.templates == nil {
		c.JSON(status, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}

// parseCoordinate parses an optional map-picker coordinate; malformed or
// absent values are treated as not provided.
func parseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
