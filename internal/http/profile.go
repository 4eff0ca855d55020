package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseofplants/houseofplants/internal/auth"
	"github.com/houseofplants/houseofplants/internal/database/plants"
	"github.com/houseofplants/houseofplants/internal/database/users"
)

// ProfileController handles the authenticated user's own profile page.
// Username and email are immutable here; only display fields change.
type ProfileController struct {
	users    *users.Repository
	plants   *plants.Repository
	sessions *auth.SessionManager
}

func NewProfileController(userRepo *users.Repository, plantRepo *plants.Repository, sessions *auth.SessionManager) *ProfileController {
	return &ProfileController{users: userRepo, plants: plantRepo, sessions: sessions}
}

func (controller *ProfileController) ProfilePage(c *gin.Context) {
	sessionUser := auth.UserFromContext(c)

	user, err := controller.users.GetByID(sessionUser.ID)
	if err != nil {
		renderError(c, err, "load profile")
		return
	}

	ownPlants, err := controller.plants.GetByOwner(user.ID)
	if err != nil {
		renderError(c, err, "load profile plants")
		return
	}

	renderPage(c, http.StatusOK, "profile", gin.H{
		"Title":   "Your profile",
		"Profile": user,
		"Plants":  ownPlants,
	})
}

// Update applies the profile form. The session snapshot is refreshed so the
// navigation shows the new name straight away.
func (controller *ProfileController) Update(c *gin.Context) {
	sessionUser := auth.UserFromContext(c)

	name := c.PostForm("name")
	if name == "" {
		profile, err := controller.users.GetByID(sessionUser.ID)
		if err != nil {
			renderError(c, err, "load profile")
			return
		}
		renderPage(c, http.StatusBadRequest, "profile", gin.H{
			"Title":   "Your profile",
			"Profile": profile,
			"Error":   "Name is required",
		})
		return
	}

	user, err := controller.users.UpdateProfile(
		sessionUser.ID,
		name,
		c.PostForm("borough"),
		c.PostForm("picture_url"),
		parseCoordinate(c.PostForm("longitude")),
		parseCoordinate(c.PostForm("latitude")),
	)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			renderPage(c, http.StatusNotFound, "error", gin.H{
				"Title": "Not found",
				"Error": "Account not found",
			})
			return
		}
		renderError(c, err, "update profile")
		return
	}

	controller.sessions.RefreshUser(c.Request, user)

	c.Redirect(http.StatusFound, "/profile")
}
