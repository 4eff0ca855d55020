package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/houseofplants/houseofplants/internal/auth"
	"github.com/houseofplants/houseofplants/internal/database/plants"
	"github.com/houseofplants/houseofplants/internal/entities"
)

// PlantsController handles the plant listing pages and owner mutations.
type PlantsController struct {
	plants *plants.Repository
}

func NewPlantsController(repo *plants.Repository) *PlantsController {
	return &PlantsController{plants: repo}
}

func (controller *PlantsController) ListPage(c *gin.Context) {
	all, err := controller.plants.GetAll()
	if err != nil {
		renderError(c, err, "list plants")
		return
	}

	renderPage(c, http.StatusOK, "plants", gin.H{
		"Title":  "Plants",
		"Plants": all,
	})
}

func (controller *PlantsController) DetailPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	plant, err := controller.plants.GetByID(id)
	if err != nil {
		if errors.Is(err, plants.ErrNotFound) {
			renderPage(c, http.StatusNotFound, "error", gin.H{
				"Title": "Not found",
				"Error": "Plant not found",
			})
			return
		}
		renderError(c, err, "plant detail")
		return
	}

	user := auth.UserFromContext(c)
	renderPage(c, http.StatusOK, "plant", gin.H{
		"Title":   plant.Name,
		"Plant":   plant,
		"IsOwner": user != nil && user.ID == plant.UserID,
	})
}

func (controller *PlantsController) NewPage(c *gin.Context) {
	renderPage(c, http.StatusOK, "plant-form", gin.H{
		"Title": "Add a plant",
	})
}

// Create handles the new-plant form submission. Guarded by
// RequireAuthenticated, so a session user is always present here.
func (controller *PlantsController) Create(c *gin.Context) {
	user := auth.UserFromContext(c)

	name := c.PostForm("name")
	if name == "" {
		renderPage(c, http.StatusBadRequest, "plant-form", gin.H{
			"Title":       "Add a plant",
			"Species":     c.PostForm("species"),
			"Description": c.PostForm("description"),
			"PictureURL":  c.PostForm("picture_url"),
			"Error":       "Your plant needs a name",
		})
		return
	}

	plant := &entities.Plant{
		UserID:      user.ID,
		Name:        name,
		Species:     c.PostForm("species"),
		Description: c.PostForm("description"),
		PictureURL:  c.PostForm("picture_url"),
	}

	if err := controller.plants.Create(plant); err != nil {
		renderError(c, err, "create plant")
		return
	}

	c.Redirect(http.StatusFound, "/plants")
}

// Delete removes one of the session user's own plants. Deleting somebody
// else's plant falls through to not-found rather than revealing it exists.
func (controller *PlantsController) Delete(c *gin.Context) {
	user := auth.UserFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.plants.Delete(id, user.ID); err != nil {
		if errors.Is(err, plants.ErrNotFound) {
			renderPage(c, http.StatusNotFound, "error", gin.H{
				"Title": "Not found",
				"Error": "Plant not found",
			})
			return
		}
		renderError(c, err, "delete plant")
		return
	}

	c.Redirect(http.StatusFound, "/plants")
}
