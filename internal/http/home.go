package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/database/plants"
)

const homeRecentPlants = 12

// HomeController renders the landing page.
type HomeController struct {
	plants *plants.Repository
	events *events.Repository
}

func NewHomeController(plantRepo *plants.Repository, eventRepo *events.Repository) *HomeController {
	return &HomeController{plants: plantRepo, events: eventRepo}
}

func (controller *HomeController) HomePage(c *gin.Context) {
	recentPlants, err := controller.plants.GetRecent(homeRecentPlants)
	if err != nil {
		renderError(c, err, "home plants")
		return
	}

	upcoming, err := controller.events.GetUpcoming(time.Now())
	if err != nil {
		renderError(c, err, "home events")
		return
	}

	renderPage(c, http.StatusOK, "home", gin.H{
		"Title":  "House of Plants",
		"Plants": recentPlants,
		"Events": upcoming,
	})
}
