package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/database/plants"
	"github.com/houseofplants/houseofplants/internal/entities"
)

// SearchController handles the site-wide search page over plants and
// events.
type SearchController struct {
	plants *plants.Repository
	events *events.Repository
}

func NewSearchController(plantRepo *plants.Repository, eventRepo *events.Repository) *SearchController {
	return &SearchController{plants: plantRepo, events: eventRepo}
}

func (controller *SearchController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	var (
		matchedPlants []entities.Plant
		matchedEvents []entities.Event
		err           error
	)

	if query != "" {
		matchedPlants, err = controller.plants.Search(query)
		if err != nil {
			renderError(c, err, "search plants")
			return
		}

		matchedEvents, err = controller.events.Search(query)
		if err != nil {
			renderError(c, err, "search events")
			return
		}
	}

	renderPage(c, http.StatusOK, "search", gin.H{
		"Title":  "Search",
		"Query":  query,
		"Plants": matchedPlants,
		"Events": matchedEvents,
	})
}
