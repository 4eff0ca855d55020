package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/houseofplants/houseofplants/internal/auth"
	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/entities"
)

// eventTimeLayout matches the datetime-local form input.
const eventTimeLayout = "2006-01-02T15:04"

// EventsController handles the community events pages.
type EventsController struct {
	events *events.Repository
}

func NewEventsController(repo *events.Repository) *EventsController {
	return &EventsController{events: repo}
}

func (controller *EventsController) ListPage(c *gin.Context) {
	upcoming, err := controller.events.GetUpcoming(time.Now())
	if err != nil {
		renderError(c, err, "list events")
		return
	}

	renderPage(c, http.StatusOK, "events", gin.H{
		"Title":  "Events",
		"Events": upcoming,
	})
}

func (controller *EventsController) NewPage(c *gin.Context) {
	renderPage(c, http.StatusOK, "event-form", gin.H{
		"Title": "Host an event",
	})
}

// Create handles the new-event form submission. Guarded by
// RequireAuthenticated.
func (controller *EventsController) Create(c *gin.Context) {
	user := auth.UserFromContext(c)

	title := c.PostForm("title")
	startsAtRaw := c.PostForm("starts_at")

	echo := gin.H{
		"Title":       "Host an event",
		"EventTitle":  title,
		"Description": c.PostForm("description"),
		"Venue":       c.PostForm("venue"),
		"Borough":     c.PostForm("borough"),
		"StartsAt":    startsAtRaw,
	}

	if title == "" {
		echo["Error"] = "Your event needs a title"
		renderPage(c, http.StatusBadRequest, "event-form", echo)
		return
	}

	startsAt, err := time.ParseInLocation(eventTimeLayout, startsAtRaw, time.Local)
	if err != nil {
		echo["Error"] = "Please pick a valid date and time"
		renderPage(c, http.StatusBadRequest, "event-form", echo)
		return
	}
	if startsAt.Before(time.Now()) {
		echo["Error"] = "Events must start in the future"
		renderPage(c, http.StatusBadRequest, "event-form", echo)
		return
	}

	event := &entities.Event{
		HostID:      user.ID,
		Title:       title,
		Description: c.PostForm("description"),
		Venue:       c.PostForm("venue"),
		Borough:     c.PostForm("borough"),
		Longitude:   parseCoordinate(c.PostForm("longitude")),
		Latitude:    parseCoordinate(c.PostForm("latitude")),
		StartsAt:    startsAt,
	}

	if err := controller.events.Create(event); err != nil {
		renderError(c, err, "create event")
		return
	}

	c.Redirect(http.StatusFound, "/events")
}
