package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/houseofplants/houseofplants/internal/auth"
)

// renderPage renders a named template with the session user merged into the
// view context, so every page can show the login state.
func renderPage(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user := auth.UserFromContext(c); user != nil {
		data["User"] = user
	}
	data["CSRFToken"] = auth.GetCSRFToken(c)
	c.HTML(status, name, data)
}

// renderError is the centralized channel for unexpected failures outside
// the auth flow: log the raw error, render a generic 500 error view. The
// raw message never reaches the client.
func renderError(c *gin.Context, err error, operation string) {
	log.Error().Err(err).Str("operation", operation).Str("path", c.Request.URL.Path).Msg("request failed")
	renderPage(c, http.StatusInternalServerError, "error", gin.H{
		"Title": "Error",
		"Error": "Something went wrong. Please try again.",
	})
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 404 and returns false on garbage input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		renderPage(c, http.StatusNotFound, "error", gin.H{
			"Title": "Not found",
			"Error": "Page not found",
		})
		return 0, false
	}
	return uint(id), true
}

// parseCoordinate parses an optional map-picker coordinate field.
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
