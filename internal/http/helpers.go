package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookshelf/internal/catalog"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"` // per-field validation messages
}

// SuccessResponse acknowledges an operation that returns no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondCatalogError maps a catalog failure onto a status code.
// Storage causes were already logged by the catalog and are never exposed.
func respondCatalogError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error()}
	if cerr, ok := catalog.AsError(err); ok && len(cerr.Fields) > 0 {
		resp.Fields = fieldMessages(cerr)
	}
	c.JSON(statusForError(err), resp)
}

// statusForError returns the HTTP status matching a catalog error kind.
func statusForError(err error) int {
	switch catalog.KindOf(err) {
	case catalog.KindValidation:
		return http.StatusBadRequest
	case catalog.KindNotFound:
		return http.StatusNotFound
	case catalog.KindConflict:
		return http.StatusConflict
	case catalog.KindStorage:
		return http.StatusInternalServerError
	default:
		log.Error().Err(err).Msg("unexpected error type")
		return http.StatusInternalServerError
	}
}

func fieldMessages(cerr *catalog.Error) map[string]string {
	out := make(map[string]string, len(cerr.Fields))
	for _, f := range cerr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// --- Success Response Helpers ---

// respondSuccess sends {"success": true}.
func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts a non-empty entity ID from URL parameters.
// Responds with a 404 and returns false when it is blank.
func parseIDParam(c *gin.Context, paramName, notFoundMessage string) (string, bool) {
	id := strings.TrimSpace(c.Param(paramName))
	if id == "" {
		respondNotFound(c, notFoundMessage)
		return "", false
	}
	return id, true
}

// wantsJSON returns true when the client prefers JSON over HTML.
func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json")
}
