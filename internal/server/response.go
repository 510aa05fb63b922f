package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// ErrorBody is the JSON shape of every error answer.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes v indented and without HTML escaping.
func writeJSON(c *gin.Context, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		c.Data(http.StatusInternalServerError, "application/json; charset=utf-8",
			[]byte(`{"error":"Internal server error","message":"encode response"}`))
		return
	}
	c.Data(status, "application/json; charset=utf-8", buf.Bytes())
}

func writeError(c *gin.Context, status int, err error) {
	title := "Internal server error"
	if status < http.StatusInternalServerError {
		title = http.StatusText(status)
	}
	writeJSON(c, status, ErrorBody{Error: title, Message: err.Error()})
}
