package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps every response body.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var defaultMessages = map[int]string{
	http.StatusOK:                  "Success",
	http.StatusCreated:             "Created successfully",
	http.StatusBadRequest:          "Bad request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusConflict:            "Conflict",
	http.StatusUnprocessableEntity: "Validation error",
	http.StatusInternalServerError: "Internal server error",
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	if message == "" {
		message = defaultMessages[status]
	}
	if message == "" {
		message = "Unknown status"
	}
	c.JSON(status, Envelope{Code: status, Message: message, Data: data})
}

func ok(c *gin.Context, message string, data interface{}) {
	respond(c, http.StatusOK, message, data)
}

func created(c *gin.Context, entity string, data interface{}) {
	respond(c, http.StatusCreated, fmt.Sprintf("Create %s successfully", entity), data)
}

func got(c *gin.Context, entity string, data interface{}) {
	ok(c, fmt.Sprintf("Get %s successfully", entity), data)
}

func listed(c *gin.Context, entity string, data interface{}) {
	ok(c, fmt.Sprintf("Get list of %s successfully", entity), data)
}

func updated(c *gin.Context, entity string, data interface{}) {
	ok(c, fmt.Sprintf("Update %s successfully", entity), data)
}

func deleted(c *gin.Context, entity string) {
	ok(c, fmt.Sprintf("Delete %s successfully", entity), nil)
}
