package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	dom "minifeed/internal/domain"
	"minifeed/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dom.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, dom.ErrAuthFailed), errors.Is(err, dom.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, dom.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, dom.ErrEmptyContent), errors.Is(err, dom.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, dom.ErrUnknownAuthor):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

// writeBindError reports request binding failures, one message per field.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request body"})
		return
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = describe(fe)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed", Fields: fields})
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func parsePostID(c *gin.Context, name string) (dom.PostID, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return dom.PostID(id), true
}

// isPartial reports whether the caller asked for a fragment refresh
// rather than a full page payload.
func isPartial(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true" || c.GetHeader("X-Partial") != ""
}
