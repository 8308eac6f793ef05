package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// writeError maps domain errors onto status codes. Anything unrecognised is a 500
// and is logged; its message is not echoed to the client.
func (h *handlers) writeError(c *gin.Context, err error) {
	status, body := classify(err)
	body.RequestID = c.GetString(requestIDKey)
	if status == http.StatusInternalServerError {
		requestLog(c, h.logger).WithError(err).Error("unhandled error")
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: body})
}

func classify(err error) (int, errorBody) {
	var (
		ve *domain.ValidationError
		re *domain.ReferentialError
		cv *domain.ConstraintViolation
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, errorBody{Code: "INVALID_INPUT", Message: ve.Error(), Field: ve.Field}
	case errors.As(err, &re):
		return http.StatusUnprocessableEntity, errorBody{Code: "REFERENCE_NOT_FOUND", Message: re.Error(), Field: re.Field}
	case errors.As(err, &cv):
		return http.StatusConflict, errorBody{Code: "ALREADY_EXISTS", Message: "resource already exists", Field: cv.Field, Constraint: cv.Constraint}
	case errors.Is(err, domain.ErrNotFound):
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			return http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: nf.Error()}
		}
		return http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: "resource not found"}
	default:
		return http.StatusInternalServerError, errorBody{Code: "INTERNAL_ERROR", Message: "an internal error occurred"}
	}
}

// bindJSON decodes the request body, turning decode failures into validation errors.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.NewValidationError(typeErr.Field, "must be of type "+typeErr.Type.String())
		}
		return domain.NewValidationError("", "malformed JSON body")
	}
	return nil
}
