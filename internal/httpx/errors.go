package httpx

import (
	"errors"
	"net/http"

	"bookreview/internal/apperr"

	"github.com/sirupsen/logrus"
)

type errorMapping struct {
	status int
	code   string
}

var errorMappings = map[error]errorMapping{
	apperr.ErrValidation:      {http.StatusBadRequest, "VALIDATION_ERROR"},
	apperr.ErrUnauthenticated: {http.StatusUnauthorized, "UNAUTHENTICATED"},
	apperr.ErrForbidden:       {http.StatusForbidden, "FORBIDDEN"},
	apperr.ErrNotFound:        {http.StatusNotFound, "NOT_FOUND"},
	apperr.ErrDuplicateReview: {http.StatusConflict, "DUPLICATE_REVIEW"},
	apperr.ErrConflict:        {http.StatusConflict, "CONFLICT"},
	apperr.ErrInternal:        {http.StatusInternalServerError, "INTERNAL_ERROR"},
}

// StatusOf returns the HTTP status and error code for err.
func StatusOf(err error) (int, string) {
	m := errorMappings[apperr.KindOf(err)]
	return m.status, m.code
}

var errorLog logrus.FieldLogger = logrus.StandardLogger()

// SetErrorLogger sets where WriteError reports internal failures.
func SetErrorLogger(l logrus.FieldLogger) {
	errorLog = l
}

// WriteError translates a service error into the JSON error envelope.
// Internal causes are logged and replaced by a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := StatusOf(err)
	if status == http.StatusInternalServerError {
		errorLog.WithFields(logrus.Fields{
			"request_id": RequestIDFrom(r),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(err).Error("request failed")
	}

	var details []apperr.FieldError
	if errors.Is(err, apperr.ErrValidation) {
		details = apperr.FieldsOf(err)
	}
	JSONError(w, r, status, code, apperr.MessageOf(err), details)
}
