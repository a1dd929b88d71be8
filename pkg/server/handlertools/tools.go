package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

// IntFromQuery extracts a query string value and converts it to an int
// if it is not empty. If the value is empty, it returns 0.
func IntFromQuery[T ~int | int32 | int64](
	r *http.Request,
	param string,
) (T, error) {
	bitsize := 0

	p := r.URL.Query().Get(param)
	var pInt T
	if p != "" {
		switch any(pInt).(type) {
		case int:
		case int32:
			bitsize = 32
		case int64:
			bitsize = 64
		default:
			return 0, errors.New("unsupported type")
		}

		pInt, err := strconv.ParseInt(p, 10, bitsize)
		if err != nil {
			return 0, err
		}
		return T(pInt), nil
	}
	return 0, nil
}

// IntFromForm reads an optional integer form field. An empty field is 0.
func IntFromForm(r *http.Request, field string) (int, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, models.NewBadRequestError(fmt.Sprintf("%s must be a number", field))
	}
	return n, nil
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(data)
}

// StatusFor maps an error to the status it is rendered with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError renders an error response. A status of 0 is derived from err.
func RenderError(w http.ResponseWriter, err error, status int) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "http: request body too large") {
		status = http.StatusRequestEntityTooLarge
		err = fmt.Errorf("request body too large. reduce the size of the uploaded document")
	}

	if status == 0 {
		status = StatusFor(err)
	}

	if status != http.StatusNotFound {
		// Don't log not found errors
		log.Error(err)
	}

	http.Error(w, err.Error(), status)
}

// UUIDFromURL parses a UUID from a Path parameter. If the UUID is invalid, an error is
// rendered and uuid.Nil is returned.
func UUIDFromURL(r *http.Request, w http.ResponseWriter, paramName string) uuid.UUID {
	uuidStr := chi.URLParam(r, paramName)
	documentUUID, err := uuid.Parse(uuidStr)
	if err != nil {
		RenderError(
			w,
			fmt.Errorf("unable to parse document UUID: %w", err),
			http.StatusBadRequest,
		)
		return uuid.Nil
	}
	return documentUUID
}
