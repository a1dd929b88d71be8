package webhandlers

import (
	"errors"
	"net/http"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

func handleError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, message, http.StatusNotFound)
	case errors.Is(err, models.ErrBadRequest), errors.Is(err, models.ErrInput):
		http.Error(w, message+": "+err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, message, http.StatusInternalServerError)
	}
	log.Errorf("%s: %s", message, err)
}
