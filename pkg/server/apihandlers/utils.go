package apihandlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"

	"github.com/notaspie/notaspie/internal"
	"github.com/notaspie/notaspie/pkg/corrector"
	"github.com/notaspie/notaspie/pkg/models"
)

var log = internal.GetLogger()

var validate = validator.New()

// multipartMemory is how much of a multipart body is held in memory before
// it spills to temporary files.
const multipartMemory = 8 << 20

// NewCorrector builds a corrector over the app's checker with the configured
// request defaults.
func NewCorrector(appState *models.AppState) *corrector.Corrector {
	return corrector.New(appState.Checker, corrector.OptionsFromConfig(appState.Config))
}

// ReadUpload reads the file sent in the multipart field name. Bodies larger
// than server.max_upload_size are refused.
func ReadUpload(
	w http.ResponseWriter,
	r *http.Request,
	appState *models.AppState,
	name string,
) ([]byte, *multipart.FileHeader, error) {
	maxSize := appState.Config.Server.MaxUploadSize
	if maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return nil, nil, err
		}
		return nil, nil, models.NewBadRequestError(fmt.Sprintf("invalid multipart form: %s", err))
	}

	file, header, err := r.FormFile(name)
	if err != nil {
		return nil, nil, models.NewBadRequestError(fmt.Sprintf("%s is required", name))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read upload: %w", err)
	}

	log.Debugf("received %s (%s)", header.Filename, humanize.Bytes(uint64(len(data))))

	return data, header, nil
}

// IsDOCX reports whether an uploaded filename names a Word document.
func IsDOCX(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".docx")
}
