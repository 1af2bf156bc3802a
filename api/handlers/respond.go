package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/evidence"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// maxUploadMemory is how much of a multipart body is kept in memory before
// spilling to temp files
const maxUploadMemory = 32 << 20

// statusFor maps an error kind to its http status code
func statusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindUnauthenticated:
		return http.StatusUnauthorized
	case models.KindForbidden:
		return http.StatusForbidden
	case models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorStatus writes err with the status its kind maps to
func errorStatus(message string, w http.ResponseWriter, err error) {
	config.ErrorStatus(message, statusFor(err), w, err)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

// openUploads opens every file posted under field. The returned func closes them.
func openUploads(form *multipart.Form, field string) ([]evidence.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	if form == nil {
		return nil, closeAll, nil
	}
	var uploads []evidence.Upload
	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, models.NewValidationError("failed to read uploaded file "+fh.Filename, err)
		}
		files = append(files, f)
		uploads = append(uploads, evidence.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}
	return uploads, closeAll, nil
}
