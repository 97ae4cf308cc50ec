package document

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AI-killer-project-team/backend/internal/service/docparse"
	"github.com/AI-killer-project-team/backend/pkg/utils"
)

// maxUploadBytes caps uploaded resume and job description files.
const maxUploadBytes = 10 << 20

// Handler serves document text extraction for uploaded resumes and job
// descriptions.
type Handler struct{}

// New creates the document handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts the document routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/document/extract", h.handleExtract)
}

func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	text, err := docparse.ExtractText(data, header.Filename)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to extract text")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}
