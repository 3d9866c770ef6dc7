package http

import (
	"errors"
	"io"
	"net/http"

	"serverlog-analyser/internal/ingestors"
)

type uploadHandler struct {
	ingestionService ingestors.UploadIngestionService
}

func NewUploadHandler(ingestionService ingestors.UploadIngestionService) AppHttpHandler {
	return &uploadHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /upload. The "file" part is streamed straight into the
// ingestion service without buffering the whole form.
func (h *uploadHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	reader, err := r.MultipartReader()
	if err != nil {
		return errInvalidUpload("multipart form with a 'file' field is required", err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return errInvalidUpload("no file uploaded", nil)
		}
		if err != nil {
			return errInvalidUpload("malformed multipart body", err)
		}
		if part.FormName() != multipartFileField {
			_ = part.Close()
			continue
		}

		result, err := h.ingestionService.IngestUpload(r.Context(), ingestors.SourceHTTP, part.FileName(), part)
		_ = part.Close()
		if err != nil {
			return err
		}

		writeJSON(w, http.StatusAccepted, result)
		return nil
	}
}
