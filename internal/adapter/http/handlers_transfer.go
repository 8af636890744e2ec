package adapthttp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"

	"bodycomp/internal/transfer"
)

const maxImportBytes = 10 << 20

var errNoFile = errors.New("no file in request")

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = transfer.FormatCSV
	}

	var buf bytes.Buffer
	if err := transfer.Write(&buf, format, s.entries.List()); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == transfer.FormatJSON {
		contentType = "application/json; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": transfer.Filename(format)}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleImport merges a previously exported JSON file. The file may be sent
// as the request body or as the "file" part of a multipart form.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	body, err := importBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer func() { _ = body.Close() }()

	incoming, err := transfer.DecodeJSON(body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	res, err := s.entries.Merge(r.Context(), incoming)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	log.Printf("import by %q: %d added, %d replaced, %d total", userFromContext(r), res.Added, res.Replaced, res.Total)
	writeJSON(w, http.StatusOK, res)
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoFile, err)
	}
	return f, nil
}
