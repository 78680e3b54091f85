package httpapi

import (
	"database/sql"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"recruitin-engine/internal/store"
)

type DownloadHandler struct {
	DB         *sql.DB
	ReportsDir string
}

// GetByPath streams a generated report. Only cataloged filenames are served,
// which also shuts the door on path traversal.
func (h DownloadHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/download/"))
	if name == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "missing filename")
		return
	}
	if name != filepath.Base(name) {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such report")
		return
	}

	rep, err := store.GetReportByFilename(r.Context(), h.DB, name)
	if err == store.ErrNotFound {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such report")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	path := filepath.Join(h.ReportsDir, rep.Filename)
	f, err := os.Open(path)
	if err != nil {
		// cataloged but gone from disk
		WriteError(w, r, http.StatusNotFound, "not_found", "report file missing")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename+`"`)
	http.ServeContent(w, r, rep.Filename, rep.CreatedAt, f)
}
