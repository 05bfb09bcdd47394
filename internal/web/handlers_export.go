package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/emiliopalmerini/assistroi/internal/report"
)

func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in, err := s.parseInput(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rep := s.buildReport(in)

	// Render fully before writing headers so failures still produce a 500.
	var buf bytes.Buffer
	if err := report.Write(&buf, rep, f); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(rep.GeneratedAt, f)))
	_, _ = w.Write(buf.Bytes())
}
