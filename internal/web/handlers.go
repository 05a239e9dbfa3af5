package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/rajkumarmali01/Employee-Analysis/internal/core"
	"github.com/rajkumarmali01/Employee-Analysis/internal/web/templates"
)

// Multipart field names.
const (
	fieldMain    = "main"
	fieldSeating = "seating"
	fieldProfile = "profile"
)

// Download content types.
const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ProcessResponse is the JSON body of POST /api/process.
type ProcessResponse struct {
	RunID          string           `json:"runId"`
	Profile        string           `json:"profile"`
	FileName       string           `json:"fileName,omitempty"`
	Joined         bool             `json:"joined"`
	Columns        []string         `json:"columns"`
	Rows           [][]string       `json:"rows"`
	TotalRows      int              `json:"totalRows"`
	PrimaryColumns []string         `json:"primaryColumns"`
	SeatingColumns []string         `json:"seatingColumns,omitempty"`
	Join           *core.JoinReport `json:"join,omitempty"`
	Diagnostics    core.Diagnostics `json:"diagnostics"`
}

// ProfilesResponse is the JSON body of GET /api/profiles.
type ProfilesResponse struct {
	Default  string             `json:"default"`
	Profiles []core.ProfileInfo `json:"profiles"`
}

// handleIndex renders the upload form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	params := templates.IndexParams{
		Profiles:       s.service.Profiles(),
		DefaultProfile: s.service.DefaultProfile(),
		MaxFileSizeMB:  s.cfg.Upload.MaxFileSize >> 20,
	}
	templ.Handler(templates.IndexPage(params)).ServeHTTP(w, r)
}

// handleListProfiles returns every registered profile.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProfilesResponse{
		Default:  s.service.DefaultProfile(),
		Profiles: s.service.Profiles(),
	})
}

// handleStatus reports pipeline slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Limiter().Status())
}

// handleProcessPage runs the pipeline for the HTML form and renders the result.
// A missing main file is not an error here: the result page shows the prompt.
func (s *Server) handleProcessPage(w http.ResponseWriter, r *http.Request) {
	in, profile, err := s.readUploads(w, r)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	res, err := s.service.Process(runContext(r), profile, in)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return
	}

	params := templates.ResultParams{
		RunID:          res.RunID,
		Profile:        res.Profile,
		Diagnostics:    res.Diagnostics,
		PrimaryColumns: res.PrimaryColumns,
		SeatingColumns: res.SeatingColumns,
		Join:           res.Join,
	}
	if res.OK() {
		params.Columns, params.Rows = preview(res.Table, s.cfg.Pipeline.PreviewRows)
		params.TotalRows = res.Table.Len()
		params.Downloads = append(params.Downloads, templates.Download{
			Label: "Download CSV", FileName: res.FileName, MIME: "text/csv", Data: res.CSV,
		})
		if data, err := core.EncodeXLSX(res.Table); err != nil {
			requestLogger(r).Warn("xlsx export failed", "run_id", res.RunID, "error", err)
		} else {
			params.Downloads = append(params.Downloads, templates.Download{
				Label: "Download Excel", FileName: core.XLSXName(res.FileName), MIME: mimeXLSX, Data: data,
			})
		}
	}

	status := http.StatusOK
	if res.Diagnostics.HasErrors() {
		status = http.StatusUnprocessableEntity
	}
	templ.Handler(templates.ResultPage(params), templ.WithStatus(status)).ServeHTTP(w, r)
}

// handleProcessAPI runs the pipeline and returns the table and diagnostics as JSON.
// The status is 422 when the roster could not be processed.
func (s *Server) handleProcessAPI(w http.ResponseWriter, r *http.Request) {
	res, ok := s.processRequired(w, r)
	if !ok {
		return
	}

	resp := ProcessResponse{
		RunID:          res.RunID,
		Profile:        res.Profile,
		FileName:       res.FileName,
		Joined:         res.Joined,
		Columns:        []string{},
		Rows:           [][]string{},
		PrimaryColumns: res.PrimaryColumns,
		SeatingColumns: res.SeatingColumns,
		Join:           res.Join,
		Diagnostics:    res.Diagnostics,
	}
	if res.OK() {
		resp.Columns, resp.Rows = preview(res.Table, -1)
		resp.TotalRows = res.Table.Len()
	}

	status := http.StatusOK
	if !res.OK() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// handleDownload runs the pipeline and returns the table as an attachment.
// format=csv (default) or format=xlsx.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		respondError(w, r, fmt.Errorf("%w %q", errBadFormat, format), http.StatusBadRequest)
		return
	}

	res, ok := s.processRequired(w, r)
	if !ok {
		return
	}
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, ProcessResponse{
			RunID:          res.RunID,
			Profile:        res.Profile,
			Columns:        []string{},
			Rows:           [][]string{},
			PrimaryColumns: res.PrimaryColumns,
			SeatingColumns: res.SeatingColumns,
			Diagnostics:    res.Diagnostics,
		})
		return
	}

	name, mime, data := res.FileName, mimeCSV, res.CSV
	if format == "xlsx" {
		var err error
		if data, err = core.EncodeXLSX(res.Table); err != nil {
			respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		name, mime = core.XLSXName(res.FileName), mimeXLSX
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("X-Run-ID", res.RunID)
	if _, err := w.Write(data); err != nil {
		requestLogger(r).Warn("download write failed", "run_id", res.RunID, "error", err)
	}
}

// processRequired reads the uploads and runs the pipeline, insisting on a
// main file. It writes the error response itself and reports false on failure.
func (s *Server) processRequired(w http.ResponseWriter, r *http.Request) (*core.Result, bool) {
	in, profile, err := s.readUploads(w, r)
	if err == nil && in.Primary == nil {
		err = errNoFile
	}
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return nil, false
	}

	res, err := s.service.Process(runContext(r), profile, in)
	if err != nil {
		respondError(w, r, err, statusForError(err))
		return nil, false
	}
	return res, true
}

// readUploads parses the multipart form. Files that were not submitted are nil.
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) (core.Input, string, error) {
	maxFile := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxFile+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return core.Input{}, "", fmt.Errorf("%w: request exceeds %d bytes", errFileTooBig, maxBytes.Limit)
		}
		return core.Input{}, "", fmt.Errorf("%w: %v", errBadForm, err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	var (
		in  core.Input
		err error
	)
	if in.Primary, err = readFormFile(r, fieldMain, maxFile); err != nil {
		return core.Input{}, "", err
	}
	if in.Seating, err = readFormFile(r, fieldSeating, maxFile); err != nil {
		return core.Input{}, "", err
	}
	return in, strings.TrimSpace(r.FormValue(fieldProfile)), nil
}

// readFormFile returns the named file's bytes, or nil if it was not submitted.
func readFormFile(r *http.Request, field string, maxSize int64) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s file: %w", field, err)
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", errFileTooBig, header.Filename, header.Size, maxSize)
	}
	return readAll(file)
}

func readAll(f multipart.File) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// preview renders up to limit rows as strings. A negative limit means all rows.
func preview(t *core.Table, limit int) ([]string, [][]string) {
	records := t.Strings()
	header, rows := records[0], records[1:]
	if limit >= 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return header, rows
}
