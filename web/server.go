// Package web serves a localhost-only single-user dataset browser; it
// intentionally has no auth/CSRF protection in this mode.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"chemtab/config"
	"chemtab/loader"
	"chemtab/storage"
	"chemtab/table"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store   *storage.SQLiteStore
	cfg     config.Config
	manager *loader.Manager
	log     *slog.Logger
	mux     *http.ServeMux
}

type datasetsPageView struct {
	Title string
	Rows  []DatasetRow
}

type datasetPageView struct {
	Title      string
	Dataset    DatasetRow
	View       TableView
	WhereText  string
	FormAction string
	ClearLink  string
	PrevLink   string
	NextLink   string
}

type datasetInfo struct {
	Name       string `json:"name"`
	SourceFile string `json:"sourceFile"`
	Format     string `json:"format"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	CreatedAt  string `json:"createdAt"`
}

type datasetListResponse struct {
	Datasets []datasetInfo `json:"datasets"`
}

type datasetResponse struct {
	datasetInfo
	Columns      []string        `json:"columns"`
	FilteredRows int             `json:"filteredRows"`
	Page         int             `json:"page"`
	PageCount    int             `json:"pageCount"`
	RowsPage     [][]table.Value `json:"rowsPage"`
}

func NewServer(store *storage.SQLiteStore, cfg config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	server := &Server{
		store:   store,
		cfg:     cfg,
		manager: loader.NewManager(),
		log:     logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleIndex)
	mux.HandleFunc("GET /datasets", server.handleDatasets)
	mux.HandleFunc("GET /dataset/{name}", server.handleDataset)
	mux.HandleFunc("POST /dataset/{name}/delete", server.handleDatasetDelete)
	mux.HandleFunc("POST /upload", server.handleUpload)
	mux.HandleFunc("GET /api/datasets", server.handleAPIDatasets)
	mux.HandleFunc("GET /api/dataset/{name}", server.handleAPIDataset)
	mux.HandleFunc("DELETE /api/dataset/{name}", server.handleAPIDatasetDelete)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(recorder, r)
	s.log.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", recorder.status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/datasets", http.StatusFound)
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.store.ListDatasets()
	if err != nil {
		http.Error(w, fmt.Sprintf("list datasets: %v", err), http.StatusInternalServerError)
		return
	}

	view := datasetsPageView{
		Title: "chemtab - datasets",
		Rows:  BuildDatasetList(datasets),
	}
	if err := renderTemplate(w, "datasets.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	ds, tbl, err := s.store.GetDataset(name)
	if err != nil {
		if errors.Is(err, storage.ErrDatasetNotFound) {
			http.Error(w, "dataset not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("get dataset: %v", err), http.StatusInternalServerError)
		return
	}

	wheres := r.URL.Query()["where"]
	filtered, err := filterTable(tbl, wheres)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := parsePage(r.URL.Query().Get("page"))
	tableView := BuildTableView(filtered, page, s.cfg.Preview.Rows)

	base := "/dataset/" + url.PathEscape(name)
	whereQuery := ""
	for _, where := range wheres {
		whereQuery += "&where=" + url.QueryEscape(where)
	}

	view := datasetPageView{
		Title:      "chemtab - " + name,
		Dataset:    BuildDatasetList([]storage.Dataset{ds})[0],
		View:       tableView,
		WhereText:  strings.Join(wheres, " "),
		FormAction: base,
		ClearLink:  base,
	}
	if tableView.Page > 1 {
		view.PrevLink = fmt.Sprintf("%s?page=%d%s", base, tableView.Page-1, whereQuery)
	}
	if tableView.Page < tableView.PageCount {
		view.NextLink = fmt.Sprintf("%s?page=%d%s", base, tableView.Page+1, whereQuery)
	}

	if err := renderTemplate(w, "dataset.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDatasetDelete(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	removed, err := s.store.DeleteDataset(name)
	if err != nil {
		http.Error(w, fmt.Sprintf("delete dataset: %v", err), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/datasets", http.StatusSeeOther)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart form: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// The temp file keeps the upload's extension so dispatch works unchanged.
	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		http.Error(w, fmt.Sprintf("create temp upload: %v", err), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		http.Error(w, fmt.Sprintf("save upload: %v", err), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		http.Error(w, fmt.Sprintf("close upload temp file: %v", err), http.StatusInternalServerError)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		base := filepath.Base(header.Filename)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" {
		http.Error(w, "missing dataset name", http.StatusBadRequest)
		return
	}
	overwrite := r.FormValue("overwrite") != ""

	format, err := s.manager.Registry().Resolve(filepath.Ext(tmpPath))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tbl, err := s.manager.Load(tmpPath, nil, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("load %s: %v", header.Filename, err), http.StatusBadRequest)
		return
	}

	if _, err := s.store.SaveDataset(name, header.Filename, format.String(), tbl, overwrite); err != nil {
		if errors.Is(err, storage.ErrDatasetExists) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, fmt.Sprintf("save dataset: %v", err), http.StatusInternalServerError)
		return
	}

	s.log.Info("dataset uploaded", "name", name, "file", header.Filename, "rows", tbl.NumRows())
	http.Redirect(w, r, "/dataset/"+url.PathEscape(name), http.StatusSeeOther)
}

func (s *Server) handleAPIDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := s.store.ListDatasets()
	if err != nil {
		http.Error(w, fmt.Sprintf("list datasets: %v", err), http.StatusInternalServerError)
		return
	}

	resp := datasetListResponse{Datasets: make([]datasetInfo, 0, len(datasets))}
	for _, ds := range datasets {
		resp.Datasets = append(resp.Datasets, infoFor(ds))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIDataset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	ds, tbl, err := s.store.GetDataset(name)
	if err != nil {
		if errors.Is(err, storage.ErrDatasetNotFound) {
			http.Error(w, "dataset not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("get dataset: %v", err), http.StatusInternalServerError)
		return
	}

	filtered, err := filterTable(tbl, r.URL.Query()["where"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := parsePage(r.URL.Query().Get("page"))
	start, end, page, pageCount := PageBounds(filtered.NumRows(), page, s.cfg.Preview.Rows)

	rowsPage := make([][]table.Value, 0, end-start)
	for i := start; i < end; i++ {
		row, err := filtered.Row(i)
		if err != nil {
			http.Error(w, fmt.Sprintf("read row %d: %v", i, err), http.StatusInternalServerError)
			return
		}
		rowsPage = append(rowsPage, row)
	}

	writeJSON(w, http.StatusOK, datasetResponse{
		datasetInfo:  infoFor(ds),
		Columns:      filtered.Columns(),
		FilteredRows: filtered.NumRows(),
		Page:         page,
		PageCount:    pageCount,
		RowsPage:     rowsPage,
	})
}

func (s *Server) handleAPIDatasetDelete(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	removed, err := s.store.DeleteDataset(name)
	if err != nil {
		http.Error(w, fmt.Sprintf("delete dataset: %v", err), http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterTable(t *table.Table, wheres []string) (*table.Table, error) {
	if len(wheres) == 0 {
		return t, nil
	}
	spec, err := loader.ParseFilterArgs(wheres)
	if err != nil {
		return nil, err
	}
	return spec.Apply(t)
}

func infoFor(ds storage.Dataset) datasetInfo {
	return datasetInfo{
		Name:       ds.Name,
		SourceFile: ds.SourceFile,
		Format:     ds.Format,
		Rows:       ds.RowCount,
		Cols:       ds.ColCount,
		CreatedAt:  ds.CreatedAt.Format(time.RFC3339),
	}
}

func renderTemplate(w http.ResponseWriter, pageTemplate string, data any) error {
	tmpl, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	return nil
}

func parsePage(value string) int {
	page, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}
