package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/folio-labs/folio-core/docs"
	"github.com/folio-labs/folio-core/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// FieldRequest is the body of the field mutation endpoints.
// Section is optional; when empty the section is inferred from the field
// name, with Hints as the candidate sections for array operations.
// @Description Field mutation request
type FieldRequest struct {
	Section domain.Section   `json:"section,omitempty" example:"hero"`
	Hints   []domain.Section `json:"hints,omitempty"`
	Path    string           `json:"path,omitempty" example:"facebook.url"`
	Value   any              `json:"value"`
}

// SaveResponse reports whether the document reached the cache
// @Description Save result
type SaveResponse struct {
	Saved bool `json:"saved" example:"true"`
}

// RestoreResponse reports whether a cached document was installed
// @Description Restore result
type RestoreResponse struct {
	Restored bool `json:"restored" example:"true"`
}

// RecordRequest is a panel-originated change-log entry
// @Description Change-log entry request
type RecordRequest struct {
	Action  domain.ChangeAction `json:"action" example:"image_upload"`
	Details string              `json:"details" example:"Uploaded profile photo"`
}

// TriggerRequest names an editor trigger
// @Description Editor trigger request
type TriggerRequest struct {
	Trigger domain.EditorTrigger `json:"trigger" example:"key_combo"`
}

// AutoSaveRequest toggles autosave
// @Description Autosave toggle request
type AutoSaveRequest struct {
	Enabled bool `json:"enabled" example:"true"`
}

// EditorSaveResponse is the result of saving from the editor
// @Description Editor save result
type EditorSaveResponse struct {
	Saved   bool                 `json:"saved"`
	Session domain.EditorSession `json:"session"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Ready once the initial load has finished and the cache answers
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.content.Ready() {
		writeError(w, http.StatusServiceUnavailable, "content not loaded")
		return
	}
	if s.cache != nil {
		if err := s.cache.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
}

// Content endpoints

// handleGetContent godoc
// @Summary      Get content document
// @Description  Returns the whole document, or one section with ?section=
// @Tags         Content
// @Produce      json
// @Param        section  query     string  false  "Section name"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse  "Unknown section"
// @Router       /content [get]
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	doc := s.content.Document()

	if name := r.URL.Query().Get("section"); name != "" {
		section := domain.Section(name)
		if !section.Valid() {
			writeError(w, http.StatusBadRequest, "unknown section")
			return
		}
		writeJSON(w, http.StatusOK, doc[section])
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// handleContentStatus godoc
// @Summary      Content status
// @Description  Load source, dirty flag, cache usage and history length
// @Tags         Content
// @Produce      json
// @Success      200  {object}  domain.ContentStatus
// @Router       /content/status [get]
func (s *Server) handleContentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.content.Status())
}

// handleApplyOperation godoc
// @Summary      Apply an operation
// @Description  Applies one explicit mutation. Unapplied operations return 422 with the reason.
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        request  body      domain.Operation  true  "Operation"
// @Success      200      {object}  domain.MutationResult
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  domain.MutationResult
// @Router       /content/operations [post]
func (s *Server) handleApplyOperation(w http.ResponseWriter, r *http.Request) {
	var op domain.Operation
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !op.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown operation kind")
		return
	}

	writeMutation(w, s.content.Apply(r.Context(), op))
}

// handleSetField godoc
// @Summary      Set a field
// @Description  Replaces a top-level field; the section is inferred when omitted
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        field    path      string        true  "Field name"
// @Param        request  body      FieldRequest  true  "New value"
// @Success      200      {object}  domain.MutationResult
// @Failure      422      {object}  domain.MutationResult
// @Router       /content/fields/{field} [put]
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeFieldRequest(w, r)
	if !ok {
		return
	}
	op := domain.SetField(r.PathValue("field"), req.Value).In(req.Section)
	writeMutation(w, s.content.Apply(r.Context(), op))
}

// handleSetNestedField godoc
// @Summary      Set a nested field
// @Description  Writes path (key or first.second) inside an object field, merging siblings
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        field    path      string        true  "Field name"
// @Param        request  body      FieldRequest  true  "Path and value"
// @Success      200      {object}  domain.MutationResult
// @Failure      422      {object}  domain.MutationResult
// @Router       /content/fields/{field}/nested [put]
func (s *Server) handleSetNestedField(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeFieldRequest(w, r)
	if !ok {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	op := domain.SetNestedField(r.PathValue("field"), req.Path, req.Value).In(req.Section)
	writeMutation(w, s.content.Apply(r.Context(), op))
}

// handleSetArrayItem godoc
// @Summary      Update an array item
// @Description  Shallow-merges the value into the element at index
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        field    path      string        true  "Array field name"
// @Param        index    path      int           true  "Element index"
// @Param        request  body      FieldRequest  true  "Partial element"
// @Success      200      {object}  domain.MutationResult
// @Failure      422      {object}  domain.MutationResult
// @Router       /content/fields/{field}/items/{index} [put]
func (s *Server) handleSetArrayItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	req, ok := decodeFieldRequest(w, r)
	if !ok {
		return
	}
	op := domain.SetArrayItem(r.PathValue("field"), index, req.Value, req.Hints...).In(req.Section)
	writeMutation(w, s.content.Apply(r.Context(), op))
}

// handleAppendArrayItem godoc
// @Summary      Append an array item
// @Description  Appends the value, creating the array when absent
// @Tags         Content
// @Accept       json
// @Produce      json
// @Param        field    path      string        true  "Array field name"
// @Param        request  body      FieldRequest  true  "New element"
// @Success      201      {object}  domain.MutationResult
// @Failure      422      {object}  domain.MutationResult
// @Router       /content/fields/{field}/items [post]
func (s *Server) handleAppendArrayItem(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeFieldRequest(w, r)
	if !ok {
		return
	}
	op := domain.AppendArrayItem(r.PathValue("field"), req.Value, req.Hints...).In(req.Section)
	result := s.content.Apply(r.Context(), op)
	if result.Applied {
		writeJSON(w, http.StatusCreated, result)
		return
	}
	writeMutation(w, result)
}

// handleRemoveArrayItem godoc
// @Summary      Remove an array item
// @Tags         Content
// @Produce      json
// @Param        field    path      string  true   "Array field name"
// @Param        index    path      int     true   "Element index"
// @Param        section  query     string  false  "Section name"
// @Param        hints    query     []string  false  "Candidate sections, in order"  collectionFormat(multi)
// @Success      200      {object}  domain.MutationResult
// @Failure      422      {object}  domain.MutationResult
// @Router       /content/fields/{field}/items/{index} [delete]
func (s *Server) handleRemoveArrayItem(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	var hints []domain.Section
	for _, hint := range query["hints"] {
		hints = append(hints, domain.Section(hint))
	}
	section := domain.Section(query.Get("section"))
	if section != "" && !section.Valid() {
		writeError(w, http.StatusBadRequest, "unknown section")
		return
	}
	op := domain.RemoveArrayItem(r.PathValue("field"), index, hints...).In(section)
	writeMutation(w, s.content.Apply(r.Context(), op))
}

// handleSave godoc
// @Summary      Save content
// @Description  Writes the whole document to the cache and notifies the automation hook
// @Tags         Content
// @Produce      json
// @Success      200  {object}  SaveResponse
// @Failure      503  {object}  SaveResponse  "Cache write failed"
// @Router       /content/save [post]
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !s.content.Save(r.Context()) {
		writeJSON(w, http.StatusServiceUnavailable, SaveResponse{Saved: false})
		return
	}
	writeJSON(w, http.StatusOK, SaveResponse{Saved: true})
}

// handleReload godoc
// @Summary      Force reload
// @Description  Drains pending writes, clears the cache and re-runs the load cascade
// @Tags         Content
// @Produce      json
// @Success      200  {object}  domain.LoadResult
// @Failure      503  {object}  ErrorResponse  "Reload canceled, content unchanged"
// @Router       /content/reload [post]
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	result, err := s.content.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "reload canceled, content unchanged")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleReset godoc
// @Summary      Reset to defaults
// @Description  Installs the default document and clears the cache
// @Tags         Content
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /content/reset [post]
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.content.ResetToDefault(r.Context())
	writeJSON(w, http.StatusOK, StatusResponse{Status: "reset"})
}

// handleRestore godoc
// @Summary      Restore saved changes
// @Description  Replaces the document with the cached copy
// @Tags         Content
// @Produce      json
// @Success      200  {object}  RestoreResponse
// @Failure      404  {object}  RestoreResponse  "Nothing cached"
// @Router       /content/restore [post]
func (s *Server) handleRestore(w http.ResponseWriter, r *http.Request) {
	if !s.content.LoadSavedChanges(r.Context()) {
		writeJSON(w, http.StatusNotFound, RestoreResponse{Restored: false})
		return
	}
	writeJSON(w, http.StatusOK, RestoreResponse{Restored: true})
}

// handleCleanImages godoc
// @Summary      Clean external images
// @Description  Blanks image URLs hot-linked from social networks
// @Tags         Content
// @Produce      json
// @Success      200  {array}  domain.MutationResult
// @Router       /content/clean-images [post]
func (s *Server) handleCleanImages(w http.ResponseWriter, r *http.Request) {
	results := s.content.CleanImages(r.Context())
	if results == nil {
		results = []domain.MutationResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleSearch godoc
// @Summary      Search content
// @Description  Case-insensitive substring search over every string value
// @Tags         Content
// @Produce      json
// @Param        q    query     string  true  "Search text"
// @Success      200  {array}   domain.SearchMatch
// @Failure      400  {object}  ErrorResponse
// @Router       /content/search [get]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	matches := s.content.Search(q)
	if matches == nil {
		matches = []domain.SearchMatch{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// Change log endpoints

// handleListChanges godoc
// @Summary      List changes
// @Description  Change-log entries, newest first
// @Tags         Changes
// @Produce      json
// @Param        action  query    string  false  "Action filter (substring, or all)"
// @Success      200     {array}  domain.ChangeLogEntry
// @Router       /changes [get]
func (s *Server) handleListChanges(w http.ResponseWriter, r *http.Request) {
	entries := s.content.History(r.URL.Query().Get("action"))
	if entries == nil {
		entries = []*domain.ChangeLogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleRecordChange godoc
// @Summary      Record a change
// @Description  Appends a panel-originated entry such as an image upload
// @Tags         Changes
// @Accept       json
// @Produce      json
// @Param        request  body      RecordRequest  true  "Entry"
// @Success      201      {object}  domain.ChangeLogEntry
// @Failure      400      {object}  ErrorResponse
// @Router       /changes [post]
func (s *Server) handleRecordChange(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Action.Valid() {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	writeJSON(w, http.StatusCreated, s.content.Record(req.Action, req.Details))
}

// handleRevertChange godoc
// @Summary      Revert a change
// @Description  Restores the document as it was before the entry
// @Tags         Changes
// @Produce      json
// @Param        id   path      string  true  "Entry ID"
// @Success      200  {object}  domain.ChangeLogEntry
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse  "Entry cannot be reverted"
// @Router       /changes/{id}/revert [post]
func (s *Server) handleRevertChange(w http.ResponseWriter, r *http.Request) {
	entry, err := s.content.Revert(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "change not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusConflict, "change cannot be reverted")
		default:
			writeError(w, http.StatusInternalServerError, "revert failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Editor endpoints

// handleGetEditor godoc
// @Summary      Editor session
// @Tags         Editor
// @Produce      json
// @Success      200  {object}  domain.EditorSession
// @Router       /editor [get]
func (s *Server) handleGetEditor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.Session())
}

// handleEditorTrigger godoc
// @Summary      Fire an editor trigger
// @Description  key_combo toggles; custom_event opens; escape, click_outside and close_control close
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Param        request  body      TriggerRequest  true  "Trigger"
// @Success      200      {object}  domain.EditorSession
// @Failure      400      {object}  ErrorResponse
// @Router       /editor/triggers [post]
func (s *Server) handleEditorTrigger(w http.ResponseWriter, r *http.Request) {
	var req TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.editor.Handle(r.Context(), req.Trigger)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown trigger")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleLogoClick godoc
// @Summary      Register a logo click
// @Description  Five clicks without a pause longer than three seconds open the editor
// @Tags         Editor
// @Produce      json
// @Success      200  {object}  domain.EditorSession
// @Router       /editor/logo-click [post]
func (s *Server) handleLogoClick(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.editor.LogoClick(r.Context()))
}

// handleSetAutoSave godoc
// @Summary      Toggle autosave
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Param        request  body      AutoSaveRequest  true  "Autosave flag"
// @Success      200      {object}  domain.EditorSession
// @Failure      400      {object}  ErrorResponse
// @Router       /editor/autosave [put]
func (s *Server) handleSetAutoSave(w http.ResponseWriter, r *http.Request) {
	var req AutoSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, s.editor.SetAutoSave(r.Context(), req.Enabled))
}

// handleEditorSave godoc
// @Summary      Save and close
// @Description  Saves the document and closes the editor; the editor stays open when the save fails
// @Tags         Editor
// @Produce      json
// @Success      200  {object}  EditorSaveResponse
// @Failure      503  {object}  EditorSaveResponse
// @Router       /editor/save [post]
func (s *Server) handleEditorSave(w http.ResponseWriter, r *http.Request) {
	saved, session := s.editor.SaveAndClose(r.Context())
	status := http.StatusOK
	if !saved {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, EditorSaveResponse{Saved: saved, Session: session})
}

// Helpers

func decodeFieldRequest(w http.ResponseWriter, r *http.Request) (FieldRequest, bool) {
	var req FieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Section != "" && !req.Section.Valid() {
		writeError(w, http.StatusBadRequest, "unknown section")
		return req, false
	}
	return req, true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}

// writeMutation answers 200 for applied operations and 422 otherwise
func writeMutation(w http.ResponseWriter, result domain.MutationResult) {
	if !result.Applied {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
