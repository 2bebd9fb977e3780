package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	httpmw "github.com/cwrk-planet/meeting-service/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

// GET /boards/all
func (h *Handler) BoardsOverview(w http.ResponseWriter, r *http.Request) {
	groups, err := h.boards.Overview(r.Context(), httpmw.UserIDFromCtx(r.Context()))
	if err != nil {
		writeError(w, r, "handler.BoardsOverview", err)
		return
	}
	resp := BoardsOverviewResponse{Projects: make([]ProjectBoardsItem, 0, len(groups))}
	for _, g := range groups {
		resp.Projects = append(resp.Projects, ProjectBoardsItem{
			Project: toProjectItem(g.Project),
			Boards:  toBoardItems(g.Boards),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /boards, GET /projects/{projectID}/boards
func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	bs, err := h.boards.Index(r.Context(), httpmw.UserIDFromCtx(r.Context()), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, r, "handler.ListBoards", err)
		return
	}
	writeJSON(w, http.StatusOK, BoardsListResponse{Items: toBoardItems(bs)})
}

// GET /boards/{id}, GET /projects/{projectID}/boards/{id}
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "board not found"})
		return
	}
	b, err := h.boards.Show(r.Context(), httpmw.UserIDFromCtx(r.Context()), chi.URLParam(r, "projectID"), id)
	if err != nil {
		writeError(w, r, "handler.GetBoard", err)
		return
	}
	writeJSON(w, http.StatusOK, toBoardItem(*b))
}

// GET /boards/new, GET /projects/{projectID}/boards/new
func (h *Handler) NewBoard(w http.ResponseWriter, r *http.Request) {
	draft, err := h.boards.New(r.Context(), httpmw.UserIDFromCtx(r.Context()), chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, r, "handler.NewBoard", err)
		return
	}
	resp := BoardDraftResponse{Projects: make([]ProjectItem, 0, len(draft.Projects))}
	if draft.Project != nil {
		p := toProjectItem(*draft.Project)
		resp.Project = &p
	}
	for _, p := range draft.Projects {
		resp.Projects = append(resp.Projects, toProjectItem(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /boards, POST /projects/{projectID}/boards
func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	project := chi.URLParam(r, "projectID")
	if project == "" {
		project = req.Project
	}

	b, err := h.boards.Create(r.Context(), httpmw.UserIDFromCtx(r.Context()), project, req.Name)
	if err != nil {
		writeError(w, r, "handler.CreateBoard", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBoardItem(*b))
}
