package statusapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sadopc/mindful/internal/clock"
	"github.com/sadopc/mindful/internal/store"
)

// Repo is the record storage the API serves. *store.Store implements it.
type Repo interface {
	InsertStatus(sc store.StatusCheck) (*store.StatusCheck, error)
	ListStatus(limit int) ([]store.StatusCheck, error)
	DeleteStatus(id string) error
}

// listLimit matches the cap the dashboard has always been served.
const listLimit = 1000

type handler struct {
	repo   Repo
	clock  clock.Clock
	logger *log.Logger
}

type createRequest struct {
	ClientName string `json:"client_name"`
}

func (h *handler) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend is running successfully"})
}

func (h *handler) apiRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	checks, err := h.repo.ListStatus(listLimit)
	if err != nil {
		h.logger.Printf("list status: %v", err)
		writeErr(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if checks == nil {
		checks = []store.StatusCheck{}
	}
	writeJSON(w, http.StatusOK, checks)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ClientName) == "" {
		writeErr(w, http.StatusBadRequest, "client_name is required")
		return
	}

	sc := store.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  h.clock.Now().UTC(),
	}
	created, err := h.repo.InsertStatus(sc)
	if err != nil {
		h.logger.Printf("insert status: %v", err)
		writeErr(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	h.logger.Printf("created task %s", created.ID)
	writeJSON(w, http.StatusOK, created)
}

func (h *handler) remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := h.repo.DeleteStatus(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeErr(w, http.StatusNotFound, "Task not found")
		return
	case err != nil:
		h.logger.Printf("delete status %s: %v", id, err)
		writeErr(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	h.logger.Printf("deleted task %s", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully", "id": id})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"detail": msg})
}
