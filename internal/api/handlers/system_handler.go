package handlers

import (
	"net/http"

	"github.com/bee-edu/askbee/internal/api/respond"
	"github.com/bee-edu/askbee/internal/core"
)

const apiVersion = "v1"

type SystemHandler struct {
	db       core.DbClient
	dbURLSet bool
}

func NewSystemHandler(db core.DbClient, dbURLSet bool) *SystemHandler {
	return &SystemHandler{db: db, dbURLSet: dbURLSet}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "askbee is live!",
		"version": apiVersion,
	})
}

type statusResponse struct {
	DB       bool   `json:"db"`
	DBURLSet bool   `json:"db_url_set"`
	Error    string `json:"error,omitempty"`
}

// Status probes database connectivity for deployment debugging.
func (h *SystemHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{DBURLSet: h.dbURLSet}
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			resp.Error = err.Error()
		} else {
			resp.DB = true
		}
	}
	respond.JSON(w, http.StatusOK, resp)
}
