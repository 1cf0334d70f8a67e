package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type DirectoryHandler struct {
	directory services.DirectoryService
}

func NewDirectoryHandler(directory services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Get serves the current snapshot, loading it first if nothing has been
// fetched yet. A reload already in flight is not an error here; the caller
// just gets whatever snapshot is current.
func (dh *DirectoryHandler) Get(c *gin.Context) {
	if dh.directory.LoadCount() == 0 {
		if err := dh.directory.Reload(c.Request.Context()); err != nil && !errors.Is(err, services.ErrReloadInFlight) {
			response.RespondError(c, http.StatusInternalServerError, "directory_load_failed", err)
			return
		}
	}
	response.RespondOK(c, dh.directory.Snapshot())
}

// Reload forces a refresh. A coalesced (dropped) call reports 202 so the
// client knows a reload was already running.
func (dh *DirectoryHandler) Reload(c *gin.Context) {
	if err := dh.directory.Reload(c.Request.Context()); err != nil {
		if errors.Is(err, services.ErrReloadInFlight) {
			c.JSON(http.StatusAccepted, gin.H{"ok": true, "coalesced": true})
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "directory_reload_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
