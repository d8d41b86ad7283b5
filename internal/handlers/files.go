package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"medical-history-server/internal/service"
	"medical-history-server/internal/utils"
)

// FileHandler serves authenticated file downloads.
type FileHandler struct {
	Service *service.HistoryService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(svc *service.HistoryService) *FileHandler {
	return &FileHandler{Service: svc}
}

// Download streams a file's bytes with a content-disposition header
// carrying the original filename. The caller must be allowed to view the
// parent medical history.
func (h *FileHandler) Download(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	fileID, ok := parseIDParam(c, "fileId")
	if !ok {
		return
	}

	download, err := h.Service.DownloadFile(c.Request.Context(), fileID, principal)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	defer download.Data.Close()

	contentType := download.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", download.FileName),
	}
	c.DataFromReader(http.StatusOK, -1, contentType, download.Data, headers)
}
