package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"medical-history-server/internal/auth"
	"medical-history-server/internal/middleware"
	"medical-history-server/internal/service"
	"medical-history-server/internal/utils"
)

// requirePrincipal fetches the authenticated principal or replies 401.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.Unauthorized(c, "User information not found in token")
		return auth.Principal{}, false
	}
	return principal, true
}

// parseIDParam parses a numeric path parameter or replies 400.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid "+name+" format: "+raw)
		return 0, false
	}
	return id, true
}

// bindFileUpload extracts the multipart "file" field or replies 400.
func bindFileUpload(c *gin.Context) (*service.FileUpload, func(), bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Error retrieving file from form: "+err.Error())
		return nil, nil, false
	}
	upload := &service.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	}
	return upload, func() { file.Close() }, true
}
