package main

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sunfutures/internal/storage"
)

const maxUploadBytes = 5 << 20 // equipment files are small text files

// UploadsResponse lists the stored equipment files.
type UploadsResponse struct {
	Uploaded []storage.StoredFile `json:"uploaded"`
}

// handleUploads godoc
// @Summary Upload equipment files
// @Description Store .PAN/.OND equipment descriptor files for later forecast refinement
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} UploadsResponse
// @Failure 400 {object} map[string]string
// @Router /v1/uploads [post]
func (app *App) handleUploads(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files uploaded"})
		return
	}

	var resp UploadsResponse
	for _, header := range files {
		if header.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large: " + header.Filename})
			return
		}
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fileID := uuid.New().String()
		safeName := filepath.Base(header.Filename)
		stored, err := app.storageService.PutBytes(c.Request.Context(), fileID, safeName, data)
		if err != nil {
			app.logger.Error("failed to store equipment file", "filename", safeName, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
			return
		}
		resp.Uploaded = append(resp.Uploaded, stored)
	}

	c.JSON(http.StatusOK, resp)
}
