package controllers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tutorhub/tutoring-backend/services"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UploadFile stores an image or PDF in Supabase Storage and returns its
// public URL. Oversize or wrong-type files are rejected before the adapter.
func UploadFile(uploader *services.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file attached"})
			return
		}
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds 10MB limit"})
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType != "application/pdf" && !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image or PDF files are allowed"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		name := uuid.New().String() + filepath.Ext(fileHeader.Filename)
		url, err := uploader.UploadBytes(data, name, contentType)
		if err != nil {
			log.Printf("Supabase upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "File upload failed", "error": err.Error()})
			return
		}
		if url == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "File upload failed", "error": "storage provider returned no URL"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "File uploaded successfully",
			"url":     url,
		})
	}
}
