package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutoring-backend/services"
)

type SummarizeInput struct {
	TextToSummarize string `json:"textToSummarize"`
}

func respondSummary(c *gin.Context, summarizer *services.Summarizer, text string) {
	summary, err := summarizer.Summarize(c.Request.Context(), text)
	if err != nil {
		var blocked *services.SafetyBlockedError
		if errors.As(err, &blocked) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Request blocked for safety reasons: " + blocked.Reason,
				"details": blocked.Ratings,
			})
			return
		}
		log.Printf("Gemini summarization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Error generating summary via Google Gemini API",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"source":  "Google Gemini API",
	})
}

// Summarize proxies the text to Gemini with the fixed safety thresholds.
func Summarize(summarizer *services.Summarizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SummarizeInput
		if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.TextToSummarize) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": `Missing or empty "textToSummarize" field in request body.`,
			})
			return
		}
		respondSummary(c, summarizer, strings.TrimSpace(input.TextToSummarize))
	}
}

// SummarizeFile extracts the text of an uploaded PDF and summarizes it.
func SummarizeFile(summarizer *services.Summarizer) gin.HandlerFunc {
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
		if fileHeader.Header.Get("Content-Type") != "application/pdf" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF files can be summarized"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		text, err := services.ExtractTextFromPDF(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to extract text from PDF"})
			return
		}
		text = strings.TrimSpace(text)
		if text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No text could be extracted from the PDF"})
			return
		}

		respondSummary(c, summarizer, text)
	}
}
