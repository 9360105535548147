package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/repository"
	"github.com/primowater/deliveryform/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// HandleListSubmissions handles GET /v1/admin/submissions
func HandleListSubmissions(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultListLimit
		if l := c.Query("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		offset := 0
		if o := c.Query("offset"); o != "" {
			if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
				offset = parsed
			}
		}

		records, err := repos.Submission.List(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Error("Failed to list submissions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"submissions": records,
			"limit":       limit,
			"offset":      offset,
		})
	}
}

// HandleGetSubmission handles GET /v1/admin/submissions/:id
func HandleGetSubmission(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid submission ID"})
			return
		}

		record, err := repos.Submission.GetByID(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
				return
			}
			logger.Error("Failed to get submission", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, record)
	}
}
