package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/api/middleware"
	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/web"
)

// FieldUpdateRequest is one edited input on the page
type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// HandleOrderPage handles GET /
func HandleOrderPage(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			logger.Error("Order page requested without a session")
			c.String(http.StatusInternalServerError, "internal error")
			return
		}

		c.HTML(http.StatusOK, web.OrderPage, web.NewPageData(sess.View(), domain.OrderForm{}))
	}
}

// HandleGetForm handles GET /v1/form
func HandleGetForm() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id": sess.ID.String(),
			"view":       sess.View(),
		})
	}
}

// HandleApplyField handles POST /v1/form/fields
func HandleApplyField(forms FormService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		var req FieldUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		view, err := forms.ApplyField(sess, req.Field, req.Value)
		if err != nil {
			var unknown *domain.ErrUnknownField
			if errors.As(err, &unknown) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "view": view})
				return
			}
			logger.Error("Failed to apply form field", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"view": view})
	}
}
