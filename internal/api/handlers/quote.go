package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primowater/deliveryform/internal/pricing"
	"github.com/primowater/deliveryform/internal/service"
)

// ValidateCostcoRequest carries the membership input as typed
type ValidateCostcoRequest struct {
	Value string `json:"value"`
}

// HandleCatalog handles GET /v1/catalog
func HandleCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"water":              pricing.WaterOptions(),
			"dispensers":         pricing.DispenserOptions(),
			"delivery_fee":       pricing.DeliveryFee,
			"min_water_quantity": 2,
		})
	}
}

// HandleQuote handles POST /v1/quote
func HandleQuote(forms FormService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, forms.Quote(req))
	}
}

// HandleValidateCostco handles POST /v1/validate/costco
func HandleValidateCostco(forms FormService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateCostcoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := forms.CheckMembership(req.Value); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "message": ""})
	}
}
