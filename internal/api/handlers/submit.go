package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/api/middleware"
	"github.com/primowater/deliveryform/internal/domain"
	"github.com/primowater/deliveryform/internal/service"
	"github.com/primowater/deliveryform/internal/session"
	"github.com/primowater/deliveryform/internal/web"
	pkgerrors "github.com/primowater/deliveryform/pkg/errors"
)

// HandleSubmit handles POST /v1/orders/submit
func HandleSubmit(subs SubmissionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		var form domain.OrderForm
		if err := c.ShouldBind(&form); err != nil {
			verr := describeBindError(err)
			logger.Debug("Order form rejected", zap.String("field", verr.Field), zap.Error(err))
			respondSubmit(c, http.StatusUnprocessableEntity, sess.View(), form, verr.Field, verr.Message)
			return
		}

		view, err := subs.Submit(c.Request.Context(), sess, form)
		if err == nil {
			respondSubmit(c, http.StatusOK, view, form, "", "")
			return
		}

		var verr *pkgerrors.ErrValidation
		switch {
		case errors.As(err, &verr):
			respondSubmit(c, http.StatusUnprocessableEntity, view, form, verr.Field, verr.Message)
		case errors.Is(err, session.ErrSubmissionInFlight), errors.Is(err, session.ErrAlreadySubmitted):
			respondSubmit(c, http.StatusConflict, view, form, "", err.Error())
		case errors.Is(err, service.ErrSubmissionFailed):
			respondSubmit(c, http.StatusBadGateway, view, form, "", view.Error)
		default:
			logger.Error("Failed to submit order form", zap.Error(err))
			respondSubmit(c, http.StatusInternalServerError, view, form, "", "internal error")
		}
	}
}

// respondSubmit answers scripted posts with JSON and plain browser posts with the re-rendered page
func respondSubmit(c *gin.Context, status int, view domain.FormView, form domain.OrderForm, field, message string) {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		data := web.NewPageData(view, form)
		if !view.ShowError {
			data.Error = message
		}
		c.HTML(status, web.OrderPage, data)
		return
	}

	body := gin.H{"view": view}
	if message != "" {
		body["error"] = message
	}
	if field != "" {
		body["field"] = field
	}
	c.JSON(status, body)
}
