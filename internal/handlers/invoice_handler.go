package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"invoice-management-backend/internal/cache"
	"invoice-management-backend/internal/services/invoices"
	"invoice-management-backend/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const listCacheTTL = time.Minute

type InvoiceHandler struct {
	service *invoices.Service
	views   *cache.ViewCache
	log     *zap.Logger
}

func NewInvoiceHandler(service *invoices.Service, views *cache.ViewCache, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, views: views, log: log}
}

// FailureBoundary converts errors that escape a handler into the generic
// retryable failure view. Validation faults keep their field detail;
// everything else renders opaque.
func FailureBoundary(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var verr *validation.Error
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Something went wrong.",
				"fields": verr.Fields,
				"retry":  true,
			})
			return
		}

		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Something went wrong.",
			"retry": true,
		})
	}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	res, err := h.service.Create(c.Request.Context(), formFields(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	h.respond(c, res)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	res, err := h.service.Update(c.Request.Context(), c.Param("id"), formFields(c))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	h.respond(c, res)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	res, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	h.respond(c, res)
}

// List serves the dashboard invoice view, rendered once and cached until the
// next successful mutation invalidates it.
func (h *InvoiceHandler) List(c *gin.Context) {
	if payload, ok := h.views.Get(invoices.DashboardPath); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	payload, err := json.Marshal(gin.H{"invoices": rows})
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}
	h.views.Set(invoices.DashboardPath, payload, listCacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// respond maps a pipeline result onto the wire: redirects are terminal for
// the success path, messages render inline.
func (h *InvoiceHandler) respond(c *gin.Context, res *invoices.Result) {
	if res.Redirect != "" {
		c.Redirect(http.StatusSeeOther, res.Redirect)
		return
	}
	status := http.StatusOK
	if res.Failed {
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"message": res.Message})
}

func formFields(c *gin.Context) map[string]string {
	return map[string]string{
		"customerId": c.PostForm("customerId"),
		"amount":     c.PostForm("amount"),
		"status":     c.PostForm("status"),
	}
}
