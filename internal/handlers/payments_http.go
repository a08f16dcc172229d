package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/paystack"
	"example.com/glams-api/internal/service"
)

type PaymentHTTP struct {
	S service.PaymentService
}

func NewPaymentHTTP(s service.PaymentService) *PaymentHTTP { return &PaymentHTTP{S: s} }

func (h *PaymentHTTP) Initialize(c *gin.Context) {
	var in struct {
		Email     string           `json:"email"`
		Amount    float64          `json:"amount"`
		OrderData model.OrderDraft `json:"orderData"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.S.Initialize(c.Request.Context(), in.Email, in.Amount, in.OrderData)
	if err != nil {
		var gwErr *paystack.GatewayError
		switch {
		case errors.Is(err, service.ErrValidation):
			fail(c, http.StatusBadRequest, "Missing email or amount", nil)
		case errors.As(err, &gwErr):
			fail(c, http.StatusBadGateway, "Paystack initialization failed", err)
		default:
			fail(c, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authorization_url": res.AuthorizationURL,
		"reference":         res.Reference,
	})
}

func (h *PaymentHTTP) Verify(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		fail(c, http.StatusBadRequest, "Missing reference", nil)
		return
	}

	order, created, err := h.S.Verify(c.Request.Context(), reference)
	if err != nil {
		var gwErr *paystack.GatewayError
		var vErr *paystack.VerificationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Payment not successful",
				"status":  vErr.Status,
			})
		case errors.As(err, &gwErr):
			fail(c, http.StatusBadRequest, "Payment not verified", err)
		default:
			fail(c, http.StatusInternalServerError, "Failed to save order", err)
		}
		return
	}

	msg := "Payment verified and order saved"
	if !created {
		msg = "Payment already processed"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "order": order})
}
