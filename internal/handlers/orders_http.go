package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/service"
)

type OrderHTTP struct {
	S service.OrderService
}

func NewOrderHTTP(s service.OrderService) *OrderHTTP { return &OrderHTTP{S: s} }

func (h *OrderHTTP) List(c *gin.Context) {
	orders, err := h.S.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders, "count": len(orders)})
}

func (h *OrderHTTP) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "Order ID is required", nil)
		return
	}
	order, err := h.S.Get(uint(id))
	if err != nil {
		failFor(c, err, "Failed to fetch order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}

func (h *OrderHTTP) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "Order ID is required", nil)
		return
	}
	var in struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Status == "" {
		fail(c, http.StatusBadRequest, "Status is required", nil)
		return
	}
	order, err := h.S.UpdateStatus(uint(id), in.Status)
	if err != nil {
		failFor(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
		"data":    order,
	})
}

func (h *OrderHTTP) WeeklyStats(c *gin.Context) {
	stats, err := h.S.WeeklySales()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to compute sales stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
