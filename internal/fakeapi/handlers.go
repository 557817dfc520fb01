package fakeapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

// FoodsHandler adapts the collection to the REST routes.
type FoodsHandler struct {
	foods  *Collection
	logger *zap.Logger
}

// NewFoodsHandler constructs the HTTP handler adapter.
func NewFoodsHandler(foods *Collection, logger *zap.Logger) *FoodsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodsHandler{foods: foods, logger: logger}
}

// List answers GET /foods.
func (h *FoodsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.foods.list())
}

// Create answers POST /foods.
func (h *FoodsHandler) Create(c *gin.Context) {
	food, ok := h.bindFood(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, h.foods.create(food))
}

// Update answers PUT /foods/:id.
func (h *FoodsHandler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	food, ok := h.bindFood(c)
	if !ok {
		return
	}

	updated, status := h.foods.update(id, food)
	if status != http.StatusOK {
		c.JSON(status, gin.H{})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete answers DELETE /foods/:id.
func (h *FoodsHandler) Delete(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	if status := h.foods.remove(id); status != http.StatusOK {
		c.JSON(status, gin.H{})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FoodsHandler) bindFood(c *gin.Context) (models.Food, bool) {
	var food models.Food
	if err := c.ShouldBindJSON(&food); err != nil {
		h.logger.Warn("invalid food payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return models.Food{}, false
	}
	if v, ok := c.Get(bodyKey); ok {
		if req, ok := v.(*Request); ok {
			h.foods.attachBody(req, food)
		}
	}
	return food, true
}

func (h *FoodsHandler) bindID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
