package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/glams-api/internal/cache"
	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/service"
)

const (
	maxImageSize     = 5 << 20 // 5MB, same cap the old upload middleware had
	productsCacheKey = "products"
)

var allowedImageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
}

type ProductHTTP struct {
	S     service.ProductService
	Cache *cache.Cache[[]model.Product]
}

func NewProductHTTP(s service.ProductService, c *cache.Cache[[]model.Product]) *ProductHTTP {
	return &ProductHTTP{S: s, Cache: c}
}

func (h *ProductHTTP) List(c *gin.Context) {
	if ps, ok := h.Cache.Get(productsCacheKey); ok {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": ps, "count": len(ps)})
		return
	}
	ps, err := h.S.List()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch products", err)
		return
	}
	h.Cache.Set(productsCacheKey, ps)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": ps, "count": len(ps)})
}

func (h *ProductHTTP) Create(c *gin.Context) {
	in := productInput(c)
	img, err := imageUpload(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "File upload error", err)
		return
	}
	p, err := h.S.Create(in, img)
	if err != nil {
		failFor(c, err, "Failed to create product")
		return
	}
	h.Cache.Invalidate(productsCacheKey)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    p,
	})
}

func (h *ProductHTTP) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in := productInput(c)
	img, err := imageUpload(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "File upload error", err)
		return
	}
	// The client sends the literal string "null" in the image field to
	// drop the current image; omitting the field keeps it.
	removeImage := img == nil && c.PostForm("image") == "null"

	p, err := h.S.Update(id, in, img, removeImage)
	if err != nil {
		failFor(c, err, "Failed to update product")
		return
	}
	h.Cache.Invalidate(productsCacheKey)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    p,
	})
}

func (h *ProductHTTP) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := h.S.Delete(id)
	if err != nil {
		failFor(c, err, "Failed to delete product")
		return
	}
	h.Cache.Invalidate(productsCacheKey)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
		"data":    gin.H{"id": deleted},
	})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		fail(c, http.StatusBadRequest, "Product ID is required", nil)
		return 0, false
	}
	return uint(id), true
}

// productInput lifts the multipart form into pointers so the service can tell
// an omitted field from an empty one.
func productInput(c *gin.Context) service.ProductInput {
	field := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}
	return service.ProductInput{
		Name:             field("name"),
		Description:      field("description"),
		Category:         field("category"),
		SizeVolume:       field("size_volume"),
		UnitType:         field("unit_type"),
		Price:            field("price"),
		CostPrice:        field("cost_price"),
		StockQuantity:    field("stock_quantity"),
		ReorderLevel:     field("reorder_level"),
		WaterSource:      field("water_source"),
		TreatmentProcess: field("treatment_process"),
		ProductCode:      field("product_code"),
	}
}

func imageUpload(c *gin.Context) (*service.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil // no file attached
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		return nil, errImageType
	}
	if fh.Size > maxImageSize {
		return nil, errImageSize
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	// The service reads the stream before the handler returns, so closing
	// via request teardown is fine here.
	return &service.ImageUpload{Ext: strings.TrimPrefix(ext, "."), Content: f}, nil
}
