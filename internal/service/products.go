package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/storage"
)

// ProductInput carries the multipart form fields. Numeric values arrive as
// strings and are coerced here; a nil pointer means the field was omitted,
// which on update keeps the stored value.
type ProductInput struct {
	Name             *string
	Description      *string
	Category         *string
	SizeVolume       *string
	UnitType         *string
	Price            *string
	CostPrice        *string
	StockQuantity    *string
	ReorderLevel     *string
	WaterSource      *string
	TreatmentProcess *string
	ProductCode      *string
}

type ImageUpload struct {
	Ext     string
	Content io.Reader
}

type ProductService interface {
	List() ([]model.Product, error)
	Get(id uint) (model.Product, error)
	Create(in ProductInput, img *ImageUpload) (model.Product, error)
	Update(id uint, in ProductInput, img *ImageUpload, removeImage bool) (model.Product, error)
	Delete(id uint) (uint, error)
}

type productService struct {
	db     *gorm.DB
	images storage.ImageStore
}

func NewProductService(db *gorm.DB, images storage.ImageStore) ProductService {
	return &productService{db: db, images: images}
}

func (s *productService) List() ([]model.Product, error) {
	var ps []model.Product
	return ps, s.db.Order("created_at desc").Find(&ps).Error
}

func (s *productService) Get(id uint) (model.Product, error) {
	var p model.Product
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, err
	}
	return p, nil
}

func (s *productService) Create(in ProductInput, img *ImageUpload) (model.Product, error) {
	var missing []string
	for _, f := range []struct {
		name string
		val  *string
	}{
		{"name", in.Name},
		{"category", in.Category},
		{"size_volume", in.SizeVolume},
		{"price", in.Price},
		{"stock_quantity", in.StockQuantity},
	} {
		if f.val == nil || *f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.Product{}, fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	p := model.Product{
		Name:         *in.Name,
		Category:     *in.Category,
		SizeVolume:   *in.SizeVolume,
		ReorderLevel: 50,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitType != nil {
		p.UnitType = *in.UnitType
	}
	if in.WaterSource != nil {
		p.WaterSource = *in.WaterSource
	}
	if in.TreatmentProcess != nil {
		p.TreatmentProcess = *in.TreatmentProcess
	}
	if in.ProductCode != nil {
		p.ProductCode = *in.ProductCode
	}

	price, err := parsePrice(*in.Price)
	if err != nil {
		return model.Product{}, err
	}
	p.Price = price
	stock, err := parseStock(*in.StockQuantity)
	if err != nil {
		return model.Product{}, err
	}
	p.StockQuantity = stock
	if in.CostPrice != nil && *in.CostPrice != "" {
		cp, err := parsePrice(*in.CostPrice)
		if err != nil {
			return model.Product{}, err
		}
		p.CostPrice = &cp
	}
	if in.ReorderLevel != nil && *in.ReorderLevel != "" {
		rl, err := strconv.Atoi(*in.ReorderLevel)
		if err != nil {
			return model.Product{}, fmt.Errorf("%w: reorder_level must be an integer", ErrValidation)
		}
		p.ReorderLevel = rl
	}

	if img != nil {
		url, err := s.images.Save(img.Ext, img.Content)
		if err != nil {
			return model.Product{}, fmt.Errorf("upload image: %w", err)
		}
		p.ImageURL = url
	}

	if err := s.db.Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *productService) Update(id uint, in ProductInput, img *ImageUpload, removeImage bool) (model.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return model.Product{}, err
	}

	if in.Name != nil && *in.Name != "" {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = *in.Category
	}
	if in.SizeVolume != nil && *in.SizeVolume != "" {
		p.SizeVolume = *in.SizeVolume
	}
	if in.UnitType != nil && *in.UnitType != "" {
		p.UnitType = *in.UnitType
	}
	if in.WaterSource != nil {
		p.WaterSource = *in.WaterSource
	}
	if in.TreatmentProcess != nil {
		p.TreatmentProcess = *in.TreatmentProcess
	}
	if in.ProductCode != nil {
		p.ProductCode = *in.ProductCode
	}
	if in.Price != nil && *in.Price != "" {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return model.Product{}, err
		}
		p.Price = price
	}
	if in.CostPrice != nil {
		if *in.CostPrice == "" {
			p.CostPrice = nil
		} else {
			cp, err := parsePrice(*in.CostPrice)
			if err != nil {
				return model.Product{}, err
			}
			p.CostPrice = &cp
		}
	}
	if in.StockQuantity != nil && *in.StockQuantity != "" {
		stock, err := parseStock(*in.StockQuantity)
		if err != nil {
			return model.Product{}, err
		}
		p.StockQuantity = stock
	}
	if in.ReorderLevel != nil && *in.ReorderLevel != "" {
		rl, err := strconv.Atoi(*in.ReorderLevel)
		if err != nil {
			return model.Product{}, fmt.Errorf("%w: reorder_level must be an integer", ErrValidation)
		}
		p.ReorderLevel = rl
	}

	switch {
	case img != nil:
		url, err := s.images.Save(img.Ext, img.Content)
		if err != nil {
			return model.Product{}, fmt.Errorf("upload image: %w", err)
		}
		s.removeImage(p.ImageURL)
		p.ImageURL = url
	case removeImage:
		s.removeImage(p.ImageURL)
		p.ImageURL = ""
	}

	if err := s.db.Save(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *productService) Delete(id uint) (uint, error) {
	p, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	s.removeImage(p.ImageURL)
	if err := s.db.Delete(&model.Product{}, id).Error; err != nil {
		return 0, err
	}
	return id, nil
}

// removeImage is best-effort: a stale file never blocks a product mutation.
func (s *productService) removeImage(url string) {
	if url == "" {
		return
	}
	if err := s.images.Remove(url); err != nil {
		log.Printf("delete product image %s: %v", url, err)
	}
}

func parsePrice(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: price must be a number", ErrValidation)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return f, nil
}

func parseStock(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: stock_quantity must be an integer", ErrValidation)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: stock_quantity must not be negative", ErrValidation)
	}
	return n, nil
}
