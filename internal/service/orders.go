package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"example.com/glams-api/internal/model"
	"example.com/glams-api/internal/paystack"
)

type DailySales struct {
	Day    string  `json:"day"` // YYYY-MM-DD
	Orders int     `json:"orders"`
	Total  float64 `json:"total"`
}

type OrderService interface {
	// CreateFromPayment materializes a verified gateway transaction into a
	// persisted order. The bool is false when the reference was already
	// processed and the existing order is returned instead.
	CreateFromPayment(tx *paystack.VerifiedTransaction) (model.Order, bool, error)
	List() ([]model.Order, error)
	Get(id uint) (model.Order, error)
	UpdateStatus(id uint, next model.OrderStatus) (model.Order, error)
	WeeklySales() ([]DailySales, error)
}

type orderService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderService(db *gorm.DB) OrderService {
	return &orderService{db: db, now: time.Now}
}

func (s *orderService) CreateFromPayment(tx *paystack.VerifiedTransaction) (model.Order, bool, error) {
	// A retried verify for a reference we already persisted returns the
	// stored order rather than inserting a duplicate.
	if existing, err := s.byReference(tx.Reference); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrOrderNotFound) {
		return model.Order{}, false, err
	}

	draft := tx.Draft
	items := draft.Items
	if items == nil {
		items = []model.OrderItem{}
	}
	paidAt := tx.PaidAt
	if paidAt == "" {
		paidAt = s.now().UTC().Format(time.RFC3339)
	}
	deliveryMethod := draft.Customer.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = "home"
	}

	order := model.Order{
		Items:    datatypes.NewJSONSlice(items),
		Customer: datatypes.NewJSONType(draft.Customer),
		Payment: datatypes.NewJSONType(model.OrderPayment{
			Provider:  "paystack",
			Reference: tx.Reference,
			Amount:    paystack.FromKobo(tx.Amount),
			Channel:   tx.Channel,
			PaidAt:    paidAt,
		}),
		Totals:              datatypes.NewJSONType(draft.Totals),
		PaymentReference:    tx.Reference,
		Status:              model.StatusPaid,
		OrderDate:           s.now().UTC(),
		DeliveryMethod:      deliveryMethod,
		DeliveryAddress:     draft.Customer.Address,
		DeliveryCity:        draft.Customer.City,
		DeliveryState:       draft.Customer.State,
		DeliveryZipCode:     draft.Customer.ZipCode,
		SpecialInstructions: draft.Payment.SpecialInstructions,
	}

	if err := s.db.Create(&order).Error; err != nil {
		// Two verifies racing on the same reference: the unique index
		// lets exactly one insert win, the loser serves the winner's row.
		if existing, lookupErr := s.byReference(tx.Reference); lookupErr == nil {
			return existing, false, nil
		}
		return model.Order{}, false, fmt.Errorf("save order: %w", err)
	}
	return order, true, nil
}

func (s *orderService) byReference(reference string) (model.Order, error) {
	var o model.Order
	if err := s.db.Where("payment_reference = ?", reference).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Order{}, ErrOrderNotFound
		}
		return model.Order{}, err
	}
	return o, nil
}

func (s *orderService) List() ([]model.Order, error) {
	var os []model.Order
	return os, s.db.Order("order_date desc").Find(&os).Error
}

func (s *orderService) Get(id uint) (model.Order, error) {
	var o model.Order
	if err := s.db.First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Order{}, ErrOrderNotFound
		}
		return model.Order{}, err
	}
	return o, nil
}

func (s *orderService) UpdateStatus(id uint, next model.OrderStatus) (model.Order, error) {
	if !next.Valid() {
		return model.Order{}, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}
	o, err := s.Get(id)
	if err != nil {
		return model.Order{}, err
	}
	if !o.Status.CanTransition(next) {
		return model.Order{}, fmt.Errorf("%w: %s -> %s", ErrBadTransition, o.Status, next)
	}
	o.Status = next
	if err := s.db.Save(&o).Error; err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// WeeklySales aggregates the last seven days of non-cancelled orders per day.
// Grouping happens in Go so the query stays portable across drivers.
func (s *orderService) WeeklySales() ([]DailySales, error) {
	since := s.now().UTC().AddDate(0, 0, -6).Truncate(24 * time.Hour)
	var orders []model.Order
	if err := s.db.Where("order_date >= ? AND status <> ?", since, model.StatusCancelled).Find(&orders).Error; err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailySales)
	out := make([]DailySales, 0, 7)
	for i := 0; i < 7; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, DailySales{Day: day})
		byDay[day] = &out[i]
	}
	for _, o := range orders {
		day := o.OrderDate.UTC().Format("2006-01-02")
		if d, ok := byDay[day]; ok {
			d.Orders++
			d.Total += o.Totals.Data().Total
		}
	}
	return out, nil
}
