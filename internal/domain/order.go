package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderIdentifier string

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Valid reports whether the status is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusConfirmed,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded:
		return true
	default:
		return false
	}
}

// Order is a booking of a route.
type Order struct {
	BaseModel

	Id            OrderIdentifier `gorm:"primaryKey;size:36" json:"id"`
	OrderNo       string          `gorm:"size:32;uniqueIndex" json:"orderNo"`
	UserId        UserIdentifier  `gorm:"size:36;index" json:"userId"`
	RouteId       RouteIdentifier `gorm:"index" json:"routeId"`
	ScheduleId    string          `gorm:"size:36" json:"scheduleId,omitempty"`
	Participants  int             `json:"participants"`
	TotalPrice    float64         `json:"totalPrice"`
	Status        OrderStatus     `gorm:"size:16;index" json:"status"`
	PaymentMethod string          `gorm:"size:32" json:"paymentMethod,omitempty"`
	PaymentTime   *time.Time      `json:"paymentTime,omitempty"`
	ContactName   string          `gorm:"size:64" json:"contactName"`
	ContactPhone  string          `gorm:"size:20" json:"contactPhone"`
	Remark        string          `gorm:"size:512" json:"remark,omitempty"`
}

// CanCancel reports whether the order may still be cancelled by the customer.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusPaid
}

// OrderFilter contains the optional filters of an order search. Zero values are ignored.
type OrderFilter struct {
	UserId UserIdentifier
	Status OrderStatus
}

// NewOrderNo generates a human-readable, unique order number like MQY20240102150405A1B2C3.
func NewOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("MQY%s%s", now.Format("20060102150405"), suffix)
}

// CalculateTotal returns price times participants, rounded to cents.
func CalculateTotal(price float64, participants int) float64 {
	return math.Round(price*float64(participants)*100) / 100
}
