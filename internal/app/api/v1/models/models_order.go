package models

import (
	"github.com/manqiyou/manqiyou/internal/app/orders"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// OrderRequest books a route for the current user.
type OrderRequest struct {
	RouteId       uint64 `json:"routeId" validate:"required,gt=0" msg:"routeId is required"`
	ScheduleId    string `json:"scheduleId" validate:"omitempty,max=36"`
	Participants  int    `json:"participants" validate:"gte=1"`
	ContactName   string `json:"contactName" validate:"required,max=64"`
	ContactPhone  string `json:"contactPhone" validate:"required,mobile"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,max=32"`
	Remark        string `json:"remark" validate:"omitempty,max=512"`
}

func (o OrderRequest) ToBooking() orders.Booking {
	return orders.Booking{
		RouteId:       domain.RouteIdentifier(o.RouteId),
		ScheduleId:    o.ScheduleId,
		Participants:  o.Participants,
		ContactName:   o.ContactName,
		ContactPhone:  o.ContactPhone,
		PaymentMethod: o.PaymentMethod,
		Remark:        o.Remark,
	}
}
