package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusAtStore   OrderStatus = "at_store"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	// StatusCancelled is declared but no transition reaches it.
	StatusCancelled OrderStatus = "cancelled"
)

// OrderType distinguishes goods delivery from a taxi ride.
type OrderType string

const (
	TypeDelivery OrderType = "delivery"
	TypeTaxi     OrderType = "taxi"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// TaxiItem is the item name recorded for every taxi request.
const TaxiItem = "Viaje Taxi"

// TaxiTotal is the display total of a taxi ride, whose fare is agreed on the spot.
const TaxiTotal = "A convenir"

type Order struct {
	ID          string        `json:"id"`
	ClientID    string        `json:"clientId"`
	ClientName  string        `json:"clientName"`
	VendorID    string        `json:"vendorId,omitempty"`
	PartnerID   string        `json:"partnerId,omitempty"`
	PartnerName string        `json:"partnerName,omitempty"`
	Item        string        `json:"item"`
	Type        OrderType     `json:"type"`
	Status      OrderStatus   `json:"status"`
	AddressNote string        `json:"addressNote"`
	Payment     PaymentMethod `json:"payment"`
	Total       string        `json:"total"`
	TotalNum    float64       `json:"totalNum"`
	Location    Location      `json:"location"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Open reports whether the order still needs work.
func (o Order) Open() bool {
	return o.Status != StatusDelivered
}
