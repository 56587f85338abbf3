package domain

import (
	"encoding/json"
	"errors"
)

var ErrInvalidSnapshot = errors.New("order snapshot is invalid")

// Snapshot is the serialized copy of an order handed from the dashboard to the route page.
type Snapshot struct {
	OrderID         int64  `json:"orderId"`
	ID              string `json:"id"`
	Status          string `json:"status"`
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress"`
	CustomerPhone   string `json:"customerPhone"`
	Note            string `json:"note"`
}

func NewSnapshot(o *Order) Snapshot {
	return Snapshot{
		OrderID:         o.ID,
		ID:              o.Reference,
		Status:          o.Status.Label(),
		CustomerName:    o.CustomerName,
		CustomerAddress: o.CustomerAddress,
		CustomerPhone:   o.CustomerPhone,
		Note:            o.Note,
	}
}

func (s Snapshot) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeSnapshot parses a stored snapshot and rejects records without a registry id.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, errors.Join(ErrInvalidSnapshot, err)
	}
	if s.OrderID <= 0 {
		return Snapshot{}, ErrInvalidSnapshot
	}
	return s, nil
}
