package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// PlanPrice is either a fixed monthly amount or "custom" (negotiated with sales).
// It marshals the way the catalog has always been published: a number for fixed
// prices and the string "custom" for enterprise.
type PlanPrice struct {
	Custom bool    `bson:"custom"`
	Amount float64 `bson:"amount"`
}

// FixedPrice returns a concrete monthly price.
func FixedPrice(amount float64) PlanPrice {
	return PlanPrice{Amount: amount}
}

// CustomPrice returns the negotiated-pricing sentinel.
func CustomPrice() PlanPrice {
	return PlanPrice{Custom: true}
}

// Numeric returns the chargeable amount. Custom prices charge nothing through
// the engine; enterprise billing happens outside it.
func (p PlanPrice) Numeric() float64 {
	if p.Custom {
		return 0
	}
	return p.Amount
}

// MarshalJSON outputs a number, or "custom" for negotiated pricing
func (p PlanPrice) MarshalJSON() ([]byte, error) {
	if p.Custom {
		return json.Marshal("custom")
	}
	return json.Marshal(p.Amount)
}

// UnmarshalJSON accepts both the numeric and the "custom" form
func (p *PlanPrice) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		if v != "custom" {
			return fmt.Errorf("invalid plan price: %q", v)
		}
		*p = CustomPrice()
	case float64:
		*p = FixedPrice(v)
	default:
		return fmt.Errorf("invalid plan price type %T", raw)
	}
	return nil
}

// MarshalBSONValue implements the bson.ValueMarshaler interface
func (p PlanPrice) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if p.Custom {
		return bson.MarshalValue("custom")
	}
	return bson.MarshalValue(p.Amount)
}

// UnmarshalBSONValue implements the bson.ValueUnmarshaler interface
func (p *PlanPrice) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var raw interface{}
	if err := bson.UnmarshalValue(t, data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*p = CustomPrice()
	case float64:
		*p = FixedPrice(v)
	case int32:
		*p = FixedPrice(float64(v))
	case int64:
		*p = FixedPrice(float64(v))
	default:
		return fmt.Errorf("invalid plan price type %T", raw)
	}
	return nil
}

// CommissionSchedule defines what the platform retains from each booking under
// a plan. Base drops as plans get more expensive; bonus applies when the
// partner hits performance targets, capped at MaxCommission.
type CommissionSchedule struct {
	Base            float64 `json:"base" bson:"base"`
	BonusPercentage float64 `json:"bonusPercentage" bson:"bonusPercentage"`
	MaxCommission   float64 `json:"maxCommission" bson:"maxCommission"`
}

// Plan is an immutable catalog entry for a subscription tier
type Plan struct {
	ID           string                 `json:"id" bson:"_id"`
	Name         string                 `json:"name" bson:"name"`
	Description  string                 `json:"description,omitempty" bson:"description,omitempty"`
	MonthlyPrice PlanPrice              `json:"monthlyPrice" bson:"monthlyPrice"`
	Commission   CommissionSchedule     `json:"commission" bson:"commission"`
	Features     map[string]interface{} `json:"features,omitempty" bson:"features,omitempty"`
	Limitations  map[string]interface{} `json:"limitations,omitempty" bson:"limitations,omitempty"`
}
