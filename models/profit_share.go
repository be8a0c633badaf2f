package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfitShareRun records one distribution of a period's net profit among
// staff. Runs are immutable once persisted.
type ProfitShareRun struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Period    string             `json:"period" bson:"period"`
	NetProfit float64            `json:"net_profit" bson:"net_profit"`
	Residual  float64            `json:"residual" bson:"residual"`
	Lines     []ProfitShareLine  `json:"lines" bson:"lines"`
	RunBy     primitive.ObjectID `json:"run_by" bson:"run_by"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
}

type ProfitShareLine struct {
	StaffID      primitive.ObjectID `json:"staff_id" bson:"staff_id"`
	SharePercent float64            `json:"share_percent" bson:"share_percent"`
	Amount       float64            `json:"amount" bson:"amount"`
}

type ProfitShareRunPayload struct {
	Period    string  `json:"period" validate:"required,datetime=2006-01"`
	NetProfit float64 `json:"net_profit" validate:"required,gt=0"`
}

// StaffShare is a staff member's configured cut of distributed profit.
type StaffShare struct {
	StaffID      primitive.ObjectID
	SharePercent float64
}

// ComputeDistribution splits netProfit across the given shares, rounding
// each line to two decimals. Whatever the percentages leave unassigned
// (including rounding dust) stays as the residual for the company account.
func ComputeDistribution(netProfit float64, shares []StaffShare) ([]ProfitShareLine, float64) {
	lines := make([]ProfitShareLine, 0, len(shares))
	distributed := 0.0
	for _, s := range shares {
		if s.SharePercent <= 0 {
			continue
		}
		amount := math.Round(netProfit*s.SharePercent) / 100
		lines = append(lines, ProfitShareLine{
			StaffID:      s.StaffID,
			SharePercent: s.SharePercent,
			Amount:       amount,
		})
		distributed += amount
	}
	residual := math.Round((netProfit-distributed)*100) / 100
	return lines, residual
}
