package models

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeDistributionExactSplit(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	lines, residual := ComputeDistribution(1000, []StaffShare{
		{StaffID: a, SharePercent: 10},
		{StaffID: b, SharePercent: 25},
	})

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Amount != 100 {
		t.Errorf("expected 100 for 10%%, got %v", lines[0].Amount)
	}
	if lines[1].Amount != 250 {
		t.Errorf("expected 250 for 25%%, got %v", lines[1].Amount)
	}
	if residual != 650 {
		t.Errorf("expected 650 residual, got %v", residual)
	}
}

func TestComputeDistributionRoundsToCents(t *testing.T) {
	lines, residual := ComputeDistribution(100, []StaffShare{
		{StaffID: primitive.NewObjectID(), SharePercent: 33.333},
		{StaffID: primitive.NewObjectID(), SharePercent: 33.333},
		{StaffID: primitive.NewObjectID(), SharePercent: 33.333},
	})

	total := residual
	for _, l := range lines {
		cents := l.Amount * 100
		if math.Abs(cents-math.Round(cents)) > 1e-6 {
			t.Errorf("line amount %v is not a whole number of cents", l.Amount)
		}
		total += l.Amount
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("lines plus residual must equal the net profit, got %v", total)
	}
	if residual < 0 {
		t.Errorf("residual should not go negative on rounding, got %v", residual)
	}
}

func TestComputeDistributionSkipsZeroShares(t *testing.T) {
	keep := primitive.NewObjectID()
	lines, residual := ComputeDistribution(500, []StaffShare{
		{StaffID: primitive.NewObjectID(), SharePercent: 0},
		{StaffID: primitive.NewObjectID(), SharePercent: -5},
		{StaffID: keep, SharePercent: 50},
	})

	if len(lines) != 1 {
		t.Fatalf("expected only the positive share, got %d lines", len(lines))
	}
	if lines[0].StaffID != keep || lines[0].Amount != 250 {
		t.Errorf("unexpected line: %+v", lines[0])
	}
	if residual != 250 {
		t.Errorf("expected 250 residual, got %v", residual)
	}
}

func TestComputeDistributionNoShares(t *testing.T) {
	lines, residual := ComputeDistribution(750.25, nil)
	if len(lines) != 0 {
		t.Fatalf("expected no lines, got %d", len(lines))
	}
	if residual != 750.25 {
		t.Errorf("entire profit should remain as residual, got %v", residual)
	}
}
