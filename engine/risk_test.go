package engine

import (
	"math"
	"testing"
)

func TestStakeCoefficientLowRange(t *testing.T) {
	cases := []struct {
		stake float64
		want  float64
	}{
		{0, 1.0},
		{10, 1.04},
		{25, 1.1},
		{50, 1.2},
	}
	for _, c := range cases {
		got := StakeCoefficient(c.stake)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("StakeCoefficient(%v) = %v, want %v", c.stake, got, c.want)
		}
	}
}

func TestStakeCoefficientContinuity(t *testing.T) {
	// Each piece must start where the previous one ends.
	boundaries := []float64{50, 75, 100, 300, 1000}
	for _, b := range boundaries {
		left := StakeCoefficient(b)
		right := StakeCoefficient(b + 1e-9)
		if math.Abs(left-right) > 1e-6 {
			t.Errorf("discontinuity at %v: left=%v right=%v", b, left, right)
		}
	}
}

func TestStakeCoefficientFloor(t *testing.T) {
	for _, stake := range []float64{2000, 5000, 1e6} {
		if got := StakeCoefficient(stake); got < 0 {
			t.Errorf("StakeCoefficient(%v) = %v, want >= 0", stake, got)
		}
	}
}

func TestCoinsRewardKnownValue(t *testing.T) {
	// C(50)=1.2, monthFactor(3)≈3.4177, sessionFactor(3)=1 → round(205.06)
	got := CoinsReward(50, 3, 3)
	if got != 205 {
		t.Errorf("CoinsReward(50, 3, 3) = %d, want 205", got)
	}
}

func TestCoinsRewardMonotonicInMonths(t *testing.T) {
	prev := int64(-1)
	for m := 1; m <= 12; m++ {
		got := CoinsReward(50, m, 3)
		if got < prev {
			t.Errorf("CoinsReward(50, %d, 3) = %d, decreased from %d", m, got, prev)
		}
		prev = got
	}
}

func TestCoinsRewardMonotonicInSessions(t *testing.T) {
	prev := int64(-1)
	for s := 1; s <= 7; s++ {
		got := CoinsReward(50, 3, s)
		if got < prev {
			t.Errorf("CoinsReward(50, 3, %d) = %d, decreased from %d", s, got, prev)
		}
		prev = got
	}
}

func TestCoinsRewardNeverNegative(t *testing.T) {
	if got := CoinsReward(5000, 12, 7); got < 0 {
		t.Errorf("CoinsReward(5000, 12, 7) = %d, want >= 0", got)
	}
}

func TestOddsMultiplier(t *testing.T) {
	cases := []struct {
		sessions, months int
		want             float64
	}{
		{3, 3, 2.7},  // 1.8 × 1.5
		{1, 1, 1.3},  // 1.2 × 1.1, rounded from 1.32
		{2, 2, 1.3},
		{5, 5, 5.0},  // 2.5 × 2.0
		{7, 12, 5.0},
		{4, 4, 2.7},
		{5, 2, 2.8},  // 2.5 × 1.1, rounded from 2.75
	}
	for _, c := range cases {
		got := OddsMultiplier(c.sessions, c.months)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("OddsMultiplier(%d, %d) = %v, want %v", c.sessions, c.months, got, c.want)
		}
	}
}

func TestRewardValue(t *testing.T) {
	// 50€/month × 3 months × 2.7
	if got := RewardValue(50, 3, 2.7); got != 405 {
		t.Errorf("RewardValue(50, 3, 2.7) = %d, want 405", got)
	}
}

func TestValidateParamsRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name     string
		bet      float64
		months   int
		sessions int
	}{
		{"zero bet", 0, 3, 3},
		{"negative bet", -10, 3, 3},
		{"nan bet", math.NaN(), 3, 3},
		{"zero months", 50, 0, 3},
		{"too many months", 50, 13, 3},
		{"zero sessions", 50, 3, 0},
		{"too many sessions", 50, 3, 8},
	}
	for _, c := range cases {
		if err := ValidateParams(c.bet, c.months, c.sessions); err == nil {
			t.Errorf("%s: ValidateParams(%v, %d, %d) = nil, want error", c.name, c.bet, c.months, c.sessions)
		}
	}
	if err := ValidateParams(50, 3, 3); err != nil {
		t.Errorf("ValidateParams(50, 3, 3) = %v, want nil", err)
	}
}
