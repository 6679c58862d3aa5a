package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotalAvoidsFloatDrift(t *testing.T) {
	got := LineTotal(decimal.RequireFromString("0.1"), decimal.RequireFromString("3"))
	if got.String() != "0.3" {
		t.Fatalf("expected 0.3, got %s", got.String())
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"-1.005", "-1.01"},
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := Round2(decimal.RequireFromString(tc.in))
		if got.String() != tc.want {
			t.Fatalf("Round2(%s): expected %s, got %s", tc.in, tc.want, got.String())
		}
	}
}

func TestSum(t *testing.T) {
	got := Sum(
		decimal.RequireFromString("10.10"),
		decimal.RequireFromString("0.20"),
		decimal.RequireFromString("-5.30"),
	)
	if !got.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("expected 5.00, got %s", got.String())
	}
}

func TestClamp(t *testing.T) {
	min := decimal.Zero
	max := decimal.RequireFromString("100")
	if got := Clamp(decimal.RequireFromString("150"), min, max); !got.Equal(max) {
		t.Fatalf("expected clamp to max, got %s", got.String())
	}
	if got := Clamp(decimal.RequireFromString("-1"), min, max); !got.Equal(min) {
		t.Fatalf("expected clamp to min, got %s", got.String())
	}
	mid := decimal.RequireFromString("42.42")
	if got := Clamp(mid, min, max); !got.Equal(mid) {
		t.Fatalf("expected passthrough, got %s", got.String())
	}
}
