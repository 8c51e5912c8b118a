package domain

import "math"

// Rates holds campaign-level aggregate percentages, rounded to one decimal.
type Rates struct {
	OpenRate   float64 `json:"open_rate"`
	ClickRate  float64 `json:"click_rate"`
	BounceRate float64 `json:"bounce_rate"`
}

// Rollup computes aggregate rates from raw counters. All rates are zero when
// nothing was sent. Pure function, safe to call concurrently.
func Rollup(sent, open, click, bounce int) Rates {
	if sent <= 0 {
		return Rates{}
	}
	return Rates{
		OpenRate:   pct(open, sent),
		ClickRate:  pct(click, sent),
		BounceRate: pct(bounce, sent),
	}
}

func pct(n, total int) float64 {
	return math.Round(float64(n)/float64(total)*1000) / 10
}
