package breakeven

import (
	"fmt"
	"math"
)

// Insight levels, roughly by how urgently the number deserves attention.
const (
	LevelHint    = "hint"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// Insight is one automatic observation about a scenario's metrics.
type Insight struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Thresholds for the automatic insights.
const (
	healthyGrossMargin = 0.55
	longPaybackMonths  = 24
)

// Insights inspects a scenario's metrics and returns observations worth
// flagging. An empty slice means the structure looks healthy.
func Insights(m Metrics) []Insight {
	var out []Insight

	if m.GrossMarginRatio < healthyGrossMargin {
		out = append(out, Insight{
			Level:   LevelHint,
			Message: "Gross margin is below 55% — consider trimming material or packaging cost, or revisiting the price.",
		})
	}

	if bep, ok := m.BreakEvenCupsPerDay.UnitsPerDay(); ok && m.CupsPerDay < bep {
		out = append(out, Insight{
			Level:   LevelWarning,
			Message: fmt.Sprintf("Daily volume is below the ~%d cups/day break-even point — grow average sales, upsell, or adjust the price.", int(math.Ceil(bep))),
		})
	}

	if months, ok := m.PaybackMonths.Months(); ok && months > longPaybackMonths {
		out = append(out, Insight{
			Level:   LevelInfo,
			Message: fmt.Sprintf("Payback takes about %.1f months, which is on the long side — review the capital outlay or push volume.", months),
		})
	}

	return out
}
