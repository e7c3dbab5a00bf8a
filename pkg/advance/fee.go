package advance

import (
	"github.com/advancehq/salary-advance/pkg/constants"
	"github.com/advancehq/salary-advance/pkg/mathutil"
)

// Fee computes the advance fee for an approved advance: 5% of the requested
// amount, clamped to [$10, $50]. The floor makes small advances
// proportionally more expensive than 5%; that is deliberate policy, not a
// rounding artifact. Unapproved advances carry no fee.
func Fee(advanceAmount float64, approved bool) float64 {
	if !approved {
		return 0.0
	}
	return mathutil.Clamp(advanceAmount*constants.FeeRate, constants.FeeFloor, constants.FeeCap)
}
