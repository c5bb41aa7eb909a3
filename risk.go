package uniquify

// Risk labels. Larger measured perceptual difference maps to a lower risk of
// the asset being flagged as a near-duplicate — the direction is intentional.
const (
	RiskLow    = "Low risk"
	RiskMedium = "Medium risk"
	RiskHigh   = "High risk"
)

// ClassifyRisk maps a perceptual-hash difference percentage to a risk label.
func ClassifyRisk(phashDiffPercent float64) string {
	switch {
	case phashDiffPercent >= 45:
		return RiskLow
	case phashDiffPercent >= 30:
		return RiskMedium
	default:
		return RiskHigh
	}
}
