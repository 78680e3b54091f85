package domain

// MarketRow is one sector row from the market data CSV.
type MarketRow struct {
	Sector           string
	AverageSalary    int
	OpenPositions    int
	GrowthPercentage float64
	ShortageLevel    string
	TopSkills        string
	MarketTrend      string
}
