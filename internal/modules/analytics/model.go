package analytics

import "fmt"

// Dimension selects how demand sums are grouped.
type Dimension string

const (
	DimensionShop    Dimension = "SHOP"
	DimensionCity    Dimension = "CITY"
	DimensionCountry Dimension = "COUNTRY"
)

// ParseDimension converts a query value into a Dimension.
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "shop", string(DimensionShop):
		return DimensionShop, nil
	case "city", string(DimensionCity):
		return DimensionCity, nil
	case "country", string(DimensionCountry):
		return DimensionCountry, nil
	default:
		return "", fmt.Errorf("unknown dimension %q", s)
	}
}

// Season is a calendar-quarter bucket for consumption reports.
type Season string

const (
	SeasonSpring Season = "SPRING"
	SeasonSummer Season = "SUMMER"
	SeasonAutumn Season = "AUTUMN"
	SeasonWinter Season = "WINTER"
)

// SeasonOf maps a calendar month to its season: 3-4-5 spring, 6-7-8
// summer, 9-10-11 autumn, everything else winter.
func SeasonOf(month int) Season {
	switch month {
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	case 9, 10, 11:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

// DemandRow is the summed reservation quantity for one group key.
type DemandRow struct {
	Key   string `json:"key"`
	Total int    `json:"total"`
}

// SeasonTotal is the fulfilled consumption of one fruit in one season.
type SeasonTotal struct {
	FruitID   int64  `json:"fruit_id"`
	FruitName string `json:"fruit_name"`
	Season    Season `json:"season"`
	Total     int    `json:"total"`
}

// MonthlyTotal is the raw per-month consumption a seasonal report is
// built from.
type MonthlyTotal struct {
	FruitID   int64  `json:"fruit_id"`
	FruitName string `json:"fruit_name"`
	Month     int    `json:"month"`
	Total     int    `json:"total"`
}

// Forecast is the average daily consumption of a fruit over a date range.
// DailyAverage is rounded half-up to two decimal places. A range with no
// days yields the zero forecast.
type Forecast struct {
	FruitID      int64   `json:"fruit_id"`
	Total        int     `json:"total"`
	Days         int     `json:"days"`
	DailyAverage float64 `json:"daily_average"`
}
