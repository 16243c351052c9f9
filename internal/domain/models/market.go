package models

import "time"

// OverviewStats summarizes a price series over a period.
type OverviewStats struct {
	Symbol      string    `json:"symbol"`
	Period      string    `json:"period"`
	Source      string    `json:"source"`
	Latest      float64   `json:"latest"`
	LatestDate  time.Time `json:"latest_date"`
	High        float64   `json:"high"`
	Low         float64   `json:"low"`
	Mean        float64   `json:"mean"`
	StdDev      float64   `json:"std_dev"`
	UpDays      int       `json:"up_days"`
	DownDays    int       `json:"down_days"`
	FlatDays    int       `json:"flat_days"`
	MaxDayRise  float64   `json:"max_day_rise"`
	MaxDayFall  float64   `json:"max_day_fall"`
	TotalVolume float64   `json:"total_volume"`
	Days        int       `json:"days"`
}

// BasisPoint is futures close minus the spot reference on one day.
type BasisPoint struct {
	Date    time.Time `json:"date"`
	Futures float64   `json:"futures"`
	Basis   float64   `json:"basis"`
}

// BasisReport is the basis series plus latest-value metrics.
type BasisReport struct {
	Symbol        string       `json:"symbol"`
	SpotReference float64      `json:"spot_reference"`
	Source        string       `json:"source"`
	Latest        BasisPoint   `json:"latest"`
	MeanBasis     float64      `json:"mean_basis"`
	Points        []BasisPoint `json:"points"`
}
