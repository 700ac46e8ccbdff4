package mepreal

import (
	"time"

	"github.com/shopspring/decimal"
)

// IPCRecent lists the latest INDEC national CPI month-over-month prints, in
// percent. The open-data aggregator usually lags the office by several weeks;
// the months listed here extend a retrieved series until the API catches up.
// Append the newest print when INDEC publishes it.
var IPCRecent = []MonthlyChange{
	{Month: month(2025, time.January), Pct: decimal.NewFromFloat(2.2)},
	{Month: month(2025, time.February), Pct: decimal.NewFromFloat(2.4)},
	{Month: month(2025, time.March), Pct: decimal.NewFromFloat(3.7)},
	{Month: month(2025, time.April), Pct: decimal.NewFromFloat(2.8)},
	{Month: month(2025, time.May), Pct: decimal.NewFromFloat(1.5)},
	{Month: month(2025, time.June), Pct: decimal.NewFromFloat(1.6)},
}

// USCPI holds the US city-average CPI-U monthly index, 1982-84 = 100, not
// seasonally adjusted. Maintained by hand because the BLS API requires
// registration; good enough for a constant-dollar variant of the series.
var USCPI = []Observation{
	{Date: month(2023, time.July), Value: 305.691},
	{Date: month(2023, time.August), Value: 307.026},
	{Date: month(2023, time.September), Value: 307.789},
	{Date: month(2023, time.October), Value: 307.671},
	{Date: month(2023, time.November), Value: 307.051},
	{Date: month(2023, time.December), Value: 306.746},
	{Date: month(2024, time.January), Value: 308.417},
	{Date: month(2024, time.February), Value: 310.326},
	{Date: month(2024, time.March), Value: 312.332},
	{Date: month(2024, time.April), Value: 313.548},
	{Date: month(2024, time.May), Value: 314.069},
	{Date: month(2024, time.June), Value: 314.175},
	{Date: month(2024, time.July), Value: 314.540},
	{Date: month(2024, time.August), Value: 314.796},
	{Date: month(2024, time.September), Value: 315.301},
	{Date: month(2024, time.October), Value: 315.664},
	{Date: month(2024, time.November), Value: 315.493},
	{Date: month(2024, time.December), Value: 315.605},
	{Date: month(2025, time.January), Value: 317.671},
	{Date: month(2025, time.February), Value: 319.082},
	{Date: month(2025, time.March), Value: 319.799},
	{Date: month(2025, time.April), Value: 320.795},
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
