package ramprice

import "github.com/shopspring/decimal"

// FilterRecords returns the records matching f, then applies f's Offset and
// Limit. A zero Limit means no limit.
func FilterRecords(records []PriceRecord, f RecordFilter) []PriceRecord {
	var out []PriceRecord
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out
}

// SummaryMetric names the unit a DailySummary averages over.
type SummaryMetric string

const (
	PerGB     SummaryMetric = "Price/GB"
	PerModule SummaryMetric = "Price/Module"
)

// DailySummary is the mean price of the records observed on one date.
type DailySummary struct {
	Date    Date
	Metric  SummaryMetric
	Records int
	Mean    decimal.Decimal
}

// Summarize groups records by date and averages their prices. When
// unitSizeGB is positive the records are first narrowed to that module size
// and the mean is taken per module; otherwise it is taken per GB of total
// capacity. Dates with no records are left out. Summaries are in date order.
func Summarize(records []PriceRecord, unitSizeGB int) []DailySummary {
	metric := PerGB
	if unitSizeGB > 0 {
		metric = PerModule
		records = FilterRecords(records, RecordFilter{UnitSizeGB: &unitSizeGB})
	}

	byDate := make(map[Date][]decimal.Decimal)
	var dates []Date
	for _, r := range records {
		if _, ok := byDate[r.date]; !ok {
			dates = append(dates, r.date)
		}
		if metric == PerModule {
			byDate[r.date] = append(byDate[r.date], r.PricePerModule())
		} else {
			byDate[r.date] = append(byDate[r.date], r.PricePerGB())
		}
	}
	sortDates(dates)

	out := make([]DailySummary, 0, len(dates))
	for _, d := range dates {
		prices := byDate[d]
		out = append(out, DailySummary{
			Date:    d,
			Metric:  metric,
			Records: len(prices),
			Mean:    decimal.Avg(prices[0], prices[1:]...),
		})
	}
	return out
}
