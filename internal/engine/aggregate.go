package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/barcut/internal/model"
)

// Non-cuttable reasons.
const (
	ReasonMissingLength = "missing or non-positive length"
	ReasonTooLong       = "longer than stock bar"
)

// Aggregation is the validated input of one run.
type Aggregation struct {
	Demand      model.DemandSet
	NonCuttable []model.NonCuttable
	Kanban      []model.RawRecord
	Skipped     []model.ParseFailure
	Rounded     int // Parts whose length was snapped to 1/Scale
}

// Aggregate validates raw records and groups them by material. Materials
// and parts keep first-occurrence order. Records are routed as follows:
//   - remarks mentioning KANBAN go to Kanban and are never packed;
//   - a missing, zero or negative length, or one longer than the material's
//     bar, goes to NonCuttable;
//   - an unreadable length or a quantity that is not a positive integer goes
//     to Skipped;
//   - everything else becomes a PartDemand, its length rounded up to 1/Scale.
func Aggregate(records []model.RawRecord, settings model.Settings) Aggregation {
	var agg Aggregation
	index := make(map[string]int)
	q := newQuantizer(settings.Scale)
	maxQty := settings.MaxQuantity
	if maxQty <= 0 {
		maxQty = model.DefaultMaxQuantity
	}

	for i, rec := range records {
		if strings.Contains(strings.ToUpper(rec.Remarks), "KANBAN") {
			agg.Kanban = append(agg.Kanban, rec)
			continue
		}

		material := model.NormalizeMaterial(rec.Material)
		lengthStr := cleanLength(rec.Length)
		if lengthStr == "" {
			agg.NonCuttable = append(agg.NonCuttable, model.NonCuttable{
				Record:   rec,
				Material: material,
				Reason:   ReasonMissingLength,
			})
			continue
		}

		exact, err := parseLength(lengthStr)
		if err != nil {
			agg.Skipped = append(agg.Skipped, model.ParseFailure{Index: i, Record: rec, Reason: err.Error()})
			continue
		}
		qty, err := parseQuantity(rec.Quantity, maxQty)
		if err != nil {
			agg.Skipped = append(agg.Skipped, model.ParseFailure{Index: i, Record: rec, Reason: err.Error()})
			continue
		}

		// Routing compares the same units the packers use: the piece rounded
		// up against the bar rounded down.
		raw, _ := exact.Float64()
		units := q.units(raw)
		switch {
		case !exact.IsPositive() || units <= 0:
			agg.NonCuttable = append(agg.NonCuttable, model.NonCuttable{
				Record: rec, Material: material, Length: raw, Quantity: qty, Reason: ReasonMissingLength,
			})
			continue
		case units > q.capacity(settings.BarLength(material)):
			agg.NonCuttable = append(agg.NonCuttable, model.NonCuttable{
				Record: rec, Material: material, Length: raw, Quantity: qty, Reason: ReasonTooLong,
			})
			continue
		}
		length := q.length(units)
		if length != raw {
			agg.Rounded++
		}

		sourceTag := strings.TrimSpace(rec.SourceTag)
		if sourceTag == "" {
			sourceTag = model.DefaultSourceTag
		}
		part := model.NewPartDemand(material, length, qty,
			strings.TrimSpace(rec.PartNo), strings.TrimSpace(rec.PartName), sourceTag)

		pos, ok := index[material]
		if !ok {
			pos = len(agg.Demand)
			index[material] = pos
			agg.Demand = append(agg.Demand, model.MaterialDemand{Material: material})
		}
		agg.Demand[pos].Parts = append(agg.Demand[pos].Parts, part)
	}

	return agg
}

// cleanLength trims whitespace and a trailing inch mark or unit suffix.
func cleanLength(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, "in")
	return strings.TrimSpace(s)
}

func parseLength(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid length %q", s)
	}
	return d, nil
}

// parseQuantity accepts "3" and "3.0" but rejects "2.5", zero, negatives
// and anything above max.
func parseQuantity(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing quantity")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("quantity %q is not a whole number", s)
	}
	if d.LessThan(decimal.NewFromInt(1)) {
		return 0, fmt.Errorf("quantity %q must be at least 1", s)
	}
	if d.GreaterThan(decimal.NewFromInt(int64(max))) {
		return 0, fmt.Errorf("quantity %q exceeds the limit of %d pieces per record", s, max)
	}
	return int(d.IntPart()), nil
}
