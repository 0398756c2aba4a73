package model

import (
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaterial is the key used for records that carry no material.
const DefaultMaterial = "UNKNOWN"

// DefaultSourceTag is the source tag used for records that carry none.
const DefaultSourceTag = "UNKNOWN"

// NormalizeMaterial trims and upper-cases a material name so that
// "copper 1/4", " COPPER 1/4 " and "Copper 1/4" land in the same group.
func NormalizeMaterial(material string) string {
	m := strings.ToUpper(strings.TrimSpace(material))
	if m == "" {
		return DefaultMaterial
	}
	return m
}

// RawRecord is an unvalidated part request as produced by an importer or
// the upstream extraction pipeline. Every field is kept as text.
type RawRecord struct {
	Material  string `json:"material"`
	Length    string `json:"length"`
	Quantity  string `json:"quantity"`
	PartNo    string `json:"part_no"`
	PartName  string `json:"part_name"`
	SourceTag string `json:"source_tag"`
	Remarks   string `json:"remarks,omitempty"`
}

// PartDemand is a validated request for Quantity pieces of Length.
type PartDemand struct {
	ID        string  `json:"id"`
	Material  string  `json:"material"`
	Length    float64 `json:"length"`
	Quantity  int     `json:"quantity"`
	PartNo    string  `json:"part_no"`
	PartName  string  `json:"part_name"`
	SourceTag string  `json:"source_tag"`
}

func NewPartDemand(material string, length float64, qty int, partNo, partName, sourceTag string) PartDemand {
	return PartDemand{
		ID:        uuid.New().String()[:8],
		Material:  NormalizeMaterial(material),
		Length:    length,
		Quantity:  qty,
		PartNo:    partNo,
		PartName:  partName,
		SourceTag: sourceTag,
	}
}

// Cut returns one unit instance of the demand.
func (p PartDemand) Cut() Cut {
	return Cut{
		Length:    p.Length,
		PartNo:    p.PartNo,
		PartName:  p.PartName,
		SourceTag: p.SourceTag,
	}
}

// MaterialDemand holds the parts requested for one material, in the order
// they were first seen.
type MaterialDemand struct {
	Material string       `json:"material"`
	Parts    []PartDemand `json:"parts"`
}

// UnitCount returns the number of pieces once quantities are expanded.
func (md MaterialDemand) UnitCount() int {
	n := 0
	for _, p := range md.Parts {
		n += p.Quantity
	}
	return n
}

// TotalLength returns the summed length of every piece.
func (md MaterialDemand) TotalLength() float64 {
	var total float64
	for _, p := range md.Parts {
		total += p.Length * float64(p.Quantity)
	}
	return total
}

// DemandSet is the aggregated demand, one entry per material in
// first-occurrence order.
type DemandSet []MaterialDemand

// Cut is a single piece placed on a bar.
type Cut struct {
	Length    float64 `json:"length"`
	PartNo    string  `json:"part_no"`
	PartName  string  `json:"part_name"`
	SourceTag string  `json:"source_tag"`
}

// CutPlan is the ordered list of cuts taken from one stock bar.
type CutPlan struct {
	Cuts       []Cut   `json:"cuts"`
	UsedLength float64 `json:"used_length"`
	Offcut     float64 `json:"offcut"`
}

// Utilization returns the used share of the bar as a percentage.
func (cp CutPlan) Utilization() float64 {
	total := cp.UsedLength + cp.Offcut
	if total == 0 {
		return 0
	}
	return (cp.UsedLength / total) * 100.0
}

// PlanSource records which packer produced a material plan.
type PlanSource string

const (
	SourceHeuristic PlanSource = "heuristic"
	SourceExact     PlanSource = "exact"
)

// ExactOutcome is the result category of the bounded exact search.
type ExactOutcome string

const (
	ExactOptimal  ExactOutcome = "optimal"  // Proven minimal
	ExactFeasible ExactOutcome = "feasible" // Valid, deadline hit before proof
	ExactNone     ExactOutcome = "none"     // Timeout or no solution
	ExactSkipped  ExactOutcome = "skipped"  // Not attempted
)

// MaterialPlan is the final cutting plan for one material.
type MaterialPlan struct {
	Material      string       `json:"material"`
	MasterLength  float64      `json:"master_length"`
	Bars          []CutPlan    `json:"bars"`
	Source        PlanSource   `json:"source"`
	ExactOutcome  ExactOutcome `json:"exact_outcome"`
	HeuristicBars int          `json:"heuristic_bars"`
	LowerBound    int          `json:"lower_bound"`
	Warnings      []string     `json:"warnings,omitempty"`
}

// CutCount returns the number of cuts across all bars.
func (mp MaterialPlan) CutCount() int {
	n := 0
	for _, b := range mp.Bars {
		n += len(b.Cuts)
	}
	return n
}

// UsedLength returns the summed used length across all bars.
func (mp MaterialPlan) UsedLength() float64 {
	var total float64
	for _, b := range mp.Bars {
		total += b.UsedLength
	}
	return total
}

// TotalOffcut returns the summed offcut across all bars.
func (mp MaterialPlan) TotalOffcut() float64 {
	var total float64
	for _, b := range mp.Bars {
		total += b.Offcut
	}
	return total
}

// Utilization returns the material usage percentage across all bars.
func (mp MaterialPlan) Utilization() float64 {
	stock := mp.MasterLength * float64(len(mp.Bars))
	if stock == 0 {
		return 0
	}
	return (mp.UsedLength() / stock) * 100.0
}

// NonCuttable is a record that can never be placed on a bar. It is reported
// alongside the plan, never packed.
type NonCuttable struct {
	Record   RawRecord `json:"record"`
	Material string    `json:"material"`
	Length   float64   `json:"length"`
	Quantity int       `json:"quantity"`
	Reason   string    `json:"reason"`
}

// ParseFailure is a record dropped because its length or quantity could not
// be read.
type ParseFailure struct {
	Index  int       `json:"index"` // Position of the record in the input batch
	Record RawRecord `json:"record"`
	Reason string    `json:"reason"`
}

// PlanResult holds the full output of one optimisation run.
type PlanResult struct {
	RunID       string         `json:"run_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Settings    Settings       `json:"settings"`
	Materials   []MaterialPlan `json:"materials"`
	NonCuttable []NonCuttable  `json:"non_cuttable"`
	Kanban      []RawRecord    `json:"kanban"`
	Skipped     []ParseFailure `json:"skipped"`
}

// TotalBars returns the number of stock bars used across all materials.
func (pr PlanResult) TotalBars() int {
	n := 0
	for _, m := range pr.Materials {
		n += len(m.Bars)
	}
	return n
}

// FindMaterial returns the plan for the given material key, or nil.
func (pr *PlanResult) FindMaterial(material string) *MaterialPlan {
	key := NormalizeMaterial(material)
	for i := range pr.Materials {
		if pr.Materials[i].Material == key {
			return &pr.Materials[i]
		}
	}
	return nil
}

// Settings holds the optimiser configuration. All values are passed
// explicitly to the packers; nothing is read from package state.
type Settings struct {
	MasterLength      float64            `json:"master_length"`         // Stock bar capacity
	BarLengths        map[string]float64 `json:"bar_lengths,omitempty"` // Per-material override of MasterLength
	Scale             int64              `json:"scale"`                 // Lengths are snapped to 1/Scale before packing
	ExactEnabled      bool               `json:"exact_enabled"`         // Try the exact packer at all
	ExactTimeLimit    time.Duration      `json:"exact_time_limit"`      // Wall-clock budget per material
	ExactMaxItems     int                `json:"exact_max_items"`       // Skip exact search above this many pieces
	Workers           int                `json:"workers"`               // Materials packed in parallel
	MinReusableOffcut float64            `json:"min_reusable_offcut"`   // Offcuts at least this long are kept as stock
	MaxQuantity       int                `json:"max_quantity"`          // Pieces allowed on one record
}

// DefaultMaxQuantity caps the pieces a single record may request.
const DefaultMaxQuantity = 10000


func DefaultSettings() Settings {
	return Settings{
		MasterLength:      144.0,
		Scale:             100,
		ExactEnabled:      true,
		ExactTimeLimit:    30 * time.Second,
		ExactMaxItems:     40,
		Workers:           runtime.NumCPU(),
		MinReusableOffcut: 12.0,
		MaxQuantity:       DefaultMaxQuantity,
	}
}

// BarLength returns the stock bar capacity for a material.
func (s Settings) BarLength(material string) float64 {
	if l, ok := s.BarLengths[NormalizeMaterial(material)]; ok && l > 0 {
		return l
	}
	return s.MasterLength
}
