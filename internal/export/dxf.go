package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/barcut/internal/model"
)

// DXF layer names.
const (
	LayerBars   = "BARS"
	LayerCuts   = "CUTS"
	LayerLabels = "LABELS"
)

// Bar diagram geometry, in drawing units (the plan's length unit).
const (
	dxfBarHeight     = 1.0
	dxfBarPitch      = 2.0 // vertical distance between bars
	dxfMaterialGap   = 3.0 // extra space between materials
	dxfTextHeight    = 0.4
	dxfTitleHeight   = 0.8
	dxfLabelMargin   = 12.0 // room left of each bar for "Bar n"
	dxfOffcutLabelDx = 2.0
)

// ExportDXF draws every bar at full scale as a rectangle with a tick at each
// cut line, one material below the other, for use in CAD or on a marking
// table. Cut lengths are written inside their segments.
func ExportDXF(path string, result model.PlanResult) error {
	if result.TotalBars() == 0 {
		return fmt.Errorf("no bars to export")
	}

	d := dxf.NewDrawing()
	// ACI colours: 7 white, 1 red, 3 green.
	if _, err := d.AddLayer(LayerBars, 7, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerBars, err)
	}
	if _, err := d.AddLayer(LayerCuts, 1, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerCuts, err)
	}
	if _, err := d.AddLayer(LayerLabels, 3, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerLabels, err)
	}

	y := 0.0
	for _, mp := range result.Materials {
		if len(mp.Bars) == 0 {
			continue
		}
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		title := fmt.Sprintf("%s  bar %s  x%d", mp.Material, formatLength(mp.MasterLength), len(mp.Bars))
		if _, err := d.Text(title, 0, y, 0, dxfTitleHeight); err != nil {
			return fmt.Errorf("write title: %w", err)
		}
		y -= dxfBarPitch

		for i, bar := range mp.Bars {
			if err := drawDXFBar(d, mp.MasterLength, bar, i+1, y); err != nil {
				return fmt.Errorf("%s bar %d: %w", mp.Material, i+1, err)
			}
			y -= dxfBarPitch
		}
		y -= dxfMaterialGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func drawDXFBar(d *drawing.Drawing, masterLength float64, bar model.CutPlan, num int, y float64) error {
	x0 := dxfLabelMargin
	x1 := x0 + masterLength
	top := y + dxfBarHeight

	if err := d.ChangeLayer(LayerBars); err != nil {
		return err
	}
	outline := [][4]float64{
		{x0, y, x1, y},
		{x1, y, x1, top},
		{x1, top, x0, top},
		{x0, top, x0, y},
	}
	for _, l := range outline {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}

	// Cut lines; a cut ending exactly at the bar end needs no extra tick.
	if err := d.ChangeLayer(LayerCuts); err != nil {
		return err
	}
	pos := x0
	var centres []float64
	for _, cut := range bar.Cuts {
		centres = append(centres, pos+cut.Length/2)
		pos += cut.Length
		if pos < x1-1e-9 {
			if _, err := d.Line(pos, y, 0, pos, top, 0); err != nil {
				return err
			}
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	textY := y + (dxfBarHeight-dxfTextHeight)/2
	if _, err := d.Text(fmt.Sprintf("Bar %d", num), 0, textY, 0, dxfTextHeight); err != nil {
		return err
	}
	for i, cut := range bar.Cuts {
		if _, err := d.Text(formatLength(cut.Length), centres[i], textY, 0, dxfTextHeight); err != nil {
			return err
		}
	}
	if _, err := d.Text("offcut "+formatLength(bar.Offcut), x1+dxfOffcutLabelDx, textY, 0, dxfTextHeight); err != nil {
		return err
	}
	return nil
}
