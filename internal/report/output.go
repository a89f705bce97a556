package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"attrition/internal/features"
	"attrition/internal/training"
)

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// WriteCurveCSV writes one row per curve point with accuracy and F1 of both
// ensembles.
func WriteCurveCSV(w io.Writer, points []CurvePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"size", "rf_acc", "et_acc", "rf_f1", "et_f1"}); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{
			strconv.Itoa(p.Size),
			fmt.Sprintf("%.6f", p.RandomForest.Accuracy),
			fmt.Sprintf("%.6f", p.ExtraTrees.Accuracy),
			fmt.Sprintf("%.6f", p.RandomForest.F1),
			fmt.Sprintf("%.6f", p.ExtraTrees.F1),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func SaveCurveCSV(path string, points []CurvePoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCurveCSV(f, points); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteMetricsCSV writes the evaluated metrics of a training run, one row per
// ensemble. Values are percentages as reported by ModelInfo.
func WriteMetricsCSV(w io.Writer, res *training.Result) error {
	cw := csv.NewWriter(w)
	header := append([]string{"model", "accuracy", "precision", "recall", "f1", "roc_auc"}, features.FeatureNames[:]...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, info := range []training.ModelInfo{res.RandomForest, res.ExtraTrees} {
		rec := []string{
			info.Name,
			fmt.Sprintf("%.2f", info.Accuracy),
			fmt.Sprintf("%.2f", info.Precision),
			fmt.Sprintf("%.2f", info.Recall),
			fmt.Sprintf("%.2f", info.F1Score),
			fmt.Sprintf("%.2f", info.ROCAUC),
		}
		for _, v := range info.FeatureImportances.Values() {
			rec = append(rec, fmt.Sprintf("%.4f", v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func SaveMetricsCSV(path string, res *training.Result) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMetricsCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PlotCurve draws accuracy and F1 of both ensembles against the training size.
func PlotCurve(path string, points []CurvePoint) error {
	p := plot.New()
	p.Title.Text = "Learning curve"
	p.X.Label.Text = "Training samples"
	p.Y.Label.Text = "Score"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Legend.Top = true

	line := func(get func(CurvePoint) float64) plotter.XYs {
		pts := make(plotter.XYs, len(points))
		for i, cp := range points {
			pts[i].X = float64(cp.Size)
			pts[i].Y = get(cp)
		}
		return pts
	}
	if err := plotutil.AddLinePoints(p,
		"RF accuracy", line(func(c CurvePoint) float64 { return c.RandomForest.Accuracy }),
		"ET accuracy", line(func(c CurvePoint) float64 { return c.ExtraTrees.Accuracy }),
		"RF F1", line(func(c CurvePoint) float64 { return c.RandomForest.F1 }),
		"ET F1", line(func(c CurvePoint) float64 { return c.ExtraTrees.F1 }),
	); err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// PlotImportances draws the feature importances of both ensembles as grouped
// bars.
func PlotImportances(path string, res *training.Result) error {
	p := plot.New()
	p.Title.Text = "Feature importance"
	p.Y.Label.Text = "Importance"
	p.Y.Min = 0
	p.Legend.Top = true

	w := vg.Points(14)
	for i, info := range []training.ModelInfo{res.RandomForest, res.ExtraTrees} {
		vals := info.FeatureImportances.Values()
		bars, err := plotter.NewBarChart(plotter.Values(vals[:]), w)
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(2*i-1) * w / 2
		p.Add(bars)
		p.Legend.Add(info.Name, bars)
	}
	p.NominalX(features.FeatureNames[:]...)
	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
