// Package render draws a pipeline result as a static figure: the cumulative
// and probability panels against the reference experiments, the raw channel
// scores, and the score heatmap.
package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"pahmm/internal/heatmap"
	"pahmm/internal/orient"
	"pahmm/internal/pipeline"
	"pahmm/internal/predict"
	"pahmm/internal/reference"
)

// Size of the whole figure.
var (
	Width  = 10 * vg.Inch
	Height = 14 * vg.Inch
)

// PredictionColor draws the prediction's own curves.
const PredictionColor = "#000000"

// ArrowY is the height of the CDS arrow below the curves.
const ArrowY = -0.05

// channelColors follow the Viridis5 order, one per channel.
var channelColors = [predict.NumChannels]string{"#440154", "#3B528B", "#21908C", "#5DC963", "#FDE725"}

// formats maps a file extension to a vg canvas format.
var formats = map[string]string{
	".svg":  "svg",
	".png":  "png",
	".pdf":  "pdf",
	".eps":  "eps",
	".jpg":  "jpg",
	".jpeg": "jpg",
	".tif":  "tif",
	".tiff": "tif",
}

// FormatFor picks the image format from the extension of path.
func FormatFor(path string) (string, error) {
	f, ok := formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", fmt.Errorf("unsupported plot extension %q (want svg, png, pdf, eps, jpg or tif)", filepath.Ext(path))
	}
	return f, nil
}

// PathFor derives a per-gene file name when several genes share one --plot
// path: out.svg becomes out.<gene>.svg.
func PathFor(path, gene string, many bool) string {
	if !many {
		return path
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + gene + ext
}

// Save renders res into path; the format follows the extension.
func Save(path string, res *pipeline.Result) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, res, format); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// Render writes the figure of res in format (svg, png, pdf, ...).
func Render(w io.Writer, res *pipeline.Result, format string) error {
	panels, err := Figure(res)
	if err != nil {
		return err
	}
	c, err := draw.NewFormattedCanvas(Width, Height, format)
	if err != nil {
		return err
	}
	rows := make([][]*plot.Plot, len(panels))
	for i, p := range panels {
		rows[i] = []*plot.Plot{p}
	}
	t := draw.Tiles{
		Rows:      len(rows),
		Cols:      1,
		PadY:      6 * vg.Millimeter,
		PadTop:    3 * vg.Millimeter,
		PadBottom: 3 * vg.Millimeter,
		PadLeft:   3 * vg.Millimeter,
		PadRight:  3 * vg.Millimeter,
	}
	canvases := plot.Align(rows, t, draw.New(c))
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}
	_, err = c.WriteTo(w)
	return err
}

// Figure builds the panels of res top to bottom: cumulative, probability,
// channels, heatmap. The layout decides which prediction and reference
// series fill the first two.
func Figure(res *pipeline.Result) ([]*plot.Plot, error) {
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("gene %q: nothing to plot", res.Gene)
	}
	top, err := cumulativePanel(res)
	if err != nil {
		return nil, err
	}
	bottom, err := probabilityPanel(res)
	if err != nil {
		return nil, err
	}
	ch, err := channelPanel(res)
	if err != nil {
		return nil, err
	}
	hm := heatmapPanel(res)
	for _, p := range []*plot.Plot{top, bottom} {
		fixRange(p, res)
	}
	return []*plot.Plot{top, bottom, ch, hm}, nil
}

func cumulativePanel(res *pipeline.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Legend.Top = true
	p.Legend.Left = true
	p.X.Label.Text = "genome position"
	p.Y.Label.Text = "cumulative pA probability"

	staged := res.Layout == pipeline.Staged
	if staged {
		p.Title.Text = res.Gene + ": staged cumulative pA probability"
	} else {
		p.Title.Text = res.Gene + ": cumulative pA probability"
	}
	for _, gd := range selection(res) {
		xy := make(plotter.XYs, len(gd.Cumulative))
		for i, r := range gd.Cumulative {
			xy[i] = plotter.XY{X: float64(r.Position), Y: r.All}
		}
		if err := addLine(p, gd.Family.Label(), gd.Family.Color(), xy); err != nil {
			return nil, err
		}
	}
	pred := make(plotter.XYs, len(res.Records))
	for i, a := range res.Records {
		y := a.Cumulative
		if staged {
			y = a.StagedCumulative
		}
		pred[i] = plotter.XY{X: float64(a.GenomePosition), Y: y}
	}
	if err := addLine(p, "prediction", PredictionColor, pred); err != nil {
		return nil, err
	}
	if err := addArrow(p, res.Resolution); err != nil {
		return nil, err
	}
	return p, nil
}

func probabilityPanel(res *pipeline.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Legend.Top = true
	p.X.Label.Text = "genome position"
	p.Y.Label.Text = "pA probability"

	staged := res.Layout == pipeline.Staged
	if staged {
		p.Title.Text = "pA probability (reference probability tables)"
	} else {
		p.Title.Text = "independent pA probability"
	}
	for _, gd := range selection(res) {
		var xy plotter.XYs
		if staged {
			for _, r := range gd.Probability {
				xy = append(xy, plotter.XY{X: float64(r.Position), Y: r.All})
			}
		} else {
			for _, r := range gd.Cumulative {
				xy = append(xy, plotter.XY{X: float64(r.Position), Y: r.ProbIndep})
			}
		}
		if err := addLine(p, gd.Family.Label(), gd.Family.Color(), xy); err != nil {
			return nil, err
		}
	}
	pred := make(plotter.XYs, len(res.Records))
	for i, a := range res.Records {
		pred[i] = plotter.XY{X: float64(a.GenomePosition), Y: a.ProbIndep}
	}
	if err := addLine(p, "prediction", PredictionColor, pred); err != nil {
		return nil, err
	}
	return p, nil
}

func channelPanel(res *pipeline.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "HMM channel scores"
	p.X.Label.Text = "position"
	p.Y.Label.Text = "score"
	p.Legend.Top = true
	for _, ch := range predict.Channels {
		xy := make(plotter.XYs, len(res.Records))
		for i, a := range res.Records {
			xy[i] = plotter.XY{X: float64(a.Position), Y: a.Score(ch)}
		}
		if err := addLine(p, ch.String(), channelColors[ch], xy); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func heatmapPanel(res *pipeline.Result) *plot.Plot {
	p := plot.New()
	p.Title.Text = "intensity"
	p.X.Label.Text = "position"

	cm := heatmap.ColorMap(res.Heatmap.Domain)
	hm := plotter.NewHeatMap(grid{m: res.Heatmap, n: len(res.Records)}, cm.Palette(256))
	// ColorMap widens a flat domain; keep the heat map on the same bounds.
	hm.Min, hm.Max = cm.Min(), cm.Max()
	p.Add(hm)

	ticks := make([]plot.Tick, predict.NumChannels)
	for i, ch := range predict.Channels {
		ticks[i] = plot.Tick{Value: float64(i), Label: ch.String()}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return p
}

// grid adapts a heatmap matrix to plotter.GridXYZ: columns are positions,
// rows are channels.
type grid struct {
	m heatmap.Matrix
	n int
}

func (g grid) Dims() (c, r int)   { return g.n, predict.NumChannels }
func (g grid) Z(c, r int) float64 { return g.m.At(c, predict.Channel(r)).Score }
func (g grid) X(c int) float64    { return float64(g.m.At(c, 0).Position) }
func (g grid) Y(r int) float64    { return float64(r) }

// addArrow draws the CDS from CDS1 to CDS2 below the curves.
func addArrow(p *plot.Plot, res orient.Resolution) error {
	xy := plotter.XYs{{X: float64(res.CDS1), Y: ArrowY}, {X: float64(res.CDS2), Y: ArrowY}}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return err
	}
	l.Width = vg.Points(3)
	l.Color = color.Gray{Y: 0x60}
	head, err := plotter.NewScatter(xy[1:])
	if err != nil {
		return err
	}
	head.GlyphStyle.Shape = draw.TriangleGlyph{}
	head.GlyphStyle.Radius = vg.Points(5)
	head.GlyphStyle.Color = l.Color
	p.Add(l, head)
	p.Legend.Add("CDS", l)
	return nil
}

func addLine(p *plot.Plot, name, hex string, xy plotter.XYs) error {
	if len(xy) == 0 {
		return nil
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	c, err := parseHex(hex)
	if err != nil {
		return err
	}
	l.Color = c
	l.Width = vg.Points(2)
	p.Add(l)
	p.Legend.Add(name, l)
	return nil
}

// fixRange pins antisense panels to the prediction's span with the axis
// running from aligned[0] down to aligned[N-1].
func fixRange(p *plot.Plot, res *pipeline.Result) {
	if res.Resolution.Orientation != orient.Antisense {
		return
	}
	first := float64(res.Records[0].GenomePosition)
	last := float64(res.Records[len(res.Records)-1].GenomePosition)
	p.X.Min, p.X.Max = last, first
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
}

func selection(res *pipeline.Result) []reference.GeneData {
	if res.References == nil {
		return nil
	}
	out := make([]reference.GeneData, 0, len(reference.Families))
	for _, f := range reference.Families {
		out = append(out, res.References[f])
	}
	return out
}

func parseHex(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(strings.ToLower(s), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
