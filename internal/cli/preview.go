package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"

	"github.com/matzehuels/oceanplot/pkg/errors"
	dataio "github.com/matzehuels/oceanplot/pkg/io"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
	"github.com/matzehuels/oceanplot/pkg/seawater"
	"github.com/matzehuels/oceanplot/pkg/tsdiagram"
)

// previewCommand creates the preview command, an interactive T-S diagram
// drawn with braille characters.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		saltCol, tempCol, sigma string
		lon, lat, pressure      float64
		noConvert               bool
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Explore a T-S diagram in the terminal",
		Long: `Show the T-S diagram of a table in the terminal, with potential density
isolines every 1 kg/m³.

Keys: +/- zoom, arrows or hjkl pan, c connect samples, r reset, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := dataio.Import(args[0])
			if err != nil {
				return err
			}
			opts := tsdiagram.Options{NoConvert: noConvert, NoContours: true}
			if !noConvert {
				opts.Lon = previewCoordinate(table, cmd, "lon", lon)
				opts.Lat = previewCoordinate(table, cmd, "lat", lat)
				opts.Pressure = previewCoordinate(table, cmd, "pressure", pressure)
			}
			sg, err := seawater.ParseSigma(sigma)
			if err != nil {
				return err
			}
			salt, err := table.Column(saltCol)
			if err != nil {
				return err
			}
			temp, err := table.Column(tempCol)
			if err != nil {
				return err
			}

			// The diagram does the TEOS-10 conversion and drops unusable samples.
			d, err := tsdiagram.TSDiagram(plot.New(), salt, temp, opts)
			if err != nil {
				return err
			}
			m, err := newPreviewModel(args[0], d.SA, d.CT, sg)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&saltCol, "salt-column", pipeline.DefaultSaltColumn, "salinity column")
	cmd.Flags().StringVar(&tempCol, "temp-column", pipeline.DefaultTempColumn, "temperature column")
	cmd.Flags().StringVar(&sigma, "sigma", pipeline.DefaultSigma, "density reference: sigma0 ... sigma4")
	cmd.Flags().BoolVar(&noConvert, "no-convert", false, "plot salinity and temperature as given")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of every sample (default: lon column)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of every sample (default: lat column)")
	cmd.Flags().Float64Var(&pressure, "pressure", 0, "sea pressure of every sample (default: pressure column)")
	registerCompletions(cmd)

	return cmd
}

// previewCoordinate prefers an explicit flag over the column of that name.
func previewCoordinate(t *dataio.Table, cmd *cobra.Command, name string, v float64) []float64 {
	switch {
	case cmd.Flags().Changed(name):
		return []float64{v}
	case t.Has(name):
		col, _ := t.Column(name)
		return col
	}
	return nil
}

// =============================================================================
// previewModel - braille T-S scatter
// =============================================================================

var (
	previewPointStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	previewContourStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewFrameStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// view is a salinity (x) × temperature (y) window.
type view struct {
	x0, x1, y0, y1 float64
}

func (v view) zoom(f float64) view {
	cx, cy := (v.x0+v.x1)/2, (v.y0+v.y1)/2
	hx, hy := (v.x1-v.x0)/2*f, (v.y1-v.y0)/2*f
	return view{cx - hx, cx + hx, cy - hy, cy + hy}
}

func (v view) pan(fx, fy float64) view {
	dx, dy := (v.x1-v.x0)*fx, (v.y1-v.y0)*fy
	return view{v.x0 + dx, v.x1 + dx, v.y0 + dy, v.y1 + dy}
}

type previewModel struct {
	title  string
	sa, ct []float64
	sigma  seawater.Sigma
	home   view
	view   view
	lines  bool // connect consecutive samples
	width  int
	height int
}

func newPreviewModel(title string, sa, ct []float64, sg seawater.Sigma) (previewModel, error) {
	var xs, ys []float64
	for i := range sa {
		if !math.IsNaN(sa[i]) && !math.IsNaN(ct[i]) && !math.IsInf(sa[i], 0) && !math.IsInf(ct[i], 0) {
			xs = append(xs, sa[i])
			ys = append(ys, ct[i])
		}
	}
	if len(xs) == 0 {
		return previewModel{}, errors.New(errors.ErrCodeInvalidInput, "no finite samples to preview")
	}
	home := view{floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys)}
	if home.x0 == home.x1 {
		home.x0, home.x1 = home.x0-0.5, home.x1+0.5
	}
	if home.y0 == home.y1 {
		home.y0, home.y1 = home.y0-0.5, home.y1+0.5
	}
	home = home.zoom(1.1)
	return previewModel{
		title:  title,
		sa:     xs,
		ct:     ys,
		sigma:  sg,
		home:   home,
		view:   home,
		width:  80,
		height: 24,
	}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.view = m.view.zoom(0.8)
		case "-", "_":
			m.view = m.view.zoom(1.25)
		case "left", "h":
			m.view = m.view.pan(-0.1, 0)
		case "right", "l":
			m.view = m.view.pan(0.1, 0)
		case "up", "k":
			m.view = m.view.pan(0, 0.1)
		case "down", "j":
			m.view = m.view.pan(0, -0.1)
		case "r":
			m.view = m.home
		case "c":
			m.lines = !m.lines
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

// canvasSize returns the plot area in cells.
func (m previewModel) canvasSize() (w, h int) {
	return max(m.width-2, 10), max(m.height-5, 5)
}

func (m previewModel) View() string {
	w, h := m.canvasSize()
	points, contours := m.raster(w, h)

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d samples", len(m.sa))))
	b.WriteString("\n")
	b.WriteString(previewFrameStyle.Render("┌" + strings.Repeat("─", w) + "┐"))
	b.WriteString("\n")
	for y := 0; y < h; y++ {
		b.WriteString(previewFrameStyle.Render("│"))
		for x := 0; x < w; x++ {
			switch {
			case points.m[y][x] != 0:
				b.WriteString(previewPointStyle.Render(string(points.cell(x, y))))
			case contours.m[y][x] != 0:
				b.WriteString(previewContourStyle.Render(string(contours.cell(x, y))))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteString(previewFrameStyle.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString(previewFrameStyle.Render("└" + strings.Repeat("─", w) + "┘"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("S %s  T %s  %s every 1 kg/m³  ",
		StyleHighlight.Render(fmt.Sprintf("[%.3f, %.3f]", m.view.x0, m.view.x1)),
		StyleHighlight.Render(fmt.Sprintf("[%.2f, %.2f]", m.view.y0, m.view.y1)),
		m.sigma.Symbol())))
	b.WriteString(StyleDim.Render("+/- zoom  ←↑↓→ pan  c lines  r reset  q quit"))
	return b.String()
}

// raster draws the samples and the density isolines of the current view
// on w×h cells.
func (m previewModel) raster(w, h int) (points, contours *brailleBuf) {
	points, contours = newBrailleBuf(w, h), newBrailleBuf(w, h)
	mw, mh := 2*w, 4*h
	v := m.view

	toMicro := func(x, y float64) (int, int) {
		mx := (x - v.x0) / (v.x1 - v.x0) * float64(mw-1)
		my := (1 - (y-v.y0)/(v.y1-v.y0)) * float64(mh-1)
		return int(math.Round(mx)), int(math.Round(my))
	}
	px, py := 0, 0
	for i := range m.sa {
		mx, my := toMicro(m.sa[i], m.ct[i])
		if m.lines && i > 0 && visible(mx, my, mw, mh) && visible(px, py, mw, mh) {
			points.drawLineMicro(px, py, mx, my)
		}
		if visible(mx, my, mw, mh) {
			points.setPixel(mx, my)
		}
		px, py = mx, my
	}

	// An isoline passes between two neighbouring micro-pixels whose
	// densities fall into different 1 kg/m³ bins.
	bins := make([][]float64, mh)
	for my := range bins {
		bins[my] = make([]float64, mw)
		t := v.y1 - (v.y1-v.y0)*float64(my)/float64(mh-1)
		for mx := range bins[my] {
			s := v.x0 + (v.x1-v.x0)*float64(mx)/float64(mw-1)
			bins[my][mx] = math.Floor(m.sigma.Anomaly(s, t))
		}
	}
	for my := 0; my < mh; my++ {
		for mx := 0; mx < mw; mx++ {
			bin := bins[my][mx]
			if math.IsNaN(bin) {
				continue
			}
			if (mx+1 < mw && bins[my][mx+1] != bin) || (my+1 < mh && bins[my+1][mx] != bin) {
				contours.setPixel(mx, my)
			}
		}
	}
	return points, contours
}

func visible(mx, my, mw, mh int) bool {
	return mx >= 0 && mx < mw && my >= 0 && my < mh
}
