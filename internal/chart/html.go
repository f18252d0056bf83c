package chart

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
)

const htmlCurveColor = "rgba(0, 0, 255, 0.5)"

func (d *Dispersion) buildLine() (*charts.Line, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	xAxis := opts.XAxis{Type: "value", Name: d.XLabel, NameLocation: "middle", NameGap: 25}
	if len(d.X) > 0 {
		xAxis.Min = d.X[0]
		xAxis.Max = d.X[len(d.X)-1]
	}
	yAxis := opts.YAxis{Type: "value", Name: d.YLabel, NameLocation: "middle", NameGap: 40}
	if d.YLimits != nil {
		yAxis.Min = d.YLimits.Min
		yAxis.Max = d.YLimits.Max
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: d.Title, Width: "1000px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: d.Title, Subtitle: fmt.Sprintf("modes=%d qpoints=%d", len(d.Series), len(d.X))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
	)

	for i, s := range d.Series {
		data := make([]opts.LineData, len(d.X))
		for j, x := range d.X {
			data[j] = opts.LineData{Value: []interface{}{x, s.Y[j]}}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: htmlCurveColor, Width: 1}),
		}
		// Tick markers are attached once, to the first curve.
		if i == 0 {
			for _, v := range d.Ticks {
				seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
					Name:  fmt.Sprintf("%.3g", v),
					XAxis: v,
				}))
			}
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}
	return line, nil
}

// RenderHTML writes the chart as a standalone interactive HTML page.
func (d *Dispersion) RenderHTML(w io.Writer) error {
	line, err := d.buildLine()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// openBrowser is replaced in tests.
var openBrowser = func(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return exec.Command(cmd, args...).Start()
}

// Show writes the chart to a uniquely named HTML file in the temp directory
// and opens it in the platform browser. It returns the file path. A browser
// that fails to start is logged, not returned, since the page is still on disk.
func (d *Dispersion) Show() (string, error) {
	name := filepath.Join(os.TempDir(), "phonon-dispersion-"+uuid.NewString()+".html")
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := d.RenderHTML(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	log.Printf("Interactive chart written to %s", name)
	if err := openBrowser("file://" + name); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
	return name, nil
}
