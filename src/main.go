// ttplot renders a traveltime survey file as diagnostic PNGs.
//
// Given a unified-format data file it writes, headlessly and in one go:
//
//	traveltime.png   raw traveltime curves per shot
//	firstpicks.png   first-arrival pick curves
//	va_picks.png     pick curves in apparent-velocity mode
//	va_matrix.png    apparent velocity, shot x receiver matrix with color bar
//	va_pseudo.png    apparent velocity, pseudosection style
//
// An optional overlay file (whitespace x z rows) is drawn into the curve
// plots, matching the interactive viewer in cmd/ttviewer.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielpflieger/gimli/src/survey"
	"github.com/danielpflieger/gimli/src/ttplot"
)

type renderOptions struct {
	dataPath  string
	outDir    string
	linesPath string
	lineStep  int
	width     int
	height    int
}

func main() {
	opts := renderOptions{}
	flag.StringVar(&opts.dataPath, "data", "", "traveltime survey file (unified format, e.g. profile.sgt)")
	flag.StringVar(&opts.outDir, "out", "plots", "output directory for PNGs")
	flag.StringVar(&opts.linesPath, "lines", "", "optional overlay line file (whitespace x z rows)")
	flag.IntVar(&opts.lineStep, "step", 1, "overlay step: 1 connected polyline, 2 pairwise segments")
	size := flag.String("size", "800x500", "plot size in pixels, WxH")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	survey.SetLogLevel(*logLevel)

	if opts.dataPath == "" {
		fmt.Fprintln(os.Stderr, "ttplot: -data is required")
		flag.Usage()
		os.Exit(2)
	}
	var err error
	if opts.width, opts.height, err = parseSize(*size); err != nil {
		survey.Errorf("bad -size: %v", err)
		os.Exit(2)
	}

	if err := renderAll(opts); err != nil {
		survey.Errorf("%v", err)
		os.Exit(1)
	}
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	var w, h int
	if _, err := fmt.Sscanf(parts[0], "%d", &w); err != nil {
		return 0, 0, fmt.Errorf("width %q: %w", parts[0], err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &h); err != nil {
		return 0, 0, fmt.Errorf("height %q: %w", parts[1], err)
	}
	if w < 100 || h < 100 {
		return 0, 0, fmt.Errorf("size %dx%d too small", w, h)
	}
	return w, h, nil
}

// renderAll loads the survey once and renders every diagnostic plot into the
// output directory. Plots are independent, so they render concurrently; each
// one draws on its own surface.
func renderAll(opts renderOptions) error {
	data, err := survey.Load(opts.dataPath)
	if err != nil {
		return err
	}
	survey.Infof("loaded %s: %d sensors, %d records", opts.dataPath, data.SensorCount(), data.Size())

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	plots := []struct {
		name string
		draw func(sf *ttplot.Surface) error
	}{
		{"traveltime.png", func(sf *ttplot.Surface) error {
			return ttplot.DrawTravelTimeData(sf, data, nil)
		}},
		{"firstpicks.png", func(sf *ttplot.Surface) error {
			return ttplot.DrawFirstPicks(sf, data, nil, ttplot.PickOptions{})
		}},
		{"va_picks.png", func(sf *ttplot.Surface) error {
			return ttplot.DrawFirstPicks(sf, data, nil, ttplot.PickOptions{PlotVA: true})
		}},
		{"va_matrix.png", func(sf *ttplot.Surface) error {
			_, _, _, err := ttplot.ShowVA(sf, data, ttplot.VAOptions{})
			return err
		}},
		{"va_pseudo.png", func(sf *ttplot.Surface) error {
			_, _, _, err := ttplot.ShowVA(sf, data, ttplot.VAOptions{Pseudosection: true})
			return err
		}},
	}

	var g errgroup.Group
	for _, p := range plots {
		p := p
		g.Go(func() error {
			sf := ttplot.NewSurfaceSize(opts.width, opts.height)
			if err := p.draw(sf); err != nil {
				return fmt.Errorf("%s: %w", p.name, err)
			}
			if opts.linesPath != "" && withOverlay(p.name) {
				if err := ttplot.DrawLines(sf, opts.linesPath, opts.lineStep); err != nil {
					return fmt.Errorf("%s: overlay: %w", p.name, err)
				}
			}
			return writePNG(sf, filepath.Join(opts.outDir, p.name))
		})
	}
	return g.Wait()
}

// withOverlay reports whether the overlay file applies to the named plot;
// matrix views live in squeezed index space where profile coordinates would
// land in the wrong place.
func withOverlay(name string) bool {
	return !strings.HasPrefix(name, "va_matrix") && !strings.HasPrefix(name, "va_pseudo")
}

func writePNG(sf *ttplot.Surface, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sf.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	survey.Debugf("wrote %s", path)
	return nil
}
