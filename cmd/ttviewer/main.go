// ttviewer is an interactive viewer for traveltime survey data: it loads a
// unified-format survey file and shows the diagnostic plots (raw traveltime
// curves, first picks, apparent-velocity views) with toggles for the plot
// variants, an optional overlay line file, and PNG export.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/danielpflieger/gimli/src/survey"
	"github.com/danielpflieger/gimli/src/ttplot"
)

const (
	plotTravelTime  = "Traveltime curves"
	plotFirstPicks  = "First picks"
	plotVAPicks     = "First picks (apparent velocity)"
	plotVAMatrix    = "Apparent velocity matrix"
	plotVAPseudo    = "Apparent velocity pseudosection"
	defaultPlotName = plotTravelTime
)

var plotNames = []string{plotTravelTime, plotFirstPicks, plotVAPicks, plotVAMatrix, plotVAPseudo}

type uiState struct {
	app    fyne.App
	window fyne.Window

	filePath  string
	linesPath string
	lineStep  int

	data *survey.DataContainer

	plotName string

	imgCanvas  *canvas.Image
	fileLabel  *widget.Label
	plotSelect *widget.Select
}

func main() {
	var fileFlag, linesFlag string
	var stepFlag int
	flag.StringVar(&fileFlag, "data", "", "path to a traveltime survey file (unified format)")
	flag.StringVar(&linesFlag, "lines", "", "optional overlay line file (whitespace x z rows)")
	flag.IntVar(&stepFlag, "step", 1, "overlay step: 1 connected polyline, 2 pairwise segments")
	logLevel := flag.String("loglevel", "info", "log level: debug, info, warn, error")
	flag.Parse()

	survey.SetLogLevel(*logLevel)

	a := app.NewWithID("com.gimli.ttviewer")
	w := a.NewWindow("Traveltime Viewer")
	w.Resize(fyne.NewSize(1000, 700))

	state := &uiState{
		app:       a,
		window:    w,
		filePath:  fileFlag,
		linesPath: linesFlag,
		lineStep:  stepFlag,
		plotName:  defaultPlotName,
	}

	state.fileLabel = widget.NewLabel("no file loaded")
	state.imgCanvas = canvas.NewImageFromImage(blankImage(800, 500))
	state.imgCanvas.FillMode = canvas.ImageFillContain

	state.plotSelect = widget.NewSelect(plotNames, func(v string) {
		state.plotName = v
		redraw(state)
	})
	state.plotSelect.Selected = state.plotName

	openBtn := widget.NewButton("Open…", func() {
		dialog.ShowFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			path := r.URI().Path()
			_ = r.Close()
			loadSurvey(state, path)
		}, w)
	})
	exportBtn := widget.NewButton("Export PNG…", func() { exportPNG(state) })

	top := container.NewHBox(openBtn, state.plotSelect, exportBtn, state.fileLabel)
	w.SetContent(container.NewBorder(top, nil, nil, nil, state.imgCanvas))

	if state.filePath != "" {
		loadSurvey(state, state.filePath)
	}
	w.ShowAndRun()
}

func loadSurvey(state *uiState, path string) {
	data, err := survey.Load(path)
	if err != nil {
		survey.Errorf("load %s: %v", path, err)
		dialog.ShowError(err, state.window)
		return
	}
	state.data = data
	state.filePath = path
	state.fileLabel.SetText(fmt.Sprintf("%s (%d sensors, %d records)", path, data.SensorCount(), data.Size()))
	redraw(state)
}

func redraw(state *uiState) {
	if state.data == nil {
		return
	}
	img := renderPlot(state)
	state.imgCanvas.Image = img
	state.imgCanvas.Refresh()
}

// renderPlot draws the selected plot onto a fresh surface and returns its
// image. Render errors fall back to a blank canvas so the window still
// visibly updates.
func renderPlot(state *uiState) image.Image {
	sf := ttplot.NewSurfaceSize(900, 560)
	var err error
	switch state.plotName {
	case plotTravelTime:
		err = ttplot.DrawTravelTimeData(sf, state.data, nil)
	case plotFirstPicks:
		err = ttplot.DrawFirstPicks(sf, state.data, nil, ttplot.PickOptions{})
	case plotVAPicks:
		err = ttplot.DrawFirstPicks(sf, state.data, nil, ttplot.PickOptions{PlotVA: true})
	case plotVAMatrix:
		_, _, _, err = ttplot.ShowVA(sf, state.data, ttplot.VAOptions{})
	case plotVAPseudo:
		_, _, _, err = ttplot.ShowVA(sf, state.data, ttplot.VAOptions{Pseudosection: true})
	default:
		err = fmt.Errorf("unknown plot %q", state.plotName)
	}
	if err != nil {
		survey.Errorf("%s: %v", state.plotName, err)
		return blankImage(900, 560)
	}
	if state.linesPath != "" && overlayApplies(state.plotName) {
		if err := ttplot.DrawLines(sf, state.linesPath, state.lineStep); err != nil {
			survey.Warnf("overlay %s: %v", state.linesPath, err)
		}
	}
	return sf.Image()
}

// overlayApplies reports whether the overlay belongs on the named plot; the
// matrix views use squeezed index axes where profile coordinates are wrong.
func overlayApplies(name string) bool {
	return name != plotVAMatrix && name != plotVAPseudo
}

func exportPNG(state *uiState) {
	img := state.imgCanvas.Image
	if state.data == nil || img == nil {
		dialog.ShowInformation("Export", "No plot to export.", state.window)
		return
	}
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		if err := png.Encode(w, img); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		survey.Infof("exported %s", w.URI().Path())
	}, state.window)
	d.SetFileName(suggestedName(state.plotName))
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	d.Show()
}

func suggestedName(plotName string) string {
	switch plotName {
	case plotTravelTime:
		return "traveltime.png"
	case plotFirstPicks:
		return "firstpicks.png"
	case plotVAPicks:
		return "va_picks.png"
	case plotVAMatrix:
		return "va_matrix.png"
	case plotVAPseudo:
		return "va_pseudo.png"
	}
	return "plot.png"
}

func blankImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}
