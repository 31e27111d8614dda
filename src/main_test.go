package main

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSurvey = `4 # shot/geophone points
# x y z
0 0 0
10 0 0
20 0 0
30 0 0
6 # measurements
# s g t
1 2 0.011
1 3 0.021
1 4 0.031
4 1 0.032
4 2 0.022
4 3 0.012
`

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("800x500")
	if err != nil {
		t.Fatalf("parseSize: %v", err)
	}
	if w != 800 || h != 500 {
		t.Fatalf("got %dx%d", w, h)
	}
	if _, _, err := parseSize("800"); err == nil {
		t.Fatal("expected error for missing height")
	}
	if _, _, err := parseSize("10x10"); err == nil {
		t.Fatal("expected error for tiny size")
	}
}

func TestWithOverlay(t *testing.T) {
	if !withOverlay("traveltime.png") || !withOverlay("firstpicks.png") {
		t.Fatal("curve plots should take the overlay")
	}
	if withOverlay("va_matrix.png") || withOverlay("va_pseudo.png") {
		t.Fatal("matrix views must not take the overlay")
	}
}

func TestRenderAllWritesEveryPlot(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "profile.sgt")
	if err := os.WriteFile(dataPath, []byte(sampleSurvey), 0o644); err != nil {
		t.Fatal(err)
	}
	linesPath := filepath.Join(dir, "line.txt")
	if err := os.WriteFile(linesPath, []byte("0 0\n15 0.005\n30 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "plots")
	opts := renderOptions{
		dataPath:  dataPath,
		outDir:    outDir,
		linesPath: linesPath,
		lineStep:  1,
		width:     400,
		height:    300,
	}
	if err := renderAll(opts); err != nil {
		t.Fatalf("renderAll: %v", err)
	}

	for _, name := range []string{"traveltime.png", "firstpicks.png", "va_picks.png", "va_matrix.png", "va_pseudo.png"} {
		st, err := os.Stat(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if st.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}

func TestRenderAllMissingData(t *testing.T) {
	opts := renderOptions{
		dataPath: filepath.Join(t.TempDir(), "nope.sgt"),
		outDir:   t.TempDir(),
		width:    400,
		height:   300,
	}
	if err := renderAll(opts); err == nil {
		t.Fatal("expected load error")
	}
}
