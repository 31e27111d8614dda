// fyneprobe opens a minimal window and closes it again, to verify a working
// display environment before launching ttviewer (separates GUI stack problems
// from viewer bugs).
package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
)

func main() {
	fmt.Println("[fyneprobe] starting minimal Fyne app")
	a := app.New()
	w := a.NewWindow("Fyne Probe")
	w.SetContent(widget.NewLabel("Display works - window closes in 5s"))
	go func() {
		time.Sleep(5 * time.Second)
		fyne.Do(func() { w.Close() })
	}()
	w.ShowAndRun()
	fmt.Println("[fyneprobe] exited cleanly")
}
