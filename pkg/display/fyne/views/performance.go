package views

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/thelolagemann/pixel8/pkg/display/event"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// samples is the number of frame times kept on the plot.
const samples = 100

// Performance plots the time the emulator spends producing a frame.
type Performance struct {
	frameTimes []time.Duration
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) Run(window fyne.Window, events <-chan event.Event) error {
	// create the base view
	grid := container.NewVBox()
	window.SetContent(grid)

	// create plot for the frametime
	frameTimePlot := plot.New()
	frameTimePlot.Title.Text = "Frame Time"
	frameTimePlot.X.Label.Text = "Sample"
	frameTimePlot.Y.Label.Text = "Microseconds"

	line, err := plotter.NewLine(make(plotter.XYs, samples))
	if err != nil {
		return err
	}
	frameTimePlot.Add(line)

	// create an image for the frametime
	frameTimeImage := image.NewRGBA(image.Rect(0, 0, 640, 480))

	c := vgimg.NewWith(vgimg.UseImage(frameTimeImage))
	frameTimePlot.Draw(draw.New(c))

	frameTimeCanvas := canvas.NewRasterFromImage(c.Image())
	frameTimeCanvas.ScaleMode = canvas.ImageScalePixels
	frameTimeCanvas.SetMinSize(fyne.NewSize(640, 480))

	// add the image to the grid
	grid.Add(frameTimeCanvas)

	go func() {
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.FrameTime:
				p.add(e.Data.(time.Duration))
				for i := range line.XYs {
					line.XYs[i].X = float64(i)
					line.XYs[i].Y = 0
					if i < len(p.frameTimes) {
						line.XYs[i].Y = float64(p.frameTimes[i].Microseconds())
					}
				}

				// redraw the plot
				frameTimePlot.Draw(draw.New(c))
				frameTimeCanvas.Refresh()
			}
		}
	}()

	return nil
}

// add appends d to the frame times, discarding the oldest sample
// once full.
func (p *Performance) add(d time.Duration) {
	p.frameTimes = append(p.frameTimes, d)
	if len(p.frameTimes) > samples {
		p.frameTimes = p.frameTimes[len(p.frameTimes)-samples:]
	}
}
