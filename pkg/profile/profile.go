// Package profile counts executed instructions by mnemonic and
// renders the result as a bar chart.
package profile

import (
	"sort"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Profiler counts executed instructions. It is safe for concurrent
// use, the emulator records while a driver may render.
type Profiler struct {
	mu     sync.Mutex
	counts map[string]uint64
}

// Entry is the execution count of a single mnemonic.
type Entry struct {
	Name  string
	Count uint64
}

// New returns an empty Profiler.
func New() *Profiler {
	return &Profiler{counts: make(map[string]uint64)}
}

// Record counts one execution of name.
func (p *Profiler) Record(name string) {
	p.mu.Lock()
	p.counts[name]++
	p.mu.Unlock()
}

// Reset discards all counts.
func (p *Profiler) Reset() {
	p.mu.Lock()
	p.counts = make(map[string]uint64)
	p.mu.Unlock()
}

// Entries returns the counts ordered from most to least executed,
// ties broken by name.
func (p *Profiler) Entries() []Entry {
	p.mu.Lock()
	entries := make([]Entry, 0, len(p.counts))
	for name, count := range p.counts {
		entries = append(entries, Entry{name, count})
	}
	p.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Plot returns a bar chart of the current counts.
func (p *Profiler) Plot() (*plot.Plot, error) {
	entries := p.Entries()

	chart := plot.New()
	chart.Title.Text = "Instructions executed"
	chart.Y.Label.Text = "Count"

	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		names[i] = e.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotter.DefaultLineStyle.Color

	chart.Add(bars)
	chart.NominalX(names...)
	return chart, nil
}

// Save renders the bar chart to filename. The format is taken from
// the extension, as supported by plot.Save.
func (p *Profiler) Save(filename string) error {
	chart, err := p.Plot()
	if err != nil {
		return err
	}
	return chart.Save(8*vg.Inch, 4*vg.Inch, filename)
}
