package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoHistory is returned when a result was produced without daily counts
var ErrNoHistory = errors.New("result has no daily history")

// RenderChart writes a PNG line chart of the S/I/R/V counts per day
func RenderChart(w io.Writer, history []models.DayCounts) error {
	if len(history) == 0 {
		return ErrNoHistory
	}

	days := make([]float64, len(history))
	susceptible := make([]float64, len(history))
	infected := make([]float64, len(history))
	recovered := make([]float64, len(history))
	vaccinated := make([]float64, len(history))
	for i, c := range history {
		days[i] = float64(c.Day)
		susceptible[i] = float64(c.Susceptible)
		infected[i] = float64(c.Infected)
		recovered[i] = float64(c.Recovered)
		vaccinated[i] = float64(c.Vaccinated)
	}
	// go-chart needs two points to draw a line
	if len(days) == 1 {
		days = append(days, days[0]+1)
		susceptible = append(susceptible, susceptible[0])
		infected = append(infected, infected[0])
		recovered = append(recovered, recovered[0])
		vaccinated = append(vaccinated, vaccinated[0])
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: "Day",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%d", int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "People",
		},
		Series: []chart.Series{
			series("Susceptible", days, susceptible, drawing.Color{R: 66, G: 133, B: 244, A: 255}),
			series("Infected", days, infected, chart.ColorRed),
			series("Recovered", days, recovered, chart.ColorGreen),
			series("Vaccinated", days, vaccinated, drawing.Color{R: 255, G: 165, B: 0, A: 255}),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func series(name string, x, y []float64, color drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: x,
		YValues: y,
		Style:   chart.Style{StrokeColor: color, StrokeWidth: 3.0},
	}
}
