package main

import (
	"fmt"
	"os"
	"path/filepath"

	"activity-charts/internal/activity"
	"activity-charts/internal/features/charts"
)

// go run etc/tools/preview_charts.go
// in etc/charts/: every fixture x theme x label offset, svg and png
func main() {
	fmt.Println("Generating preview charts...")

	fixtures := []*activity.StaticSource{activity.SteamFixture(), activity.WakaTimeFixture()}
	offsets := map[string]float64{"05": charts.DefaultLabelOffset, "03": charts.AlternateLabelOffset}

	for _, src := range fixtures {
		records := activity.Select(src.Recent, activity.DefaultMinSeconds, activity.DefaultMaxRecords)
		for suffix, offset := range offsets {
			opts := charts.DefaultOptions()
			opts.LabelOffset = offset
			renderer := charts.NewRenderer(opts)

			for _, theme := range []charts.Theme{charts.Light, charts.Dark} {
				for _, ext := range []string{".svg", ".png"} {
					path := filepath.Join("etc", "charts", fmt.Sprintf("%s_%s_%s%s", src.Name(), theme.Name, suffix, ext))
					if err := renderer.Render(records, theme, "Preview: "+src.Name(), path); err != nil {
						fmt.Printf("Error generating chart: %v\n", err)
						os.Exit(1)
					}
					fmt.Printf("Chart generated: %s\n", path)
				}
			}
		}
	}
	fmt.Println("Open the files to compare label positions!")
}
