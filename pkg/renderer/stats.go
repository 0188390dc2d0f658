package renderer

import (
	"time"

	"github.com/google/uuid"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RunID           uuid.UUID     // Identifies one call to Run
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	Tiles           int           // Number of tiles dispatched
	Workers         int           // Maximum concurrent tile tasks
	Duration        time.Duration // Wall time of the parallel phase and copy-back
}

// SamplesPerSecond returns the sampling throughput of the run
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}
