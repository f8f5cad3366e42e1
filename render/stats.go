package render

import "fmt"

// Stats is what the debug HUD shows.
type Stats struct {
	Frame     int
	FPS       float64
	Jumps     int
	Drawn     int
	Wireframe bool
}

// Lines formats s for display.
func (s Stats) Lines() []string {
	return []string{
		fmt.Sprintf("Frame: %d    FPS: %.2f", s.Frame, s.FPS),
		fmt.Sprintf("Jumps: %d", s.Jumps),
		fmt.Sprintf("Drawn: %d", s.Drawn),
		fmt.Sprintf("Wireframe: %v", s.Wireframe),
	}
}
