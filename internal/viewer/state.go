package viewer

import (
	"fmt"
	"image/color"
)

// State is the coarse rendering progress of the embedded viewer
type State int

const (
	Unknown State = iota
	Empty
	Loading
	Loaded
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Empty:
		return "Empty"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sentinel colours sampled at the hotspot
var (
	LoadingColor     = color.RGBA{R: 50, G: 54, B: 57, A: 0xff}
	EmptyColor       = color.RGBA{R: 169, G: 169, B: 169, A: 0xff}
	LoadedLightColor = color.RGBA{R: 241, G: 241, B: 241, A: 0xff}
	LoadedDarkColor  = color.RGBA{R: 66, G: 70, B: 73, A: 0xff}
)

var sentinels = []struct {
	color color.RGBA
	state State
}{
	{LoadingColor, Loading},
	{EmptyColor, Empty},
	{LoadedLightColor, Loaded},
	{LoadedDarkColor, Loaded},
}

// Classify maps a sampled colour to a state. Alpha is ignored.
func Classify(c color.RGBA) State {
	for _, s := range sentinels {
		if s.color.R == c.R && s.color.G == c.G && s.color.B == c.B {
			return s.state
		}
	}

	return Unknown
}
