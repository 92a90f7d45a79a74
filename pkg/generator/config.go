package generator

import "image/color"

type CardConfig struct {
	Size          int
	Margin        int
	CornerRadius  float64
	RecoveryLevel int
	Background    color.Color
	Panel         color.Color
}

var Roastline = &CardConfig{
	Size:          512,
	Margin:        48,
	CornerRadius:  24,
	RecoveryLevel: 2,
	Background:    color.RGBA{R: 43, G: 29, B: 20, A: 255},
	Panel:         color.RGBA{R: 245, G: 240, B: 232, A: 255},
}
