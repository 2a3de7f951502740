package types

import "fmt"

// ScalingMode controls how a picture is mapped onto a target rectangle, either
// when it is resized at load time or when it is placed in the window.
type ScalingMode string

const (
	ScalingModeFill          ScalingMode = "fill"
	ScalingModeCenter        ScalingMode = "center"
	ScalingModeStretch       ScalingMode = "stretched"
	ScalingModeFitHorizontal ScalingMode = "horizontal"
	ScalingModeFitVertical   ScalingMode = "vertical"
)

var scalingModes = []ScalingMode{
	ScalingModeFill,
	ScalingModeCenter,
	ScalingModeStretch,
	ScalingModeFitHorizontal,
	ScalingModeFitVertical,
}

// ParseScalingMode validates a configured scaling mode name.
func ParseScalingMode(s string) (ScalingMode, error) {
	for _, m := range scalingModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown scaling mode %q", s)
}
