package design

// Sample returns a small built-in design: a hoop ring, a satin heart on a
// multiply layer with a drop shadow, and a row of cross stitches.
func Sample() *Design {
	opacity := 0.9
	return &Design{
		Name:       "sample",
		Width:      320,
		Height:     240,
		Background: "#f5efe0",
		Layers: []Layer{
			{
				Name: "hoop",
				Stitches: []Stitch{{
					Type:      "running-stitch",
					Color:     "#8b5a2b",
					Thickness: 2,
					Points: [][2]float64{
						{40, 20}, {280, 20}, {300, 40}, {300, 200},
						{280, 220}, {40, 220}, {20, 200}, {20, 40}, {40, 20},
					},
				}},
			},
			{
				Name:    "heart",
				Opacity: &opacity,
				Blend:   "multiply",
				Effects: []Effect{{
					Kind:     "drop-shadow",
					Settings: map[string]any{"distance": 3, "size": 4, "opacity": 0.4},
				}},
				Stitches: []Stitch{
					{
						Type:      "satin",
						Color:     "#c0392b",
						Thickness: 5,
						Points: [][2]float64{
							{160, 190}, {100, 130}, {95, 90}, {125, 70},
							{160, 95}, {195, 70}, {225, 90}, {220, 130}, {160, 190},
						},
					},
					{
						Type:   "fill",
						Color:  "#e74c3c",
						Points: [][2]float64{{160, 175}, {110, 125}, {128, 85}, {160, 108}, {192, 85}, {210, 125}},
					},
				},
			},
			{
				Name: "border",
				Stitches: []Stitch{{
					Type:      "cross-stitch",
					Color:     "#2e86c1",
					Thickness: 4,
					Points:    [][2]float64{{60, 205}, {260, 205}},
				}},
			},
		},
	}
}
