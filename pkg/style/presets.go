package style

// Range describes a slider.
type Range struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Step int    `json:"step"`
	Unit string `json:"unit"`
}

// Presets are the option lists the style panel offers. Values outside these
// lists are still accepted everywhere; presets only drive pickers.
type Presets struct {
	Colors          []string `json:"colors"`
	FontFamilies    []string `json:"fontFamilies"`
	FontSizes       []string `json:"fontSizes"`
	FontWeights     []string `json:"fontWeights"`
	FontStyles      []string `json:"fontStyles"`
	TextAligns      []string `json:"textAligns"`
	BorderRadii     []string `json:"borderRadii"`
	BorderStyles    []string `json:"borderStyles"`
	Displays        []string `json:"displays"`
	FlexDirections  []string `json:"flexDirections"`
	JustifyContents []string `json:"justifyContents"`
	AlignItems      []string `json:"alignItems"`
	Spacing         Range    `json:"spacing"`
	Opacity         Range    `json:"opacity"`
}

// DefaultPresets returns a fresh copy of the built-in presets.
func DefaultPresets() Presets {
	return Presets{
		Colors: []string{
			"#ffffff", "#f8f9fa", "#e5e7eb", "#1a1a1a", "#666666",
			"#4f46e5", "#ef4444", "#10b981", "#f59e0b",
		},
		FontFamilies:    []string{"Inter", "System UI", "Helvetica", "Georgia", "Courier New", "Arial"},
		FontSizes:       []string{"12px", "14px", "16px", "18px", "20px", "24px", "28px", "32px", "36px", "48px"},
		FontWeights:     []string{"400", "500", "600", "700", "800"},
		FontStyles:      []string{"normal", "italic", "oblique"},
		TextAligns:      []string{"left", "center", "right", "justify"},
		BorderRadii:     []string{"0px", "4px", "8px", "12px", "16px", "20px", "50%"},
		BorderStyles:    []string{"none", "solid", "dashed", "dotted", "double"},
		Displays:        []string{"block", "flex", "grid", "inline-block", "inline"},
		FlexDirections:  []string{"row", "column", "row-reverse", "column-reverse"},
		JustifyContents: []string{"flex-start", "center", "flex-end", "space-between", "space-around", "space-evenly"},
		AlignItems:      []string{"flex-start", "center", "flex-end", "stretch", "baseline"},
		Spacing:         Range{Min: 0, Max: 50, Step: 1, Unit: "px"},
		Opacity:         Range{Min: 0, Max: 100, Step: 1, Unit: "%"},
	}
}
