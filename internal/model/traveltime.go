package model

// TimeCategories lists the eight canonical travel-time band labels in
// display order. Isochrone queries return bands in exactly this order.
var TimeCategories = []string{
	"< 5", "5~10", "10~15", "15~20", "20~25", "25~30", "30~45", "> 45",
}

// timeCategoryColors maps each canonical band label to its fixed hex color.
var timeCategoryColors = map[string]string{
	"< 5":   "#1a9850",
	"5~10":  "#66bd63",
	"10~15": "#a6d96a",
	"15~20": "#fdae61",
	"20~25": "#fee08b",
	"25~30": "#f46d43",
	"30~45": "#d73027",
	"> 45":  "#a50026",
}

// DefaultTimeCategoryColor is used for any band label outside the canonical
// set. An unexpected label is a display degradation, never an error.
const DefaultTimeCategoryColor = "#808080"

// TimeCategoryColor returns the display color for a travel-time band label.
// It is total: unknown labels get DefaultTimeCategoryColor.
func TimeCategoryColor(category string) string {
	if c, ok := timeCategoryColors[category]; ok {
		return c
	}
	return DefaultTimeCategoryColor
}
