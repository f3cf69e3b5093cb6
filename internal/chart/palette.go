package chart

// Plotly's default qualitative sequence, used for line series.
var plotlyQualitative = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// ColorBrewer Set2, used for stacked bar categories.
var set2 = []string{
	"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3",
	"#A6D854", "#FFD92F", "#E5C494", "#B3B3B3",
}

const (
	markerFill   = "#FFD700" // gold
	markerStroke = "#000000"
	markerSize   = 400
	lineMarker   = 8
)

func cycle(palette []string, i int) string {
	return palette[i%len(palette)]
}
