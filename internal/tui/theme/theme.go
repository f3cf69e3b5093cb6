// Package theme defines color themes for the salarygap TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Active tab
	SurfaceBright lipgloss.Color // Selected row
	Border        lipgloss.Color
	BorderBright  lipgloss.Color
	BorderAccent  lipgloss.Color // Focused cards and dialogs
	TextDim       lipgloss.Color // Hints, axis labels
	TextMuted     lipgloss.Color // Field labels
	TextPrimary   lipgloss.Color
	Accent        lipgloss.Color
	AccentBright  lipgloss.Color
	AccentDim     lipgloss.Color
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color

	// Money roles
	Gain   lipgloss.Color // positive savings
	Loss   lipgloss.Color // negative savings
	Manual lipgloss.Color // amounts typed over the data value
}

// palette is the raw hex (or ANSI index) set a Theme is derived from.
type palette struct {
	bg, surface, hover, bright              string
	border, borderBright, dim, muted, text  string
	accent, accentBright, accentDim         string
	green, greenBright, orange, red         string
	blue, blueBright, yellow, magenta, cyan string
}

func newTheme(name string, p palette) Theme {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Theme{
		Name:          name,
		Background:    c(p.bg),
		Surface:       c(p.surface),
		SurfaceHover:  c(p.hover),
		SurfaceBright: c(p.bright),
		Border:        c(p.border),
		BorderBright:  c(p.borderBright),
		BorderAccent:  c(p.accent),
		TextDim:       c(p.dim),
		TextMuted:     c(p.muted),
		TextPrimary:   c(p.text),
		Accent:        c(p.accent),
		AccentBright:  c(p.accentBright),
		AccentDim:     c(p.accentDim),
		Green:         c(p.green),
		GreenBright:   c(p.greenBright),
		Orange:        c(p.orange),
		Red:           c(p.red),
		Blue:          c(p.blue),
		BlueBright:    c(p.blueBright),
		Yellow:        c(p.yellow),
		Magenta:       c(p.magenta),
		Cyan:          c(p.cyan),
		Gain:          c(p.greenBright),
		Loss:          c(p.red),
		Manual:        c(p.yellow),
	}
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme, warm and paper-inspired.
var FlexokiDark = newTheme("flexoki-dark", palette{
	bg: "#100F0F", surface: "#1C1B1A", hover: "#282726", bright: "#343331",
	border: "#403E3C", borderBright: "#575653", dim: "#575653", muted: "#878580", text: "#FFFCF0",
	accent: "#3AA99F", accentBright: "#5BC8BE", accentDim: "#1A3533",
	green: "#879A39", greenBright: "#A3B859", orange: "#DA702C", red: "#D14D41",
	blue: "#4385BE", blueBright: "#6BA3D6", yellow: "#D0A215", magenta: "#CE5D97", cyan: "#24837B",
})

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = newTheme("catppuccin-mocha", palette{
	bg: "#1E1E2E", surface: "#313244", hover: "#45475A", bright: "#585B70",
	border: "#585B70", borderBright: "#7F849C", dim: "#6C7086", muted: "#A6ADC8", text: "#CDD6F4",
	accent: "#89B4FA", accentBright: "#B4D0FB", accentDim: "#293147",
	green: "#A6E3A1", greenBright: "#C6F6C1", orange: "#FAB387", red: "#F38BA8",
	blue: "#89B4FA", blueBright: "#B4D0FB", yellow: "#F9E2AF", magenta: "#F5C2E7", cyan: "#94E2D5",
})

// TokyoNight is a cool blue and purple theme.
var TokyoNight = newTheme("tokyo-night", palette{
	bg: "#1A1B26", surface: "#24283B", hover: "#343A52", bright: "#414868",
	border: "#565F89", borderBright: "#7982A9", dim: "#565F89", muted: "#A9B1D6", text: "#C0CAF5",
	accent: "#7AA2F7", accentBright: "#A9C1FF", accentDim: "#252B3F",
	green: "#9ECE6A", greenBright: "#B9E87A", orange: "#FF9E64", red: "#F7768E",
	blue: "#7AA2F7", blueBright: "#A9C1FF", yellow: "#E0AF68", magenta: "#BB9AF7", cyan: "#7DCFFF",
})

// Terminal uses the ANSI 16 colors only.
var Terminal = newTheme("terminal", palette{
	bg: "0", surface: "0", hover: "8", bright: "8",
	border: "8", borderBright: "7", dim: "8", muted: "7", text: "15",
	accent: "6", accentBright: "14", accentDim: "0",
	green: "2", greenBright: "10", orange: "3", red: "1",
	blue: "4", blueBright: "12", yellow: "3", magenta: "5", cyan: "6",
})

// FlexokiLight is the paper-coloured light variant of Flexoki.
var FlexokiLight = newTheme("flexoki-light", palette{
	bg: "#FFFCF0", surface: "#F2F0E5", hover: "#E6E4D9", bright: "#DAD8CE",
	border: "#CECDC3", borderBright: "#B7B5AC", dim: "#B7B5AC", muted: "#6F6E69", text: "#100F0F",
	accent: "#24837B", accentBright: "#3AA99F", accentDim: "#DDF1E4",
	green: "#66800B", greenBright: "#879A39", orange: "#BC5215", red: "#AF3029",
	blue: "#205EA6", blueBright: "#4385BE", yellow: "#AD8301", magenta: "#A02F6F", cyan: "#24837B",
})

// All available themes.
var All = []Theme{FlexokiDark, FlexokiLight, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Known reports whether name is one of the available themes.
func Known(name string) bool {
	for _, t := range All {
		if t.Name == name {
			return true
		}
	}
	return false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
