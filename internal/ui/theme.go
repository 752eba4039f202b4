package ui

import "charm.land/lipgloss/v2"

type Theme struct {
	Header       lipgloss.Style
	Status       lipgloss.Style
	PanelTitle   lipgloss.Style
	PanelBorder  lipgloss.Style
	PanelBody    lipgloss.Style
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style
	Accent       lipgloss.Style
	Yes          lipgloss.Style
	No           lipgloss.Style
	Muted        lipgloss.Style
	Info         lipgloss.Style
}

func DefaultTheme() Theme {
	return ThemeForVariant("rose_glow")
}

func ThemeForVariant(variant string) Theme {
	switch variant {
	case "quiet_night":
		return quietNightTheme()
	case "paper_letter":
		return paperLetterTheme()
	default:
		return roseGlowTheme()
	}
}

func roseGlowTheme() Theme {
	rose := lipgloss.Color("#FF7AA8")
	blush := lipgloss.Color("#FFC2D4")
	mint := lipgloss.Color("#79E6A6")
	brick := lipgloss.Color("#FF6F6F")
	ink := lipgloss.Color("#1A0E16")
	plum := lipgloss.Color("#3A1F33")
	cream := lipgloss.Color("#FFF4F7")
	border := lipgloss.Color("#8A4B6B")

	return Theme{
		Header: lipgloss.NewStyle().
			Background(ink).
			Foreground(cream).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Background(plum).
			Foreground(cream).
			Padding(0, 1),
		PanelTitle: lipgloss.NewStyle().
			Foreground(rose).
			Bold(true),
		PanelBorder: lipgloss.NewStyle().
			Foreground(border),
		PanelBody: lipgloss.NewStyle().
			Foreground(cream),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(rose).
			Background(ink).
			Foreground(cream).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().
			Foreground(rose).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(rose).
			Bold(true),
		Yes: lipgloss.NewStyle().
			Foreground(mint).
			Bold(true),
		No: lipgloss.NewStyle().
			Foreground(brick).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C69BB1")),
		Info: lipgloss.NewStyle().
			Foreground(blush),
	}
}

func quietNightTheme() Theme {
	lavender := lipgloss.Color("#B7A9F7")
	sage := lipgloss.Color("#80C4A3")
	rose := lipgloss.Color("#D17A86")
	night := lipgloss.Color("#121826")
	slate := lipgloss.Color("#26314A")
	paper := lipgloss.Color("#EDF0FA")
	sky := lipgloss.Color("#86B6F6")

	return Theme{
		Header:      lipgloss.NewStyle().Background(night).Foreground(paper).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(slate).Foreground(paper).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(lavender).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(slate),
		PanelBody:   lipgloss.NewStyle().Foreground(paper),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lavender).
			Background(night).
			Foreground(paper).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(lavender).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(sky).Bold(true),
		Yes:          lipgloss.NewStyle().Foreground(sage).Bold(true),
		No:           lipgloss.NewStyle().Foreground(rose).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#8D97B5")),
		Info:         lipgloss.NewStyle().Foreground(sky),
	}
}

func paperLetterTheme() Theme {
	sepia := lipgloss.Color("#C9A227")
	moss := lipgloss.Color("#7BA05B")
	wine := lipgloss.Color("#A34A5E")
	parchment := lipgloss.Color("#221C12")
	shadow := lipgloss.Color("#41372A")
	ivory := lipgloss.Color("#F6EFD9")

	return Theme{
		Header:      lipgloss.NewStyle().Background(parchment).Foreground(ivory).Padding(0, 1),
		Status:      lipgloss.NewStyle().Background(shadow).Foreground(ivory).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(sepia).Bold(true),
		PanelBorder: lipgloss.NewStyle().Foreground(shadow),
		PanelBody:   lipgloss.NewStyle().Foreground(ivory),
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(sepia).
			Background(parchment).
			Foreground(ivory).
			Padding(1, 2),
		OverlayTitle: lipgloss.NewStyle().Foreground(sepia).Bold(true),
		Accent:       lipgloss.NewStyle().Foreground(sepia).Bold(true),
		Yes:          lipgloss.NewStyle().Foreground(moss).Bold(true),
		No:           lipgloss.NewStyle().Foreground(wine).Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A89B7E")),
		Info:         lipgloss.NewStyle().Foreground(sepia),
	}
}
