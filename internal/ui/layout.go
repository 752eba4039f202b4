package ui

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 52 || rows < 16 {
		return LayoutTooSmall
	}
	if cols >= 96 && rows >= 26 {
		return LayoutWide
	}
	return LayoutCompact
}
