package deck

// TextStyle is the font used by a text role.
type TextStyle struct {
	Font  string  `json:"font,omitempty"`
	Size  float64 `json:"size"` // points
	Color Color   `json:"color"`
	Bold  bool    `json:"bold,omitempty"`
}

// CodeStyle configures code boxes.
type CodeStyle struct {
	Font     string  `json:"font"`
	Size     float64 `json:"size"`
	Fill     Color   `json:"fill"`
	Color    Color   `json:"color"` // text color for tokens the style leaves uncolored
	Style    string  `json:"style"`
	Language string  `json:"language"`
	TabWidth int     `json:"tab_width"`
}

// TableStyle configures table shapes.
type TableStyle struct {
	Size       float64 `json:"size"`
	HeaderBold bool    `json:"header_bold"`
	StyleID    string  `json:"style_id"`
}

// Theme holds every geometry and typography constant used by Build.
type Theme struct {
	Width   EMU  `json:"width"`
	Height  EMU  `json:"height"`
	Title   Rect `json:"title"`
	Explain Rect `json:"explain"`
	Content Rect `json:"content"`

	TitleText    TextStyle  `json:"title_text"`
	SubtitleSize float64    `json:"subtitle_size"`
	HeroSize     float64    `json:"hero_size"` // title size on title slides
	Text         TextStyle  `json:"text"`
	Code         CodeStyle  `json:"code"`
	Table        TableStyle `json:"table"`
}

// MediumStyle2Accent1 is the default PowerPoint table style.
const MediumStyle2Accent1 = "{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"

// DefaultTheme returns the 16:9 two-column theme.
func DefaultTheme() Theme {
	black := RGB(0, 0, 0)
	return Theme{
		Width:   Inches(10),
		Height:  Inches(5.625),
		Title:   InchRect(0.5, 0.2, 9, 0.6),
		Explain: InchRect(0.5, 1, 4, 4),
		Content: InchRect(5.1, 1, 4.4, 4),

		TitleText:    TextStyle{Size: 28, Bold: true, Color: black},
		SubtitleSize: 20,
		HeroSize:     40,
		Text:         TextStyle{Size: 18, Color: black},
		Code: CodeStyle{
			Font:     "Courier New",
			Size:     12,
			Fill:     RGB(40, 40, 40),
			Color:    RGB(0xf0, 0xf0, 0xf0),
			Style:    "monokai",
			Language: "python",
			TabWidth: 4,
		},
		Table: TableStyle{Size: 18, HeaderBold: true, StyleID: MediumStyle2Accent1},
	}
}

// Body returns the frame spanning both columns, used by the full layout.
func (t Theme) Body() Rect { return t.Explain.Union(t.Content) }
