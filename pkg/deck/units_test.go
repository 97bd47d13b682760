package deck

import "testing"

func TestInches(t *testing.T) {
	if got := Inches(10); got != 9144000 {
		t.Errorf("Inches(10) = %d, want 9144000", got)
	}
	if got := Inches(5.625); got != 5143500 {
		t.Errorf("Inches(5.625) = %d, want 5143500", got)
	}
	if got := Points(28); got != 355600 {
		t.Errorf("Points(28) = %d, want 355600", got)
	}
	if got := Inches(0.5).Inches(); got != 0.5 {
		t.Errorf("round trip = %v, want 0.5", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := InchRect(0.5, 1, 4, 4)
	b := InchRect(5.1, 1, 4.4, 4)
	got := a.Union(b)
	want := Rect{X: Inches(0.5), Y: Inches(1), W: Inches(9.5) - Inches(0.5), H: Inches(4)}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#282828", RGB(40, 40, 40), false},
		{"ff0000", RGB(255, 0, 0), false},
		{"#fff", RGB(255, 255, 255), false},
		{" #00FF00 ", RGB(0, 255, 0), false},
		{"red", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorFormats(t *testing.T) {
	c := RGB(0xab, 0x01, 0xff)
	if got := c.Hex(); got != "AB01FF" {
		t.Errorf("Hex() = %q", got)
	}
	if got := c.String(); got != "#ab01ff" {
		t.Errorf("String() = %q", got)
	}
	var back Color
	text, _ := c.MarshalText()
	if err := back.UnmarshalText(text); err != nil || back != c {
		t.Errorf("UnmarshalText(%s) = %v, %v", text, back, err)
	}
}

func TestContrastRatio(t *testing.T) {
	black, white := RGB(0, 0, 0), RGB(255, 255, 255)
	if got := black.ContrastRatio(white); got < 20.9 || got > 21.1 {
		t.Errorf("black/white contrast = %v, want 21", got)
	}
	if got := white.ContrastRatio(white); got != 1 {
		t.Errorf("white/white contrast = %v, want 1", got)
	}
}

func TestReadable(t *testing.T) {
	fill := RGB(40, 40, 40)
	fallback := RGB(0xf0, 0xf0, 0xf0)

	if got := Readable(RGB(0, 0, 0), fill, fallback); got != fallback {
		t.Errorf("black on dark fill = %v, want fallback", got)
	}
	yellow := MustColor("#e6db74")
	if got := Readable(yellow, fill, fallback); got != yellow {
		t.Errorf("yellow on dark fill = %v, want kept", got)
	}
}

func TestBlend(t *testing.T) {
	black, white := RGB(0, 0, 0), RGB(255, 255, 255)
	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend(0) = %v", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend(1) = %v", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 {
		t.Errorf("Blend(0.5) = %v, want a gray", mid)
	}
}
