package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/pawsitive/internal/character"
)

// artWidth and artHeight are the fixed size of the companion drawing.
// The bounce animation moves the drawing inside this box, never resizing it.
const (
	artWidth  = 22
	artHeight = 12
)

type tone int

const (
	toneNone tone = iota
	toneFur
	toneShade
	toneOutline
	toneHat
	toneBowtie
	toneTongue
	toneBlush
)

// segment is a run of cells sharing a click zone and a color
type segment struct {
	text string
	zone character.Zone
	tone tone
}

type artRow []segment

func (r artRow) width() int {
	n := 0
	for _, s := range r {
		n += utf8.RuneCountInString(s.text)
	}
	return n
}

func pad(n int) segment {
	return segment{text: strings.Repeat(" ", n)}
}

// wagFrame alternates every few animation frames
func wagFrame(d character.Descriptor) bool {
	return (d.Frame/4)%2 == 0
}

func eyeGlyph(d character.Descriptor) string {
	switch {
	case d.Eyes.Closed():
		return "-"
	case d.Eyes.Scale > 1:
		return "O"
	case d.Eyes.Height < 15:
		return "."
	default:
		return "o"
	}
}

func mouthGlyph(d character.Descriptor) string {
	switch d.Mouth.Kind {
	case character.MouthOpen:
		return "(  )"
	case character.MouthWideSmile:
		return "\\==/"
	case character.MouthFlat:
		return " -- "
	case character.MouthFrown:
		return "/^^\\"
	default:
		return "\\__/"
	}
}

// drawCharacter lays out the companion for one frame
func drawCharacter(d character.Descriptor) []artRow {
	var (
		hatTop, hatBrim = pad(10), pad(10)
		earL, earR      = " /\\ ", " /\\ "
		tail            = "__/"
		neck            = "  ----  "
		neckTone        = toneShade
		chest           = [2]string{"/", "\\"}
	)
	hatTop.zone, hatBrim.zone = character.ZoneHatArea, character.ZoneHatArea

	switch {
	case d.Hat:
		hatTop = segment{text: "   ____   ", zone: character.ZoneHatArea, tone: toneHat}
		hatBrim = segment{text: " _|____|_ ", zone: character.ZoneHatArea, tone: toneHat}
	case d.Petted:
		hatTop = segment{text: "  <3  <3  ", zone: character.ZoneHatArea, tone: toneBlush}
	}

	if d.Flags.EarWiggle && wagFrame(d) {
		earL, earR = "/\\  ", "  /\\"
	}
	if d.Flags.TailWag {
		if wagFrame(d) {
			tail = "_//"
		} else {
			tail = "_\\\\"
		}
	}
	if d.Bowtie {
		neck, neckTone = "  >()<  ", toneBowtie
	}
	if d.Scale > 1 {
		chest = [2]string{"(", ")"}
	}

	tongue := segment{text: "__", zone: character.ZoneMouth, tone: toneOutline}
	if d.Tongue.Visible {
		tongue = segment{text: "UU", zone: character.ZoneMouth, tone: toneTongue}
	}

	eye := eyeGlyph(d)
	rows := []artRow{
		{pad(6), hatTop},
		{pad(6), hatBrim},
		{pad(2), {earL, character.ZoneEar, toneShade}, {"________", character.ZoneHead, toneOutline}, {earR, character.ZoneEar, toneShade}},
		{pad(2), {"/  |", character.ZoneEar, toneShade}, {"        ", character.ZoneHead, toneFur}, {"|  \\", character.ZoneEar, toneShade}},
		{pad(2), {"\\__|", character.ZoneEar, toneShade}, {" " + eye + "    " + eye + " ", character.ZoneHead, toneOutline}, {"|__/", character.ZoneEar, toneShade}},
		{pad(2), {"   |", character.ZoneFur, toneFur}, {"  (__)  ", character.ZoneMouth, toneOutline}, {"|   ", character.ZoneFur, toneFur}},
		{pad(2), {"   |", character.ZoneFur, toneFur}, {"  " + mouthGlyph(d) + "  ", character.ZoneMouth, toneOutline}, {"|   ", character.ZoneFur, toneFur}},
		{pad(2), {"    ", character.ZoneFur, toneFur}, {"\\__", character.ZoneMouth, toneOutline}, tongue, {"__/", character.ZoneMouth, toneOutline}, {"    ", character.ZoneFur, toneFur}},
		{pad(6), {neck, character.ZoneNeckArea, neckTone}},
		{pad(5), {chest[0] + "        " + chest[1], character.ZoneBody, toneFur}, {tail, character.ZoneTail, toneShade}},
		{pad(5), {"|_|    |_|", character.ZoneBody, toneOutline}},
	}

	blank := artRow{pad(artWidth)}
	if d.Flags.Bounce && wagFrame(d) {
		rows = append(rows, blank)
	} else {
		rows = append([]artRow{blank}, rows...)
	}

	for i, r := range rows {
		if w := r.width(); w < artWidth {
			rows[i] = append(r, pad(artWidth-w))
		}
	}
	return rows
}

// zoneAt maps a cell of the drawing to the zone under it
func zoneAt(rows []artRow, x, y int) character.Zone {
	if y < 0 || y >= len(rows) || x < 0 {
		return character.ZoneNone
	}
	col := 0
	for _, s := range rows[y] {
		n := utf8.RuneCountInString(s.text)
		if x < col+n {
			return s.zone
		}
		col += n
	}
	return character.ZoneNone
}

func toneStyle(t tone) lipgloss.Style {
	switch t {
	case toneFur:
		return furStyle
	case toneShade:
		return shadeStyle
	case toneOutline:
		return outlineStyle
	case toneHat:
		return hatStyle
	case toneBowtie:
		return bowtieStyle
	case toneTongue:
		return tongueStyle
	case toneBlush:
		return blushStyle
	default:
		return lipgloss.NewStyle()
	}
}

// renderArt colors the drawing
func renderArt(rows []artRow) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		var b strings.Builder
		for _, s := range r {
			b.WriteString(toneStyle(s.tone).Render(s.text))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
