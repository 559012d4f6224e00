package character

import "github.com/diogo/pawsitive/internal/mood"

// Flags are the animation switches of the character
type Flags struct {
	TailWag   bool
	EarWiggle bool
	Bounce    bool
	Panting   bool
}

// EyeGeometry describes the eye shape in drawing units.
// A zero Width means the eye keeps its natural width.
type EyeGeometry struct {
	Height  float64
	Width   float64
	Scale   float64
	OffsetY float64
}

// Closed reports whether the eyes are drawn as a line
func (e EyeGeometry) Closed() bool {
	return e.Height <= 1
}

// MouthKind names the mouth shape
type MouthKind string

const (
	MouthSmile     MouthKind = "smile"
	MouthFlat      MouthKind = "flat"
	MouthWideSmile MouthKind = "wide-smile"
	MouthFrown     MouthKind = "frown"
	MouthOpen      MouthKind = "open"
)

// Mouth describes the mouth path and paint
type Mouth struct {
	Kind        MouthKind
	Path        string
	Fill        string
	Stroke      string
	StrokeWidth float64
}

// Tongue describes the tongue overlay
type Tongue struct {
	Visible bool
	Path    string
	Fill    string
}

// Descriptor is everything a renderer needs to draw one frame
type Descriptor struct {
	Mood      mood.Mood
	Indicator string

	Eyes   EyeGeometry
	Mouth  Mouth
	Tongue Tongue
	Flags  Flags

	Hat      bool
	Bowtie   bool
	Petted   bool
	Blinking bool

	// HeadOffsetY lowers the head while it is being petted
	HeadOffsetY float64

	// Scale is the breathing multiplier
	Scale float64
	Phase float64
	Frame uint64
}

const (
	colorOutline = "#8B4513"
	colorTongue  = "#FF9999"
	tonguePath   = "M 60 85 Q 65 95 60 105 Q 55 95 60 85"
)

func eyesFor(m mood.Mood, blinking bool) EyeGeometry {
	if blinking {
		return EyeGeometry{Height: 1, Scale: 1, OffsetY: 8}
	}
	switch m {
	case mood.Thinking:
		return EyeGeometry{Height: 15, Width: 15, Scale: 1}
	case mood.Excited:
		return EyeGeometry{Height: 18, Scale: 1.1}
	case mood.Concerned:
		return EyeGeometry{Height: 10, Scale: 1, OffsetY: 3}
	default:
		return EyeGeometry{Height: 15, Scale: 1}
	}
}

func mouthFor(m mood.Mood, panting bool) Mouth {
	if panting {
		return Mouth{
			Kind:        MouthOpen,
			Path:        "M 40 80 Q 60 95 80 80 L 80 90 Q 60 105 40 90 Z",
			Fill:        colorTongue,
			Stroke:      colorOutline,
			StrokeWidth: 2,
		}
	}
	switch m {
	case mood.Thinking:
		return Mouth{Kind: MouthFlat, Path: "M 40 80 H 80", Fill: "none", Stroke: colorOutline, StrokeWidth: 3}
	case mood.Excited:
		return Mouth{Kind: MouthWideSmile, Path: "M 30 75 Q 60 100 90 75", Fill: "none", Stroke: colorOutline, StrokeWidth: 4}
	case mood.Concerned:
		return Mouth{Kind: MouthFrown, Path: "M 30 85 Q 60 75 90 85", Fill: "none", Stroke: colorOutline, StrokeWidth: 3}
	default:
		return Mouth{Kind: MouthSmile, Path: "M 30 75 Q 60 95 90 75", Fill: "none", Stroke: colorOutline, StrokeWidth: 3}
	}
}

func tongueFor(m mood.Mood, panting bool) Tongue {
	visible := (m == mood.Happy || m == mood.Excited) && !panting
	return Tongue{Visible: visible, Path: tonguePath, Fill: colorTongue}
}
