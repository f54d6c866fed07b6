package layout

// This file defines the linear Size type shared by all layout dimensions.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Size is a linear length in typographic points. The zero value is a zero
// length. Widths accumulate via Add; scaling uses Mul.
type Size float64

// Pt constructs a Size from a value in points.
func Pt(v float64) Size { return Size(v) }

// Mm constructs a Size from a value in millimeters.
func Mm(v float64) Size { return Size(v * MmToPt) }

// Add returns s + o.
func (s Size) Add(o Size) Size { return s + o }

// Mul returns s scaled by f.
func (s Size) Mul(f float64) Size { return Size(float64(s) * f) }

// Pt returns the length in points.
func (s Size) Pt() float64 { return float64(s) }

// Mm returns the length in millimeters.
func (s Size) Mm() float64 { return float64(s) * PtToMm }

// Size2D is a width × height pair.
type Size2D struct {
	W Size `json:"width"`
	H Size `json:"height"`
}
