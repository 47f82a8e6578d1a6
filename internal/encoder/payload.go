package encoder

import (
	"encoding/base64"

	"github.com/tansawit/notiv-sub000/internal/geometry"
)

// Payload is an encoded capture ready for upload or clipboard placement.
type Payload struct {
	Profile   string
	Format    string
	MIMEType  string
	Extension string
	Data      []byte
	Width     int
	Height    int

	// Passes is 1 when the first encode was kept, 2 when the retry ran.
	Passes int

	// OverBudget is set when the profile's byte budget was still exceeded
	// after the retry. The payload is usable; the budget is advisory.
	OverBudget bool

	// Geometry is the resolved crop window; nil for full-frame payloads.
	Geometry *geometry.CropGeometry
}

// Size returns the number of encoded bytes.
func (p *Payload) Size() int {
	return len(p.Data)
}

// EncodedLen returns the length of the payload in data URL form, which is
// what byte budgets are measured against.
func (p *Payload) EncodedLen() int {
	return dataURLLen(p.MIMEType, len(p.Data))
}

// DataURL renders the payload as "data:<mime>;base64,<data>".
func (p *Payload) DataURL() string {
	return "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

func dataURLLen(mime string, n int) int {
	return len("data:") + len(mime) + len(";base64,") + base64.StdEncoding.EncodedLen(n)
}
