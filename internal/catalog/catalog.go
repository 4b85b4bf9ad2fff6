// Package catalog lists the visual resume templates a user can pick from and
// the colour palette each one renders with.
package catalog

// RGB is an 8-bit colour triple.
type RGB [3]int

var (
	White = RGB{255, 255, 255}
	Black = RGB{0, 0, 0}
)

// Style is the palette a template applies to headers, accents and body text.
type Style struct {
	HeaderBg     RGB `json:"headerBg"`
	HeaderText   RGB `json:"headerText"`
	Accent       RGB `json:"accent"`
	Section      RGB `json:"section"`
	Text         RGB `json:"text"`
	ContactBarBg RGB `json:"contactBarBg"`
}

type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Style       Style  `json:"style"`
}

const (
	Classic  = "classic"
	Modern   = "modern"
	Minimal  = "minimal"
	Creative = "creative"

	// Default is used whenever a request names no template or an unknown one.
	Default = Classic
)

var (
	slate = RGB{71, 85, 105}
	blue  = RGB{59, 130, 246}
	teal  = RGB{20, 184, 166}
	brown = RGB{139, 69, 19}
)

var templates = []Template{
	{
		ID:          Classic,
		Name:        "Classic",
		Description: "Professional with dark header design",
		Image:       "/1.png",
		Style:       Style{HeaderBg: slate, HeaderText: White, Accent: slate, Section: slate, Text: Black},
	},
	{
		ID:          Modern,
		Name:        "Modern",
		Description: "Clean layout with contact bar",
		Image:       "/2.png",
		Style:       Style{HeaderBg: White, HeaderText: Black, Accent: blue, Section: blue, Text: Black, ContactBarBg: blue},
	},
	{
		ID:          Minimal,
		Name:        "Minimal",
		Description: "Simple and elegant layout",
		Image:       "/3.png",
		Style:       Style{HeaderBg: White, HeaderText: Black, Accent: teal, Section: teal, Text: Black},
	},
	{
		ID:          Creative,
		Name:        "Creative",
		Description: "Bold design with personality",
		Image:       "/4.png",
		Style:       Style{HeaderBg: White, HeaderText: Black, Accent: brown, Section: brown, Text: Black},
	},
}

// All returns the templates in display order. The slice is a copy.
func All() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// Known reports whether id names a template in the catalog.
func Known(id string) bool {
	_, ok := find(id)
	return ok
}

// Lookup returns the template for id. Unknown ids resolve to the default
// template; ok reports whether id itself was found.
func Lookup(id string) (t Template, ok bool) {
	if t, ok := find(id); ok {
		return t, true
	}
	t, _ = find(Default)
	return t, false
}

func find(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
