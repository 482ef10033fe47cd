package icons

import (
	"hash/fnv"
	"image/color"
	"unicode"

	"github.com/quantmind-br/appdex/internal/core"
)

// palette holds visually distinct background colors for placeholder icons.
// The slot is chosen by hashing the entry name, so the same name always maps
// to the same color across runs without persisting anything.
var palette = []color.RGBA{
	{R: 0x7A, G: 0x5C, B: 0xCB, A: 0xFF}, // violet
	{R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF}, // ocean blue
	{R: 0xD1, G: 0x49, B: 0x5B, A: 0xFF}, // raspberry
	{R: 0x3B, G: 0x8E, B: 0x5A, A: 0xFF}, // pine green
	{R: 0xC7, G: 0x7D, B: 0x2B, A: 0xFF}, // amber
	{R: 0x5B, G: 0x6E, B: 0xE1, A: 0xFF}, // indigo
	{R: 0xB0, G: 0x4A, B: 0x8E, A: 0xFF}, // magenta
	{R: 0x2F, G: 0x9E, B: 0x99, A: 0xFF}, // teal
	{R: 0x8A, G: 0x6D, B: 0x3B, A: 0xFF}, // bronze
	{R: 0x64, G: 0x74, B: 0x8C, A: 0xFF}, // slate
	{R: 0x98, G: 0x47, B: 0x3E, A: 0xFF}, // brick
	{R: 0x4A, G: 0x7A, B: 0xC5, A: 0xFF}, // steel blue
}

// PlaceholderFor synthesizes the deterministic letter-on-color descriptor
// for a display name: its first alphanumeric character, uppercased, on a
// color hashed from the name.
func PlaceholderFor(name string) core.Placeholder {
	letter := '?'
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			letter = unicode.ToUpper(r)
			break
		}
	}

	h := fnv.New32a()
	h.Write([]byte(name))

	return core.Placeholder{
		Letter: letter,
		Color:  palette[h.Sum32()%uint32(len(palette))],
	}
}
