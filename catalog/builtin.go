package catalog

import "glyph-recents/recent"

var defaultCatalog = New(
	Group{Name: People, Glyphs: []recent.Glyph{
		{Code: "😀", Name: "grinning face"},
		{Code: "😁", Name: "beaming face with smiling eyes"},
		{Code: "😂", Name: "face with tears of joy"},
		{Code: "😉", Name: "winking face"},
		{Code: "😍", Name: "smiling face with heart-eyes"},
		{Code: "😢", Name: "crying face"},
		{Code: "👍", Name: "thumbs up"},
		{Code: "👋", Name: "waving hand"},
	}},
	Group{Name: Nature, Glyphs: []recent.Glyph{
		{Code: "🐶", Name: "dog face"},
		{Code: "🐱", Name: "cat face"},
		{Code: "🦊", Name: "fox"},
		{Code: "🌲", Name: "evergreen tree"},
		{Code: "🌸", Name: "cherry blossom"},
		{Code: "🌞", Name: "sun with face"},
	}},
	Group{Name: Objects, Glyphs: []recent.Glyph{
		{Code: "🎁", Name: "wrapped gift"},
		{Code: "📷", Name: "camera"},
		{Code: "💡", Name: "light bulb"},
		{Code: "📚", Name: "books"},
		{Code: "🔑", Name: "key"},
	}},
	Group{Name: Places, Glyphs: []recent.Glyph{
		{Code: "🏠", Name: "house"},
		{Code: "🏖️", Name: "beach with umbrella"},
		{Code: "🚗", Name: "automobile"},
		{Code: "✈️", Name: "airplane"},
		{Code: "🗼", Name: "Tokyo tower"},
	}},
	Group{Name: Symbols, Glyphs: []recent.Glyph{
		{Code: "❤️", Name: "red heart"},
		{Code: "✅", Name: "check mark button"},
		{Code: "❌", Name: "cross mark"},
		{Code: "⚠️", Name: "warning"},
		{Code: "\u212B", Name: "angstrom sign"},
		{Code: "#️⃣", Name: "keycap: #"},
	}},
)

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}
