package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Play
	Pause
	Story
	Weather
	Place
	Seen
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "+",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "~",
		kaomoji: "(・_・)ノ",
		squares: "🟦",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(っ•̀ω•́)っ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－_－) zzZ",
		squares: "🟨",
	},
	Story: {
		emoji:   "📸",
		nerd:    "",
		plain:   "#",
		kaomoji: "[◕‿◕]",
		squares: "🟪",
	},
	Weather: {
		emoji:   "🌤️",
		nerd:    "",
		plain:   "*",
		kaomoji: "☆⌒(ゝ。∂)",
		squares: "🟦",
	},
	Place: {
		emoji:   "📍",
		nerd:    "",
		plain:   "@",
		kaomoji: "(¬‿¬)",
		squares: "🟧",
	},
	Seen: {
		emoji:   "👀",
		nerd:    "",
		plain:   "o",
		kaomoji: "(◉_◉)",
		squares: "⬜",
	},
}
