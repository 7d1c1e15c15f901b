package bots

// Kind distinguishes chat bots from voice bots.
type Kind string

const (
	KindChat  Kind = "chat"
	KindVoice Kind = "voice"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	return k == KindChat || k == KindVoice
}

// Bot describes one selectable bot in the catalog.
type Bot struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Kind     Kind   `json:"type" yaml:"type"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// seedCatalog is the built-in bot catalog used when no catalog file is configured.
var seedCatalog = []Bot{
	{
		ID:       "gpt-chat",
		Name:     "GPT Chat Assistant",
		Kind:     KindChat,
		Endpoint: "https://api.example.com/gpt-chat",
	},
	{
		ID:       "claude-chat",
		Name:     "Claude Chat Assistant",
		Kind:     KindChat,
		Endpoint: "https://api.example.com/claude-chat",
	},
	{
		ID:       "alexa-voice",
		Name:     "Alexa Voice Assistant",
		Kind:     KindVoice,
		Endpoint: "https://api.example.com/alexa-voice",
	},
	{
		ID:       "siri-voice",
		Name:     "Siri Voice Assistant",
		Kind:     KindVoice,
		Endpoint: "https://api.example.com/siri-voice",
	},
}

// Catalog returns a copy of the built-in bot catalog.
func Catalog() []Bot {
	out := make([]Bot, len(seedCatalog))
	copy(out, seedCatalog)
	return out
}

// FilterByKind returns the bots matching the given kind, preserving order.
func FilterByKind(catalog []Bot, kind Kind) []Bot {
	out := make([]Bot, 0, len(catalog))
	for _, bot := range catalog {
		if bot.Kind == kind {
			out = append(out, bot)
		}
	}
	return out
}

// Find returns the bot with the given ID, if present.
func Find(catalog []Bot, id string) (Bot, bool) {
	for _, bot := range catalog {
		if bot.ID == id {
			return bot, true
		}
	}
	return Bot{}, false
}
