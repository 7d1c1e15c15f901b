package bots

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCatalogIsCopied(t *testing.T) {
	first := Catalog()
	first[0].Name = "mutated"
	if Catalog()[0].Name == "mutated" {
		t.Fatalf("Catalog returned a shared slice")
	}
}

func TestFilterByKind(t *testing.T) {
	catalog := Catalog()

	chatBots := FilterByKind(catalog, KindChat)
	if len(chatBots) != 2 {
		t.Fatalf("expected 2 chat bots, got %d", len(chatBots))
	}
	for _, bot := range chatBots {
		if bot.Kind != KindChat {
			t.Fatalf("filter leaked a %q bot", bot.Kind)
		}
	}

	voiceBots := FilterByKind(catalog, KindVoice)
	if len(voiceBots) != 2 {
		t.Fatalf("expected 2 voice bots, got %d", len(voiceBots))
	}
	if voiceBots[0].ID != "alexa-voice" || voiceBots[1].ID != "siri-voice" {
		t.Fatalf("filter reordered bots: %+v", voiceBots)
	}
}

func TestFind(t *testing.T) {
	catalog := Catalog()
	bot, ok := Find(catalog, "claude-chat")
	if !ok || bot.Name != "Claude Chat Assistant" {
		t.Fatalf("Find(claude-chat) = %+v, %v", bot, ok)
	}
	if _, ok := Find(catalog, "missing"); ok {
		t.Fatalf("Find should miss on an unknown id")
	}
}

func TestKindValid(t *testing.T) {
	if !KindChat.Valid() || !KindVoice.Valid() {
		t.Fatalf("known kinds must be valid")
	}
	if Kind("hologram").Valid() {
		t.Fatalf("unknown kinds must be invalid")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bots.yaml")
	content := `bots:
  - id: my-bot
    name: My Bot
    type: chat
    endpoint: http://localhost:9000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 1 || catalog[0].ID != "my-bot" || catalog[0].Kind != KindChat {
		t.Fatalf("catalog = %+v", catalog)
	}
}

func TestParseCatalogRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "empty", yaml: "bots: []", want: "at least one bot"},
		{name: "missing id", yaml: "bots:\n  - name: X\n    type: chat", want: "id is required"},
		{
			name: "duplicate id",
			yaml: "bots:\n  - id: a\n    name: A\n    type: chat\n  - id: a\n    name: B\n    type: chat",
			want: "duplicate bot id",
		},
		{name: "missing name", yaml: "bots:\n  - id: a\n    type: chat", want: "name is required"},
		{name: "bad kind", yaml: "bots:\n  - id: a\n    name: A\n    type: hologram", want: "chat or voice"},
		{name: "unknown key", yaml: "bots: []\nextra: 1", want: "parse bot catalog"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCatalog([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want substring %q", err, tc.want)
			}
		})
	}
}
