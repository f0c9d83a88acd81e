package bot

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matchatealeaf/albion-discord-bot/internal/api"
	"github.com/matchatealeaf/albion-discord-bot/internal/catalog"
)

func TestParseCommand(t *testing.T) {
	prefixes := []string{"emilie ", "e!"}

	tests := []struct {
		name     string
		content  string
		wantCmd  string
		wantArgs []string
		wantOK   bool
	}{
		{"plain", "emilie prices adept's bag", "prices", []string{"adept's", "bag"}, true},
		{"short prefix", "e!quick bag", "quick", []string{"bag"}, true},
		{"case-insensitive prefix", "Emilie PRICES bag", "prices", []string{"bag"}, true},
		{"no args", "emilie ping", "ping", []string{}, true},
		{"prefix only", "emilie ", "", nil, false},
		{"no prefix", "prices bag", "", nil, false},
		{"prefix mid-message", "hey emilie prices", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := parseCommand(tt.content, prefixes)
			if ok != tt.wantOK {
				t.Fatalf("parseCommand() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd != tt.wantCmd {
				t.Errorf("parseCommand() cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if len(args) != len(tt.wantArgs) || !reflect.DeepEqual(append([]string{}, args...), append([]string{}, tt.wantArgs...)) {
				t.Errorf("parseCommand() args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestPriceEmbed(t *testing.T) {
	best := catalog.Match{Name: "Adept's Bag", ID: "T4_BAG"}
	suggestions := []catalog.Match{
		{Name: "Expert's Bag", ID: "T5_BAG"},
		{Name: "Adept's Satchel of Insight", ID: "T4_INSIGHT"},
	}
	prices := []api.CurrentPrice{
		{City: "Martlock", Quality: 1, SellPriceMin: 12500, SellPriceMinDate: "2024-03-07T12:00:00"},
		{City: "Lymhurst", Quality: 3, SellPriceMin: 14000, SellPriceMinDate: "2024-03-07T11:00:00"},
		{City: "Thetford", Quality: 1, SellPriceMin: 0}, // no data, skipped
	}

	embed := priceEmbed(best, suggestions, prices, "https://render.example/T4_BAG.png")

	if embed.Title != "Adept's Bag (T4_BAG)" {
		t.Errorf("Title = %q, want %q", embed.Title, "Adept's Bag (T4_BAG)")
	}
	if embed.Thumbnail == nil || embed.Thumbnail.URL == "" {
		t.Error("embed has no thumbnail")
	}
	if len(embed.Fields) != 3 {
		t.Fatalf("embed has %d fields, want 3", len(embed.Fields))
	}

	cities := strings.Split(embed.Fields[0].Value, "\n")
	if len(cities) != 2 {
		t.Fatalf("location column has %d rows, want 2 (zero-price row kept)", len(cities))
	}
	if cities[1] != "Lymhurst (Outstanding)" {
		t.Errorf("cities[1] = %q, want %q", cities[1], "Lymhurst (Outstanding)")
	}

	sells := strings.Split(embed.Fields[1].Value, "\n")
	if sells[0] != "12,500" {
		t.Errorf("sells[0] = %q, want %q", sells[0], "12,500")
	}

	if embed.Footer == nil {
		t.Fatal("embed has no footer")
	}
	if !strings.Contains(embed.Footer.Text, "Expert's Bag") {
		t.Error("footer does not carry suggestions")
	}
	if !strings.Contains(embed.Footer.Text, deleteEmoji) {
		t.Error("footer does not mention the delete reaction")
	}
}

func TestPriceEmbedNoData(t *testing.T) {
	best := catalog.Match{Name: "Adept's Bag", ID: "T4_BAG"}
	embed := priceEmbed(best, nil, nil, "")

	if len(embed.Fields) != 0 {
		t.Errorf("embed has %d fields, want 0", len(embed.Fields))
	}
	if embed.Description == "" {
		t.Error("embed has no explanatory description")
	}
	if embed.Footer == nil {
		t.Fatal("embed has no footer")
	}
	if !strings.Contains(embed.Footer.Text, deleteEmoji) {
		t.Error("footer does not mention the delete reaction")
	}
	if strings.Contains(embed.Footer.Text, "Try:") {
		t.Error("footer carries suggestions with none to show")
	}
}

func TestCanonicalCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"price", "prices"},
		{"prices", "prices"},
		{"quick", "quick"},
		{"gold", "gold"},
	}
	for _, tt := range tests {
		if got := canonicalCommand(tt.in); got != tt.want {
			t.Errorf("canonicalCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTopMembers(t *testing.T) {
	members := []api.GuildMember{
		{Name: "carol", KillFame: 300},
		{Name: "alice", KillFame: 1000},
		{Name: "bob", KillFame: 500},
	}

	got := topMembers(members, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("topMembers() returned %d lines, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "1. alice") {
		t.Errorf("lines[0] = %q, want alice first", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2. bob") {
		t.Errorf("lines[1] = %q, want bob second", lines[1])
	}

	// Input order untouched.
	if members[0].Name != "carol" {
		t.Errorf("input was reordered; members[0] = %q", members[0].Name)
	}
}

func TestLowestSell(t *testing.T) {
	prices := []api.CurrentPrice{
		{City: "Martlock", SellPriceMin: 0},
		{City: "Lymhurst", SellPriceMin: 14000},
		{City: "Thetford", SellPriceMin: 12500},
	}
	if got := lowestSell(prices); got != 12500 {
		t.Errorf("lowestSell() = %d, want 12500", got)
	}
	if got := lowestSell(nil); got != 0 {
		t.Errorf("lowestSell(nil) = %d, want 0", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := sanitizeFilename("T4_BAG@1"); got != "T4_BAG_1" {
		t.Errorf("sanitizeFilename() = %q, want %q", got, "T4_BAG_1")
	}
}
