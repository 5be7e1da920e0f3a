package match

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Never Gonna Give You Up", "Never Gonna Give You Up"},
		{"feat annotation", "Song Title (feat. Other Artist)", "Song Title"},
		{"bracketed edition", "Greatest Hits [Deluxe Edition]", "Greatest Hits"},
		{"mid-string parens", "Song (Acoustic) Reprise", "Song Reprise"},
		{"dash remaster", "Song Title - Remastered 2024", "Song Title"},
		{"dash live", "One Night Only - Live at Wembley", "One Night Only"},
		{"dash anniversary", "Album - 25th Anniversary Edition", "Album"},
		{"stacked qualifiers", "Song - Live - 2011 Remaster", "Song"},
		{"feat plus remaster", "Song Title (feat. Other Artist) - Remastered 2024", "Song Title"},
		{"dash without qualifier kept", "Ebony - Ivory", "Ebony - Ivory"},
		{"alive is not live", "Staying - Alive", "Staying - Alive"},
		{"empty", "", ""},
		{"only brackets", "(Intro)", ""},
		{"surrounding whitespace", "  Song Title  ", "Song Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.in); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{
		"Never Gonna Give You Up",
		"Song Title (feat. Other Artist) - Remastered 2024",
		"Greatest Hits [Deluxe Edition]",
		"Song - Live - 2011 Remaster",
		"  spaced  out  ",
		"",
	}
	for _, in := range inputs {
		once := NormalizeTitle(in)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("NormalizeTitle not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
