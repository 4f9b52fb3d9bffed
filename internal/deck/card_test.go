package deck

import "testing"

func TestParseCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Kh", King, Hearts},
		{"Td", Ten, Diamonds},
		{"9c", Nine, Clubs},
		{"2s", Two, Spades},
		{"qh", Queen, Hearts},
	}

	for _, tt := range tests {
		card, err := ParseCard(tt.code)
		if err != nil {
			t.Fatalf("ParseCard(%q) returned error: %v", tt.code, err)
		}
		if card.Rank != tt.rank || card.Suit != tt.suit {
			t.Errorf("ParseCard(%q) = %v, want rank %v suit %v", tt.code, card, tt.rank, tt.suit)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "A", "1h", "Ax", "Ahh"} {
		if _, err := ParseCard(code); err == nil {
			t.Errorf("ParseCard(%q) should fail", code)
		}
	}
}

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	card, err := ParseCard("Qd")
	if err != nil {
		t.Fatal(err)
	}
	if got := card.Code(); got != "Qd" {
		t.Errorf("Code() = %q, want %q", got, "Qd")
	}
	if got := card.String(); got != "Q♦" {
		t.Errorf("String() = %q, want %q", got, "Q♦")
	}
	if !card.IsRed() {
		t.Error("diamonds should be red")
	}
}

func TestParseCardsSkipsGarbage(t *testing.T) {
	t.Parallel()

	cards := ParseCards("Ah Kd zz 7h")
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[2].Code() != "7h" {
		t.Errorf("last card = %q, want 7h", cards[2].Code())
	}
}
