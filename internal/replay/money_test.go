package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/ftreplay/internal/handhistory"
)

func TestApplyVerbEffects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		action       handhistory.Action
		contribution int
		want         Effect
	}{
		{
			name:   "post small blind",
			action: handhistory.Action{Player: "Alice", Verb: "posts", Detail: "the small blind of 10"},
			want:   Effect{PotDelta: 10, NewContribution: 10, StackDelta: -10},
		},
		{
			name:   "ante leaves contribution alone",
			action: handhistory.Action{Player: "Bob", Verb: "antes", Detail: "25"},
			want:   Effect{PotDelta: 25, NewContribution: 0, StackDelta: -25},
		},
		{
			name:   "bet",
			action: handhistory.Action{Player: "Bob", Verb: "bets", Detail: "80"},
			want:   Effect{PotDelta: 80, NewContribution: 80, StackDelta: -80},
		},
		{
			name:         "call on top of blind",
			action:       handhistory.Action{Player: "Bob", Verb: "calls", Detail: "40"},
			contribution: 20,
			want:         Effect{PotDelta: 40, NewContribution: 60, StackDelta: -40},
		},
		{
			name:         "raise is a target total",
			action:       handhistory.Action{Player: "Alice", Verb: "raises", Detail: "to 60"},
			contribution: 10,
			want:         Effect{PotDelta: 50, NewContribution: 60, StackDelta: -50},
		},
		{
			name:         "re-raise same street",
			action:       handhistory.Action{Player: "Alice", Verb: "raises", Detail: "to 240"},
			contribution: 60,
			want:         Effect{PotDelta: 180, NewContribution: 240, StackDelta: -180},
		},
		{
			name:         "raise target below contribution clamps to zero",
			action:       handhistory.Action{Player: "Alice", Verb: "raises", Detail: "to 50"},
			contribution: 60,
			want:         Effect{PotDelta: 0, NewContribution: 60, StackDelta: 0},
		},
		{
			name:         "uncalled bet reverses pot and contribution",
			action:       handhistory.Action{Player: "Alice", Verb: "uncalled", Detail: "of 80 returned to Alice"},
			contribution: 80,
			want:         Effect{PotDelta: -80, NewContribution: 0, StackDelta: 80},
		},
		{
			name:   "payout grows stack only",
			action: handhistory.Action{Player: "Alice", Verb: "wins", Detail: "the pot (120)"},
			want:   Effect{PotDelta: 0, NewContribution: 0, StackDelta: 120},
		},
		{
			name:   "check has no effect",
			action: handhistory.Action{Player: "Bob", Verb: "checks"},
			want:   Effect{},
		},
		{
			name:   "fold has no money effect",
			action: handhistory.Action{Player: "Bob", Verb: "folds"},
			want:   Effect{},
		},
		{
			name:   "comma separated amount",
			action: handhistory.Action{Player: "Alice", Verb: "bets", Detail: "1,200"},
			want:   Effect{PotDelta: 1200, NewContribution: 1200, StackDelta: -1200},
		},
		{
			name:   "missing amount defaults to zero",
			action: handhistory.Action{Player: "Alice", Verb: "bets", Detail: "???"},
			want:   Effect{AmountMissing: true},
		},
		{
			name:   "unknown verb passes through",
			action: handhistory.Action{Player: "Alice", Verb: "adds", Detail: "500 from reserve"},
			want:   Effect{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.action, tt.contribution))
		})
	}
}

func TestUncalledRecipient(t *testing.T) {
	t.Parallel()

	withClause := handhistory.Action{Player: "Alice", Verb: "uncalled", Detail: "of 80 returned to Bob Jones"}
	assert.Equal(t, "Bob Jones", UncalledRecipient(withClause))

	bare := handhistory.Action{Player: "Alice", Verb: "uncalled", Detail: "of 80"}
	assert.Equal(t, "Alice", UncalledRecipient(bare))
}
