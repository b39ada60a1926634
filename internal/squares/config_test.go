package squares

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      Config
		want    Config
		wantErr error
	}{
		{
			name: "classic",
			in:   Config{Size: 5, Mode: ModeHeadToHead, Players: []PlayerID{" Red ", "Blue"}, TurnLimit: time.Second},
			want: Config{Size: 5, Mode: ModeHeadToHead, Players: []PlayerID{"Red", "Blue"}},
		},
		{
			name: "rapid default limit",
			in:   Config{Size: 10, Mode: ModeRapid, Players: []PlayerID{"Red", "Blue"}},
			want: Config{Size: 10, Mode: ModeRapid, Players: []PlayerID{"Red", "Blue"}, TurnLimit: DefaultTurnLimit},
		},
		{
			name: "versus ai appends opponent",
			in:   Config{Size: 6, Mode: ModeVsAI, Players: []PlayerID{"You"}},
			want: Config{Size: 6, Mode: ModeVsAI, Players: []PlayerID{"You", AIPlayer}},
		},
		{
			name: "rotation of four",
			in:   Config{Size: 7, Mode: ModeRotation, Players: []PlayerID{"a", "b", "c", "d"}},
			want: Config{Size: 7, Mode: ModeRotation, Players: []PlayerID{"a", "b", "c", "d"}},
		},
		{"grid too small", Config{Size: 4, Mode: ModeHeadToHead, Players: []PlayerID{"a", "b"}}, Config{}, ErrGridSize},
		{"grid too large", Config{Size: 11, Mode: ModeHeadToHead, Players: []PlayerID{"a", "b"}}, Config{}, ErrGridSize},
		{"rotation of five", Config{Size: 5, Mode: ModeRotation, Players: []PlayerID{"a", "b", "c", "d", "e"}}, Config{}, ErrPlayerCount},
		{"classic of three", Config{Size: 5, Mode: ModeHeadToHead, Players: []PlayerID{"a", "b", "c"}}, Config{}, ErrPlayerCount},
		{"ai with two humans", Config{Size: 5, Mode: ModeVsAI, Players: []PlayerID{"a", "b"}}, Config{}, ErrPlayerID},
		{"duplicate ids", Config{Size: 5, Mode: ModeHeadToHead, Players: []PlayerID{"a", "a"}}, Config{}, ErrPlayerID},
		{"blank id", Config{Size: 5, Mode: ModeHeadToHead, Players: []PlayerID{"a", "  "}}, Config{}, ErrPlayerID},
		{"unknown mode", Config{Size: 5, Mode: Mode(9), Players: []PlayerID{"a", "b"}}, Config{}, ErrUnknownMode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Normalize()
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Errorf("err = %T, want *ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"classic", ModeHeadToHead},
		{"", ModeHeadToHead},
		{"Rotation", ModeRotation},
		{"ai", ModeVsAI},
		{" rapid ", ModeRapid},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if tc.in != "" && got.String() == "unknown" {
			t.Errorf("%v has no name", got)
		}
	}
	if _, err := ParseMode("chess"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(chess) err = %v, want ErrUnknownMode", err)
	}
}

func TestChooseMoveIsDeterministic(t *testing.T) {
	g := NewGrid(5)
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			setCell(g, r, c, 1, "Red")
		}
	}
	setCell(g, 1, 1, 2, AIPlayer)
	setCell(g, 3, 4, 0, NoPlayer)
	legal := map[Pos]bool{{1, 1}: true, {3, 4}: true}

	a := rand.New(rand.NewSource(5))
	b := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		pa, ok := ChooseMove(g, AIPlayer, a)
		pb, _ := ChooseMove(g, AIPlayer, b)
		if !ok || !legal[pa] {
			t.Fatalf("ChooseMove = %v, %v; want a legal cell", pa, ok)
		}
		if pa != pb {
			t.Fatalf("same seed gave %v and %v", pa, pb)
		}
	}

	setCell(g, 1, 1, 1, "Red")
	setCell(g, 3, 4, 1, "Red")
	if _, ok := ChooseMove(g, AIPlayer, a); ok {
		t.Error("ChooseMove found a cell on a board owned by Red")
	}
}
