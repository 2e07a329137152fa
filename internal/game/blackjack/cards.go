// Package blackjack implements the blackjack table: a six-deck shoe, soft and
// hard hand totals, and the Hit/Stand state machine the session layer drives.
package blackjack

import "gamble-bot/internal/game"

// ShoeDecks is the number of 52-card decks shuffled into one shoe.
const ShoeDecks = 6

var (
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suits = []string{"♠", "♥", "♦", "♣"}
)

// Card is a single playing card.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String renders the card the way the table displays it, e.g. "A♠".
func (c Card) String() string {
	return c.Rank + c.Suit
}

// value returns the card's blackjack value counting an ace as 11.
func (c Card) value() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K", "10":
		return 10
	default:
		// Ranks "2".."9".
		return int(c.Rank[0] - '0')
	}
}

// NewShoe builds a freshly shuffled six-deck shoe using a Fisher-Yates
// shuffle over the injected randomness source.
func NewShoe(rng game.RNG) []Card {
	shoe := make([]Card, 0, ShoeDecks*52)
	for d := 0; d < ShoeDecks; d++ {
		for _, s := range suits {
			for _, r := range ranks {
				shoe = append(shoe, Card{Rank: r, Suit: s})
			}
		}
	}
	rng.Shuffle(len(shoe), func(i, j int) {
		shoe[i], shoe[j] = shoe[j], shoe[i]
	})
	return shoe
}

// HandTotal returns the playing total of a hand: aces count as 11 and are
// demoted to 1 one at a time while the total busts. A hand like A,6,10 is
// therefore 17, not 27.
func HandTotal(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += c.value()
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// HardTotal returns the hand's total with every ace forced to 1.
func HardTotal(hand []Card) int {
	total := 0
	for _, c := range hand {
		if c.Rank == "A" {
			total++
		} else {
			total += c.value()
		}
	}
	return total
}

// IsSoft reports whether the hand's playing total still counts an ace as 11.
func IsSoft(hand []Card) bool {
	return HandTotal(hand) != HardTotal(hand)
}

// IsNatural reports a two-card 21.
func IsNatural(hand []Card) bool {
	return len(hand) == 2 && HandTotal(hand) == 21
}
