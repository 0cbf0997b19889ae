// Package proof decodes bank-deposit receipts pasted from the game
// client, used as evidence that a training payment was made.
package proof

import (
	"regexp"
	"strconv"
	"strings"
)

// A full receipt line as the game client prints it:
//
//	12:41 Player Kharsek deposited 12000 gold coins.
var receiptPattern = regexp.MustCompile(`^(\d{1,2}:\d{2})\s+Player\s+(.+?)\s+deposited\s+(\d+)\s+gold coins\.?$`)

// Fallback for truncated or reformatted pastes
var loosePattern = regexp.MustCompile(`deposited\s+(\d+)\s+gold`)

// Receipt is a parsed deposit receipt
type Receipt struct {
	ClockTime  string // HH:MM as printed by the client, not validated
	PlayerName string
	Amount     int
}

// ParseReceipt parses a full receipt line. It returns false when the
// text does not match the client's receipt format.
func ParseReceipt(text string) (*Receipt, bool) {
	m := receiptPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, false
	}
	amount, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, false
	}
	return &Receipt{ClockTime: m[1], PlayerName: m[2], Amount: amount}, true
}

// ExtractAmount pulls a deposit amount out of proof text, trying the
// full receipt format first and falling back to any "deposited N gold"
// fragment. It returns false when no amount can be found.
func ExtractAmount(text string) (int, bool) {
	if r, ok := ParseReceipt(text); ok {
		return r.Amount, true
	}
	m := loosePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return amount, true
}
