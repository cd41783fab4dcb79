package probe

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrContract reports a response that breaks the relay's contract.
var ErrContract = errors.New("contract violation")

func verifyLiveness(status int, body []byte) error {
	if status != http.StatusOK {
		return fmt.Errorf("%w: liveness status %d", ErrContract, status)
	}
	var l Liveness
	if err := json.Unmarshal(body, &l); err != nil {
		return fmt.Errorf("%w: liveness body: %w", ErrContract, err)
	}
	if l.Status != LivenessStatus {
		return fmt.Errorf("%w: liveness status field %q", ErrContract, l.Status)
	}
	return nil
}

// verifyTrending checks a trending response and returns the number of cards.
func verifyTrending(status int, body []byte) (int, error) {
	switch status {
	case http.StatusOK:
	case http.StatusServiceUnavailable, http.StatusInternalServerError:
		var e struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(body, &e); err != nil || e.Detail == "" {
			return 0, fmt.Errorf("%w: status %d without detail", ErrContract, status)
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unexpected status %d", ErrContract, status)
	}

	var cards []Card
	if err := json.Unmarshal(body, &cards); err != nil {
		return 0, fmt.Errorf("%w: body is not a card array: %w", ErrContract, err)
	}
	if cards == nil {
		return 0, fmt.Errorf("%w: null instead of array", ErrContract)
	}
	if len(cards) > MaxCards {
		return 0, fmt.Errorf("%w: %d cards exceeds cap %d", ErrContract, len(cards), MaxCards)
	}
	for i, c := range cards {
		if c.ID == "" || c.ImageURL == "" || c.PromptText == "" {
			return 0, fmt.Errorf("%w: card %d has empty fields", ErrContract, i)
		}
	}
	return len(cards), nil
}
