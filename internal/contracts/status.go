package contracts

import (
	"time"

	"github.com/anggasct/fluo"

	"leasing-backend/internal/shared/transition"
)

const entity = "contract"

// lifecycle is draft -> approved -> sent_to_signature -> partially_signed ->
// fully_signed. Every non-terminal status may be cancelled.
var lifecycle = fluo.NewMachine().
	State(string(StatusDraft)).Initial().
	To(string(StatusApproved)).On(string(StatusApproved)).
	To(string(StatusCancelled)).On(string(StatusCancelled)).
	State(string(StatusApproved)).
	To(string(StatusSentToSignature)).On(string(StatusSentToSignature)).
	To(string(StatusCancelled)).On(string(StatusCancelled)).
	State(string(StatusSentToSignature)).
	To(string(StatusPartiallySigned)).On(string(StatusPartiallySigned)).
	To(string(StatusCancelled)).On(string(StatusCancelled)).
	State(string(StatusPartiallySigned)).
	To(string(StatusFullySigned)).On(string(StatusFullySigned)).
	To(string(StatusCancelled)).On(string(StatusCancelled)).
	State(string(StatusFullySigned)).Final().
	State(string(StatusCancelled)).Final().
	Build()

// Transition checks a contract status change. fully_signed and cancelled have
// no outgoing edges.
func Transition(from, to Status) error {
	return transition.Check(lifecycle, entity, from, to)
}

// Apply moves c to the status to, stamping the first-entry timestamp. c is
// left untouched when the transition is invalid.
func Apply(c *Contract, to Status, now time.Time) error {
	if err := Transition(c.Status, to); err != nil {
		return err
	}
	c.Status = to
	switch to {
	case StatusApproved:
		setOnce(&c.ApprovedAt, now)
	case StatusSentToSignature:
		setOnce(&c.SentToSignatureAt, now)
	case StatusFullySigned:
		setOnce(&c.FullySignedAt, now)
	case StatusCancelled:
		setOnce(&c.CancelledAt, now)
	case StatusDraft, StatusPartiallySigned:
	}
	return nil
}

func setOnce(field **time.Time, at time.Time) {
	if *field == nil {
		*field = &at
	}
}
