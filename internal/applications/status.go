package applications

import (
	"github.com/anggasct/fluo"

	"leasing-backend/internal/shared/transition"
)

const entity = "application"

var decisionMachine = fluo.NewMachine().
	State(string(StatusPending)).Initial().
	To(string(StatusApproved)).On(string(StatusApproved)).
	To(string(StatusRejected)).On(string(StatusRejected)).
	State(string(StatusApproved)).Final().
	State(string(StatusRejected)).Final().
	Build()

// Transition checks a decision on an application. Only pending applications
// can be approved or rejected, and only by the property owner or an admin.
// Approved and rejected are absorbing.
func Transition(from, to Status, actor Actor) error {
	if err := transition.Check(decisionMachine, entity, from, to); err != nil {
		return err
	}
	switch actor.Role {
	case RoleOwner, RoleAdmin:
		return nil
	default:
		return ErrForbiddenActor
	}
}
