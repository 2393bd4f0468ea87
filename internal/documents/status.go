package documents

import (
	"github.com/anggasct/fluo"

	"leasing-backend/internal/shared/transition"
)

const entity = "document"

// reviewMachine: only pending documents can be verified or rejected.
var reviewMachine = fluo.NewMachine().
	State(string(StatusPending)).Initial().
	To(string(StatusVerified)).On(string(StatusVerified)).
	To(string(StatusRejected)).On(string(StatusRejected)).
	State(string(StatusVerified)).Final().
	State(string(StatusRejected)).Final().
	Build()

// Transition checks a review decision. Verified and rejected are terminal for
// the record.
func Transition(from, to Status) error {
	return transition.Check(reviewMachine, entity, from, to)
}
