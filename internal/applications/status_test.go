package applications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leasing-backend/internal/shared/transition"
)

func TestTransitionTable(t *testing.T) {
	owner := Actor{ID: "owner-1", Role: RoleOwner}
	admin := Actor{ID: "admin-1", Role: RoleAdmin}
	applicant := Actor{ID: "applicant-1", Role: RoleApplicant}

	cases := []struct {
		name    string
		from    Status
		to      Status
		actor   Actor
		wantErr error
	}{
		{"owner approves", StatusPending, StatusApproved, owner, nil},
		{"owner rejects", StatusPending, StatusRejected, owner, nil},
		{"admin approves", StatusPending, StatusApproved, admin, nil},
		{"applicant may not decide", StatusPending, StatusApproved, applicant, ErrForbiddenActor},
		{"anonymous may not decide", StatusPending, StatusRejected, Actor{}, ErrForbiddenActor},
		{"pending to pending", StatusPending, StatusPending, owner, transition.ErrInvalid},
		{"approved is absorbing", StatusApproved, StatusRejected, admin, transition.ErrInvalid},
		{"approved back to pending", StatusApproved, StatusPending, owner, transition.ErrInvalid},
		{"rejected is absorbing", StatusRejected, StatusApproved, owner, transition.ErrInvalid},
		{"unknown target", StatusPending, Status("withdrawn"), owner, transition.ErrInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Transition(tc.from, tc.to, tc.actor)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []Status{StatusPending, StatusApproved, StatusRejected}
	for _, from := range []Status{StatusApproved, StatusRejected} {
		for _, to := range all {
			err := Transition(from, to, Actor{Role: RoleAdmin})
			var terr *transition.Error
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, "application", terr.Entity)
			assert.Equal(t, string(from), terr.From)
			assert.Equal(t, string(to), terr.To)
		}
	}
}
