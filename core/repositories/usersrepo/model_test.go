package usersrepo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dev2ever/userservice/core/repositories/usersrepo"
)

func TestEqualsMatchingAssignedIDs(t *testing.T) {
	a := usersrepo.User{UserID: 7, Username: "alice"}
	b := usersrepo.User{UserID: 7, Username: "renamed"}

	// Identity equality: only the assigned id matters.
	assert.True(t, a.Equals(b))
	assert.True(t, b.Equals(a))
}

func TestEqualsDifferentIDs(t *testing.T) {
	a := usersrepo.User{UserID: 7}
	b := usersrepo.User{UserID: 8}

	assert.False(t, a.Equals(b))
}

func TestEqualsUnassignedIDNeverEqual(t *testing.T) {
	unsaved := usersrepo.User{Username: "alice", Email: "a@x.com"}
	sameFields := usersrepo.User{Username: "alice", Email: "a@x.com"}
	saved := usersrepo.User{UserID: 7, Username: "alice"}

	// An unpersisted user equals nothing, not even a field-identical copy
	// of itself.
	assert.False(t, unsaved.Equals(sameFields))
	assert.False(t, unsaved.Equals(unsaved))
	assert.False(t, unsaved.Equals(saved))
	assert.False(t, saved.Equals(unsaved))
}
