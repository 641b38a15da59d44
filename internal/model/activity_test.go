package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityOpen(t *testing.T) {
	now := time.Now()

	a := &Activity{Status: ActivityPending}
	assert.True(t, a.Open())

	a = &Activity{Status: ActivityPending, EndTime: &now}
	assert.False(t, a.Open(), "closed but not yet reviewed")

	a = &Activity{Status: ActivityApproved}
	assert.False(t, a.Open())

	a = &Activity{Status: ActivityRejected, EndTime: &now}
	assert.False(t, a.Open())
}
