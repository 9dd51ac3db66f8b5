package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Rank(t *testing.T) {
	assert.Greater(t, RoleAdmin.Rank(), RoleLibrarian.Rank())
	assert.Greater(t, RoleLibrarian.Rank(), RoleUser.Rank())
	assert.Greater(t, RoleUser.Rank(), Role("INTRUDER").Rank())
}

func TestRole_CanManage(t *testing.T) {
	cases := []struct {
		subject Role
		target  Role
		want    bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleLibrarian, true},
		{RoleAdmin, RoleUser, true},
		{RoleLibrarian, RoleAdmin, false},
		{RoleLibrarian, RoleLibrarian, false},
		{RoleLibrarian, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleUser, RoleLibrarian, false},
		{RoleUser, RoleUser, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.subject.CanManage(tc.target),
			"%s managing %s", tc.subject, tc.target)
	}
}

func TestRole_IsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleLibrarian.IsStaff())
	assert.False(t, RoleUser.IsStaff())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleLibrarian.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("user").Valid())
}
