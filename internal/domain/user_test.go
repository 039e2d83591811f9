package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForPoints(t *testing.T) {
	levels := []MemberLevel{
		{Id: "gold", MinPoints: 5000},
		{Id: "bronze", MinPoints: 0},
		{Id: "silver", MinPoints: 1000},
	}

	assert.Equal(t, MemberLevelIdentifier("bronze"), LevelForPoints(levels, 10).Id)
	assert.Equal(t, MemberLevelIdentifier("silver"), LevelForPoints(levels, 1280).Id)
	assert.Equal(t, MemberLevelIdentifier("gold"), LevelForPoints(levels, 5000).Id)
	assert.Nil(t, LevelForPoints(levels[:1], 10))
}

func TestPointsRecord_Delta(t *testing.T) {
	assert.Equal(t, 50, (&PointsRecord{Amount: 50, Type: PointsTypeEarn}).Delta())
	assert.Equal(t, -50, (&PointsRecord{Amount: 50, Type: PointsTypeSpend}).Delta())
}

func TestAdmin_Password(t *testing.T) {
	a := &Admin{Password: "secret"}
	require.NoError(t, a.HashPassword())
	assert.NotEqual(t, PrivateString("secret"), a.Password)

	hashed := a.Password
	require.NoError(t, a.HashPassword())
	assert.Equal(t, hashed, a.Password, "hashing twice must not change the hash")

	assert.NoError(t, a.CheckPassword("secret"))
	assert.Error(t, a.CheckPassword("wrong"))
	assert.Error(t, (&Admin{}).CheckPassword(""))
}

func TestContextUserInfo(t *testing.T) {
	assert.False(t, DefaultContextUserInfo().Authenticated())
	assert.True(t, SystemAdminContextUserInfo().Authenticated())
}
