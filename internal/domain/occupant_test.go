package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccupantID_Packing(t *testing.T) {
	id := PackOccupantID(OccupantEnemy, 12345)
	assert.Equal(t, OccupantEnemy, id.Kind())
	assert.Equal(t, uint64(12345), id.Index())
	assert.Equal(t, "[ENEMY:12345]", id.String())

	// Индекс обрезается до своих бит и не портит тип
	big := PackOccupantID(OccupantWall, 1<<45|7)
	assert.Equal(t, OccupantWall, big.Kind())
	assert.Equal(t, uint64(7), big.Index())
}

func TestOccupantID_JSON(t *testing.T) {
	id := PackOccupantID(OccupantPlayer, 1)

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, byte('"'), raw[0], "ids travel as strings")

	var back OccupantID
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, id, back)

	// Числом тоже принимаем
	require.NoError(t, json.Unmarshal([]byte("42"), &back))
	assert.Equal(t, OccupantID(42), back)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &back))
}

func TestParseOccupantKind(t *testing.T) {
	assert.Equal(t, OccupantPlayer, ParseOccupantKind("player"))
	assert.Equal(t, OccupantEnemy, ParseOccupantKind("ENEMY"))
	assert.Equal(t, OccupantWall, ParseOccupantKind("Wall"))
	assert.Equal(t, OccupantUnknown, ParseOccupantKind("chest"))

	assert.True(t, OccupantPlayer.IsDie())
	assert.True(t, OccupantEnemy.IsDie())
	assert.False(t, OccupantWall.IsDie())
}
