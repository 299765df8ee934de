package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dicedeck-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *domain.ReplaySession {
	return &domain.ReplaySession{
		Seed:      -42,
		Timestamp: 1700000000,
		Actions: []domain.ReplayAction{
			{Seq: 2, Action: domain.ActionPlayCard, Payload: json.RawMessage(`{"cardId":3}`)},
			{Seq: 3, Action: domain.ActionPickTile, Payload: json.RawMessage(`{"x":1,"y":2}`)},
			{Seq: 4, Action: domain.ActionDeselect},
		},
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, sampleSession()))

	// 28 байт заголовка + 3 заголовка команд по 8 + полезная нагрузка
	assert.Equal(t, 28+3*8+len(`{"cardId":3}`)+len(`{"x":1,"y":2}`), buf.Len())
	assert.Equal(t, "DDRP", buf.String()[:4])

	got, err := ReadBinary(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)
}

func TestReadBinary_Rejects(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBinary(&buf, sampleSession()))
		raw := buf.Bytes()
		copy(raw, "NOPE")

		_, err := ReadBinary(bytes.NewReader(raw))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("unknown version", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBinary(&buf, sampleSession()))
		raw := buf.Bytes()
		raw[4] = 9

		_, err := ReadBinary(bytes.NewReader(raw))
		assert.ErrorContains(t, err, "unsupported version")
	})

	t.Run("truncated payload", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteBinary(&buf, sampleSession()))
		raw := buf.Bytes()[:buf.Len()-5]

		_, err := ReadBinary(bytes.NewReader(raw))
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadBinary(strings.NewReader(""))
		assert.ErrorContains(t, err, "failed to read header")
	})
}

func TestWriteBinary_PayloadTooLong(t *testing.T) {
	s := &domain.ReplaySession{Actions: []domain.ReplayAction{
		{Seq: 1, Action: domain.ActionPlayCard, Payload: make([]byte, 1<<16)},
	}}
	err := WriteBinary(&bytes.Buffer{}, s)
	assert.ErrorContains(t, err, "payload too long")
}

func TestReplayService_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "replays")
	svc := NewReplayService(dir)

	path, err := svc.Save(sampleSession())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "replay_-42_1700000000.ddrp"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	got, err := svc.Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSession(), got)
}

func TestReplayService_LoadMissing(t *testing.T) {
	svc := NewReplayService(t.TempDir())
	_, err := svc.Load(filepath.Join(svc.SaveDir, "nope.ddrp"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
