package replay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjong/rng"
	"mahjong/service"
	"mahjong/state"
)

func TestLoadRoundTripsGameStartedAndDiscard(t *testing.T) {
	seed := rng.GenerateSeed()
	names := [4]string{"alice", "bob", "carol", "dave"}

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Start(seed, state.RNGVersion, names)
	rec.RecordDiscard(2, 17, true, false)
	require.NoError(t, rec.Err())

	input, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, seed, input.SeedHex)
	assert.Equal(t, state.RNGVersion, input.RNGVersion)
	assert.Equal(t, names, input.Names)
	require.Len(t, input.Events, 1)
	assert.Equal(t, 2, input.Events[0].Seat)
	assert.Equal(t, service.ActionDiscard, input.Events[0].Action)
	assert.EqualValues(t, 17, input.Events[0].Data.TileID)
}

func TestLoadRejectsWrongRNGVersion(t *testing.T) {
	seed := rng.GenerateSeed()
	names := [4]string{"a", "b", "c", "d"}

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Start(seed, "some-other-version", names)

	_, err := Load(&buf)
	require.Error(t, err)
	var badRec *BadRecordError
	require.ErrorAs(t, err, &badRec)
}

func TestLoadRejectsTooFewRecords(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte(`{"version":"x"}`)))
	require.Error(t, err)
}

func TestLoadRiichiDiscardMapsToDeclareRiichi(t *testing.T) {
	seed := rng.GenerateSeed()
	names := [4]string{"a", "b", "c", "d"}

	var buf bytes.Buffer
	rec := NewRecorder(&buf)
	rec.Start(seed, state.RNGVersion, names)
	rec.RecordDiscard(0, 5, false, true)

	input, err := Load(&buf)
	require.NoError(t, err)
	require.Len(t, input.Events, 1)
	assert.Equal(t, service.ActionDeclareRiichi, input.Events[0].Action)
}

func TestSplitStreamHandlesTrivialSingleRecord(t *testing.T) {
	parts := splitStream([]byte(`{"version":"x"}`))
	require.Len(t, parts, 1)
	assert.Equal(t, `{"version":"x"}`, string(parts[0]))
}
