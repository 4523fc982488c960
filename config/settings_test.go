package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValidate(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestValidateRejectsWrongPlayerCount(t *testing.T) {
	s := Default()
	s.NumPlayers = 3
	err := Validate(s)
	require.Error(t, err)
	var unsupported *UnsupportedSettingsError
	assert.ErrorAs(t, err, &unsupported)
}

func TestValidateRejectsUnbalancedUma(t *testing.T) {
	s := Default()
	s.Uma = [4]int{20, 10, -10, -10}
	require.Error(t, Validate(s))
}

func TestValidateRejectsAgariyame(t *testing.T) {
	s := Default()
	s.HasAgariyame = true
	require.Error(t, Validate(s))
}

func TestValidateRejectsDoubleRonCountOutOfRange(t *testing.T) {
	s := Default()
	s.DoubleRonCount = 0
	require.Error(t, Validate(s))

	s.DoubleRonCount = 4
	require.Error(t, Validate(s))

	s.DoubleRonCount = 2
	require.NoError(t, Validate(s))
}

func TestWindThresholdsScaleWithPlayerCount(t *testing.T) {
	s := Default()
	eastMax, southMax, westMax := WindThresholds(s)
	assert.Equal(t, 4, eastMax)
	assert.Equal(t, 8, southMax)
	assert.Equal(t, 12, westMax)
}
