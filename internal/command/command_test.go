package command_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picarx/gateway/internal/command"
	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/models"
)

var table = map[models.Role][]string{
	models.RoleDrive:             {"forward", "backward", "stop"},
	models.RoleSteering:          {"left", "right", "center"},
	models.RoleCamera:            {"pan_left", "pan_right", "pan_center", "tilt_up", "tilt_down", "tilt_center"},
	models.RoleLineTracking:      {"start", "stop"},
	models.RoleObstacleAvoidance: {"start", "stop"},
}

// every intent known to any role, plus near misses
var candidates = []string{
	"", " ", "forward", "backward", "stop", "left", "right", "center",
	"pan_left", "pan_right", "pan_center", "tilt_up", "tilt_down", "tilt_center",
	"start", "sideways", "Forward", "STOP", " stop", "stop ", "pan-left", "tilt",
}

func TestValidate_ClosedSets(t *testing.T) {
	for role, legal := range table {
		ok := make(map[string]bool)
		for _, i := range legal {
			ok[i] = true
		}

		for _, intent := range candidates {
			got, err := command.Validate(role, intent)
			if ok[intent] {
				require.NoError(t, err, "role %s intent %q", role, intent)
				assert.Equal(t, intent, got)
				continue
			}
			require.Error(t, err, "role %s intent %q", role, intent)
			assert.Equal(t, errors.ErrInvalidCommand, errors.CodeOf(err))
		}
	}
}

func TestValidate_RejectionCarriesValue(t *testing.T) {
	_, err := command.Validate(models.RoleDrive, "sideways")
	require.Error(t, err)

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, command.Rejection{Role: models.RoleDrive, Intent: "sideways"}, e.Data)
	assert.Contains(t, e.Error(), "sideways")
}

func TestValidate_UnknownRole(t *testing.T) {
	_, err := command.Validate(models.RoleUltrasonic, "forward")
	assert.Equal(t, errors.ErrInvalidCommand, errors.CodeOf(err))

	_, err = command.Validate("horn", "beep")
	assert.Equal(t, errors.ErrInvalidCommand, errors.CodeOf(err))
}

func TestValidate_TextToSpeech(t *testing.T) {
	got, err := command.Validate(models.RoleTextToSpeech, "  hello operator \n")
	require.NoError(t, err)
	assert.Equal(t, "hello operator", got)

	for _, blank := range []string{"", " ", "\t\n", strings.Repeat(" ", 20)} {
		_, err := command.Validate(models.RoleTextToSpeech, blank)
		assert.Equal(t, errors.ErrEmptyInput, errors.CodeOf(err), "input %q", blank)
	}
}

func TestIntents(t *testing.T) {
	assert.Equal(t, []string{"backward", "forward", "stop"}, command.Intents(models.RoleDrive))
	assert.Nil(t, command.Intents(models.RoleTextToSpeech))
	assert.Len(t, command.Roles(), 6)
}
