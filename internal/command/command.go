// Package command validates operator intents against the closed set of
// values each device channel accepts.
package command

import (
	"sort"
	"strings"

	"github.com/picarx/gateway/internal/errors"
	"github.com/picarx/gateway/internal/models"
)

// allowed is the single table of legal intents per command role.
var allowed = map[models.Role]map[string]struct{}{
	models.RoleDrive:             set("forward", "backward", "stop"),
	models.RoleSteering:          set("left", "right", "center"),
	models.RoleCamera:            set("pan_left", "pan_right", "pan_center", "tilt_up", "tilt_down", "tilt_center"),
	models.RoleLineTracking:      set("start", "stop"),
	models.RoleObstacleAvoidance: set("start", "stop"),
}

// Rejection is attached as Data to invalid_command errors.
type Rejection struct {
	Role   models.Role `json:"role"`
	Intent string      `json:"intent"`
}

func (r Rejection) String() string {
	return string(r.Role) + "=" + `"` + r.Intent + `"`
}

// Validate returns the value to publish for intent on role.
//
// Fixed-set roles require an exact, case-sensitive match. Text-to-speech
// accepts any text that is not blank and returns it trimmed.
func Validate(role models.Role, intent string) (string, error) {
	if role == models.RoleTextToSpeech {
		text := strings.TrimSpace(intent)
		if text == "" {
			return "", errors.New(errors.ErrEmptyInput)
		}
		return text, nil
	}

	legal, ok := allowed[role]
	if !ok {
		return "", errors.Newf(errors.ErrInvalidCommand, "unknown command channel %q", role).
			WithData(Rejection{Role: role, Intent: intent})
	}
	if _, ok := legal[intent]; !ok {
		return "", errors.Newf(errors.ErrInvalidCommand, "invalid %s command", role).
			WithData(Rejection{Role: role, Intent: intent})
	}
	return intent, nil
}

// Roles returns every role that accepts commands, sorted.
func Roles() []models.Role {
	roles := make([]models.Role, 0, len(allowed)+1)
	for r := range allowed {
		roles = append(roles, r)
	}
	roles = append(roles, models.RoleTextToSpeech)
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Intents returns the sorted legal intents for role. It returns nil for
// free-text and unknown roles.
func Intents(role models.Role) []string {
	legal, ok := allowed[role]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(legal))
	for i := range legal {
		out = append(out, i)
	}
	sort.Strings(out)
	return out
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
