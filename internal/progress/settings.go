package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Role is a user's role within their team.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Notifications holds the user's notification toggles.
type Notifications struct {
	NewLessons   bool `json:"newLessons"`
	ToolUpdates  bool `json:"toolUpdates"`
	TeamActivity bool `json:"teamActivity"`
	WeeklyDigest bool `json:"weeklyDigest"`
}

// Settings are the user's profile and notification preferences.
type Settings struct {
	Name          string        `json:"name"`
	Email         string        `json:"email" validate:"omitempty,email"`
	Team          string        `json:"team"`
	Role          Role          `json:"role" validate:"required,oneof=admin member"`
	Notifications Notifications `json:"notifications"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() Settings {
	return Settings{
		Team: "Engineering",
		Role: RoleMember,
		Notifications: Notifications{
			NewLessons:   true,
			ToolUpdates:  true,
			TeamActivity: false,
			WeeklyDigest: true,
		},
	}
}

var settingsValidator = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

// Validate checks field constraints.
func (s Settings) Validate() error {
	err := settingsValidator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return fmt.Errorf("invalid settings: %s: %w", strings.Join(msgs, "; "), err)
	}
	return fmt.Errorf("invalid settings: %w", err)
}

// Settings returns the stored settings. Fields missing from the stored blob
// take their default values; an unreadable or malformed blob yields
// DefaultSettings.
func (s *Store) Settings(ctx context.Context) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSettings(ctx)
}

// SaveSettings validates and persists settings, replacing what was stored.
// Only validation failures are returned; storage failures are logged.
func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(ctx, SettingsKey, settings)
	return nil
}

func (s *Store) loadSettings(ctx context.Context) Settings {
	out := DefaultSettings()
	if !s.read(ctx, SettingsKey, &out) {
		return DefaultSettings()
	}
	return out
}
