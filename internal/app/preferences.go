package app

import (
	"context"
	"fmt"
	"strconv"
)

const (
	prefRelativeTime = "relative_time"
	prefShowNumbers  = "show_numbers"
)

type UIPreferences struct {
	RelativeTime bool
	ShowNumbers  bool
}

func DefaultUIPreferences() UIPreferences {
	return UIPreferences{RelativeTime: true, ShowNumbers: true}
}

func (s *Service) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	prefs := DefaultUIPreferences()
	if s.repo == nil {
		return prefs, nil
	}
	raw, err := s.repo.LoadPreferences(ctx)
	if err != nil {
		return prefs, fmt.Errorf("load UI preferences: %w", err)
	}
	prefs.RelativeTime = parseBool(raw[prefRelativeTime], prefs.RelativeTime)
	prefs.ShowNumbers = parseBool(raw[prefShowNumbers], prefs.ShowNumbers)
	return prefs, nil
}

func (s *Service) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	if s.repo == nil {
		return nil
	}
	err := s.repo.SavePreferences(ctx, map[string]string{
		prefRelativeTime: strconv.FormatBool(prefs.RelativeTime),
		prefShowNumbers:  strconv.FormatBool(prefs.ShowNumbers),
	})
	if err != nil {
		return fmt.Errorf("save UI preferences: %w", err)
	}
	return nil
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
