package services

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/fitlog/internal/common"
)

// normalizeTime accepts "HH:MM" or "HH:MM:SS" and returns the latter. Empty
// strings clear the time.
func normalizeTime(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{common.TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			out := t.Format(common.TimeLayout)
			return &out, nil
		}
	}
	return nil, common.Validationf("Invalid time %q, expected HH:MM:SS.", v)
}
