package domain

import "fmt"

// Audience selects which profiles an alert is shown to.
type Audience string

const (
	AudienceEveryone    Audience = "everyone"
	AudienceZoneLeaders Audience = "zone-leaders"
	AudienceAreaLeaders Audience = "area-leaders"
	AudienceCellLeaders Audience = "cell-leaders"
	// AudienceZone targets every profile scoped under one zone; the alert's
	// ZoneID must be set.
	AudienceZone Audience = "zone"
)

func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceEveryone, AudienceZoneLeaders, AudienceAreaLeaders, AudienceCellLeaders, AudienceZone:
		return Audience(s), nil
	}
	return "", fmt.Errorf("unknown audience: %q", s)
}
