package attendance

import (
	"strings"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// SITE TOKEN - The payload a check-in QR badge encodes
// =============================================================================

// A site token is the site's UUID, printed on the badge the employee scans.
// The QR badge endpoint and this parser share the format, so a badge
// rendered by the system always decodes back to its site.

// ParseToken validates a scanned token and decodes the site identifier.
// Malformed tokens fail with engine.ErrInvalidToken before any state is
// touched and before any lock is taken.
func ParseToken(token string) (engine.SiteID, error) {
	return engine.ParseSiteID(strings.TrimSpace(token))
}

// TokenForSite is the inverse: the payload a site's badge should encode.
func TokenForSite(id engine.SiteID) string {
	return string(id)
}
