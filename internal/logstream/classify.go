package logstream

import (
	"strings"

	"github.com/taloswatch/taloswatch/pkg/models"
)

// Classify assigns a display severity to a raw log line by
// case-insensitive substring match. When a line carries several markers the
// highest tier wins; a line with none is info. "WARNING" and "WARN" both
// land on the warn tier.
func Classify(raw string) models.Severity {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "CRITICAL"):
		return models.SeverityCritical
	case strings.Contains(upper, "ERROR"):
		return models.SeverityError
	case strings.Contains(upper, "WARN"):
		return models.SeverityWarn
	case strings.Contains(upper, "DEBUG"):
		return models.SeverityDebug
	default:
		return models.SeverityInfo
	}
}
