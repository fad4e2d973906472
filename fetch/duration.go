package fetch

import (
	"fmt"

	"github.com/sosodev/duration"
)

// ParseDuration turns an ISO-8601 duration like PT1H2M3S into whole seconds.
func ParseDuration(iso string) (int, error) {
	if iso == "" {
		return 0, nil
	}
	d, err := duration.Parse(iso)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q: %w", iso, err)
	}
	secs := int(d.ToTimeDuration().Seconds())
	if secs < 0 {
		return 0, fmt.Errorf("negative duration %q", iso)
	}

	return secs, nil
}
