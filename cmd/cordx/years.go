package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/cordx/internal/config"
	"github.com/matsen/cordx/internal/dataset"
)

// parseYearRange parses a year specification into from/to values.
// Supported formats: "2024", "2020:2024", "2020:", ":2024".
// Open ends are returned as 0.
func parseYearRange(spec string) (from, to int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0, nil
	}

	if strings.Contains(spec, ":") {
		parts := strings.SplitN(spec, ":", 2)

		if s := strings.TrimSpace(parts[0]); s != "" {
			from, err = strconv.Atoi(s)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid start year %q", parts[0])
			}
		}
		if s := strings.TrimSpace(parts[1]); s != "" {
			to, err = strconv.Atoi(s)
			if err != nil {
				return 0, 0, fmt.Errorf("invalid end year %q", parts[1])
			}
		}
		return from, to, nil
	}

	year, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", spec)
	}
	return year, year, nil
}

// resolveYears picks the inclusive year range for a command.
//
// With an explicit spec, open ends take the dataset's year bounds and the
// range is used as given, inverted or not. Without one, the configured
// default range is clamped into the dataset's bounds; if that leaves
// nothing, the full bounds are used.
func resolveYears(spec string, cfg *config.Config, ds *dataset.Dataset) (int, int, error) {
	lo, hi, ok := ds.YearBounds()

	if strings.TrimSpace(spec) != "" {
		from, to, err := parseYearRange(spec)
		if err != nil {
			return 0, 0, err
		}
		if from == 0 {
			from = lo
		}
		if to == 0 {
			to = hi
		}
		return from, to, nil
	}

	from, to := cfg.YearMin, cfg.YearMax
	if !ok {
		return from, to, nil
	}
	from = max(from, lo)
	to = min(to, hi)
	if from > to {
		return lo, hi, nil
	}
	return from, to, nil
}

// mustResolveYears is resolveYears that exits on a malformed spec.
func mustResolveYears(spec string, cfg *config.Config, ds *dataset.Dataset) (int, int) {
	from, to, err := resolveYears(spec, cfg, ds)
	if err != nil {
		exitWithError(ExitError, "invalid --years: %v", err)
	}
	return from, to
}
