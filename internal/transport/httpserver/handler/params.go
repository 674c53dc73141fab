package handler

import (
	"fmt"
	"strconv"
	"strings"
)

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

// parsePagination reads skip/limit query values; zero values mean defaults.
func parsePagination(skipRaw, limitRaw string) (int, int, error) {
	skip, err := parseIntParam(skipRaw, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid skip")
	}
	limit, err := parseIntParam(limitRaw, 0)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	return skip, limit, nil
}
