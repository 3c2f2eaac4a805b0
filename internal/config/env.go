package config

import (
	"os"
	"strconv"
	"strings"
)

func envString(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

func envBool(name string) (bool, bool) {
	v, ok := envString(name)
	if !ok {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func envInt(name string) (int, bool) {
	v, ok := envString(name)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func envFloat(name string) (float64, bool) {
	v, ok := envString(name)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
