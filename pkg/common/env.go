// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"os"
	"strings"
)

// ExpandEnvVars substitutes ${VAR} and ${VAR:default} in YAML text before it
// is parsed. An unset or empty variable takes the default, or "" without one.
func ExpandEnvVars(s string) string {
	return os.Expand(s, func(ref string) string {
		name, def, _ := strings.Cut(ref, ":")
		if v := os.Getenv(name); v != "" {
			return v
		}
		return def
	})
}

// GetEnv returns the value of key, or fallback when the variable is unset.
func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// ValidUserID reports whether id can name a player session.
func ValidUserID(id string) bool {
	return strings.TrimSpace(id) != "" && len(id) <= 128
}
