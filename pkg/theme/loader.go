// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package theme loads, validates and builds story themes for the
// progression engine.
package theme

import (
	"fmt"
	"os"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"gopkg.in/yaml.v3"
)

// LoadFile loads a theme from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadFile(path string) (*progression.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML theme document.
func Parse(data []byte) (*progression.Theme, error) {
	expanded := common.ExpandEnvVars(string(data))

	var t progression.Theme
	if err := yaml.Unmarshal([]byte(expanded), &t); err != nil {
		return nil, fmt.Errorf("failed to parse YAML theme: %w", err)
	}

	if err := Validate(&t); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &t, nil
}
