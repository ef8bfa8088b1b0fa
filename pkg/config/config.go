/*
 * Copyright 2025 The apmender Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config pkg/config/config.go
package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadFile reads a YAML file from path into the struct pointed to by
// dst.
func LoadFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal YAML from '%s': %w", path, err)
	}

	return nil
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	if v, ok := cfg.(Validator); ok {
		return v.Validate()
	}

	return nil
}

// LoadAndValidate loads a configuration file and validates it if
// possible.
func LoadAndValidate(path string, cfg interface{}) error {
	if err := LoadFile(path, cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}

// LoadRules loads the remediation rules document. A missing file is
// not an error: the built-in defaults apply. Anything else (unreadable
// file, bad YAML, failed validation) is fatal to the run.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Rules file not found: %s, using defaults", path)
		return DefaultRules(), nil
	}

	rules := DefaultRules()
	if err := LoadAndValidate(path, rules); err != nil {
		return nil, err
	}

	log.Printf("Loaded SLE rules from %s", path)

	return rules, nil
}
