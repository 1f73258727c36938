// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RCFileName is tried as YAML first and HCL second
const RCFileName = ".reblockrc"

// DefaultFileNames are searched, in order, when no config path is given
var DefaultFileNames = []string{
	".reblock.yaml",
	".reblock.yml",
	".reblock.json",
	".reblock.hcl",
	RCFileName,
}

// 🔍 Find returns the first default config file in dir, or "" if none exists
func Find(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", errors.Errorf("checking %s: %w", path, err)
		}
	}
	return "", nil
}

// 🎯 Resolve loads the config at path, or the default config file in dir
// when path is empty. A missing default file yields Default().
func Resolve(ctx context.Context, path, dir string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path != "" {
		return LoadAny(ctx, path)
	}

	found, err := Find(dir)
	if err != nil {
		return nil, errors.Errorf("finding config: %w", err)
	}
	if found == "" {
		logger.Debug().Str("dir", dir).Msg("no config file found, using defaults")
		return Default(), nil
	}

	return LoadAny(ctx, found)
}

// LoadAny loads path like Load, and also accepts the extensionless rc file
func LoadAny(ctx context.Context, path string) (*Config, error) {
	if filepath.Base(path) != RCFileName {
		return Load(ctx, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Try YAML first
	cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
	if yamlErr != nil {
		// Try HCL next
		var hclErr error
		cfg, hclErr = parseHCL(data, path)
		if hclErr != nil {
			return nil, errors.Errorf("parsing %s as YAML or HCL: %w", RCFileName, errors.Join(yamlErr, hclErr))
		}
	}
	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
