// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package config loads and validates application configuration.
//
// Configuration is layered with Koanf v2: struct defaults first, an
// optional YAML file second, environment variables last. All settings
// have defaults except JWT_SECRET, which is always required.
package config
