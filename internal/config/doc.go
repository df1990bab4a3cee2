// Screenpick - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/screenpick

/*
Package config loads and validates Screenpick configuration.

Configuration is layered with koanf v2. Later layers override earlier ones:

 1. built-in defaults (defaultConfig)
 2. an optional YAML file: CONFIG_PATH, else config.yaml, config.yml,
    /etc/screenpick/config.yaml or /etc/screenpick/config.yml
 3. environment variables, mapped explicitly in envMappings

A YAML file uses the koanf section names:

	data:
	  movies_path: /data/movies.csv
	  ratings_path: /data/ratings.csv
	  reload_interval: 1h
	recommend:
	  liked_fraction: 0.8
	  seed_weighting: seed_weighted
	security:
	  cors_origins: [https://movies.example.com]

Comma-separated environment values (CORS_ORIGINS) are split into lists.
Validate reports the first problem and names the environment variable that
controls the offending setting.
*/
package config
