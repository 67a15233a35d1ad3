// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for boxoffice.
//
// Configuration comes from at most one file, named by the --config
// flag (via [LoadFile]) or the BOXOFFICE_CONFIG environment variable
// (via [Load]). When neither is set, [Load] returns [Default]: a client
// pointed at a platform on localhost needs no file at all.
//
// Before anything else, [Load] and [LoadFile] read a .env file from
// the working directory with godotenv. Variables already set in the
// process environment win over .env entries.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Two environment variables override
// everything, for one-off runs against another platform:
//
//   - BOXOFFICE_API_URL replaces api.base_url
//   - BOXOFFICE_LOG_LEVEL replaces log_level
//
// ${HOME}, ${XDG_CONFIG_HOME} and ${VAR:-default} patterns in
// session.file are expanded after loading.
//
// This package depends on no other boxoffice packages; callers turn the
// accessors (RequestTimeout, Debounce, Location, ...) into component
// configs.
package config
