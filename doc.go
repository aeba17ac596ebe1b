// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package appconfig provides injectable access to application settings,
// connection strings and configuration sections.
//
// Instead of reading configuration through package level state, create a
// [Manager] at startup and hand it to whatever needs configuration. Tests
// then substitute an in-memory Manager, see package appconfigtest, or any
// other implementation of [Settings].
//
// # Configuration files
//
// Configuration is layered from the following files, lowest precedence
// first. Missing files are treated as empty.
//
//   - machine: /etc/<name>/machine.config.yaml
//   - executable: <executable>.config.yaml
//   - roaming user: <user config dir>/<name>/user.config.yaml
//   - local user: <user config dir>/<name>/local/user.config.yaml
//
// Each file holds top level sections of string settings, section groups
// nesting further sections and a list of connection strings:
//
//	appSettings:
//	  Timeout: "10"
//	connectionStrings:
//	  - name: default
//	    connectionString: host=localhost
//	    providerName: postgres
//	system.web:
//	  pages:
//	    theme: dark
//
// YAML, JSON and TOML files are supported, the format is picked by the
// file extension.
//
// # Typed lookups
//
// Setting values are strings until converted with [GetSetting] and friends:
//
//	timeout, err := appconfig.GetSetting[int](m, "Timeout")
//	size, err := appconfig.GetSettingOrDefault(m, "Size", 22)
//	theme, err := appconfig.GetSectionSetting[string](m, "theme", "system.web/pages")
//
// # Documents
//
// A [Document] is one opened level of the hierarchy. Its sections can be
// edited and the result persisted with [Document.Save].
package appconfig
