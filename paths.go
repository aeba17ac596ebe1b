// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/z5labs/appconfig/config"
)

const (
	machineConfigFile = "machine.config"
	userConfigFile    = "user.config"
)

// hierarchy holds the file of each configuration level, lowest
// precedence first. Empty paths are skipped when loading.
type hierarchy struct {
	machine string
	exe     string
	roaming string
	local   string
}

func resolveHierarchy(o *options) (hierarchy, error) {
	exePath := o.exePath
	if exePath == "" {
		p, err := os.Executable()
		if err != nil {
			return hierarchy{}, err
		}
		exePath = p
	}

	name := o.name
	if name == "" {
		base := filepath.Base(exePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	machine := o.machineFile
	if machine == "" {
		machine = filepath.Join(string(filepath.Separator)+"etc", name, machineConfigFile+config.YAML.Ext())
	}

	h := hierarchy{
		machine: machine,
		exe:     exeConfigPath(exePath, o.format),
	}

	userDir := o.userConfigDir
	if userDir == "" {
		// without a user config dir only the user levels are unavailable
		dir, err := os.UserConfigDir()
		if err != nil {
			return h, nil
		}
		userDir = dir
	}

	ext := o.format.Ext()
	h.roaming = filepath.Join(userDir, name, userConfigFile+ext)
	h.local = filepath.Join(userDir, name, "local", userConfigFile+ext)
	return h, nil
}

// exeConfigPath returns the configuration file of the executable at
// exePath, e.g. /usr/bin/app.config.yaml.
func exeConfigPath(exePath string, f config.Format) string {
	return exePath + ".config" + f.Ext()
}

// files returns the files read when opening level, the last one being
// the file saved to.
func (h hierarchy) files(level UserLevel) ([]string, error) {
	if level != None && h.roaming == "" {
		return nil, ArgumentError{Name: "level", Reason: "no user configuration directory to open " + level.String()}
	}

	switch level {
	case None:
		return []string{h.machine, h.exe}, nil
	case PerUserRoaming:
		return []string{h.machine, h.exe, h.roaming}, nil
	case PerUserRoamingAndLocal:
		return []string{h.machine, h.exe, h.roaming, h.local}, nil
	default:
		return nil, ArgumentError{Name: "level", Reason: "unknown user level " + level.String()}
	}
}

type mappedFile struct {
	field string
	path  string
}

// mappedFiles is files for an explicitly mapped hierarchy. The file of
// every level up to level is required.
func mappedFiles(m ExeFileMap, level UserLevel) ([]string, error) {
	required := []mappedFile{
		{field: "ExeConfigFilename", path: m.ExeConfigFilename},
		{field: "RoamingUserConfigFilename", path: m.RoamingUserConfigFilename},
		{field: "LocalUserConfigFilename", path: m.LocalUserConfigFilename},
	}
	switch level {
	case None:
		required = required[:1]
	case PerUserRoaming:
		required = required[:2]
	case PerUserRoamingAndLocal:
	default:
		return nil, ArgumentError{Name: "level", Reason: "unknown user level " + level.String()}
	}

	files := []string{m.MachineConfigFilename}
	for _, r := range required {
		if strings.TrimSpace(r.path) == "" {
			return nil, ArgumentError{Name: r.field, Reason: "must be set to open " + level.String()}
		}
		files = append(files, r.path)
	}
	return files, nil
}
