// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"context"
	"strconv"
)

// Settings is the read-only lookup surface shared by [Manager] and
// [Document]. The generic lookups, e.g. [GetSetting], accept it so they
// work against either, or against a test double.
type Settings interface {
	// AppSettings returns the "appSettings" section. It is never nil,
	// an empty section is returned when none is configured.
	AppSettings() *Section

	// GetSection returns the named section, if it exists. Nested
	// sections are addressed with "/", e.g. "system.web/pages".
	GetSection(name string) (*Section, bool)
}

// Manager gives access to the application's default configuration
// and opens configuration documents. Inject it wherever configuration
// is needed instead of reaching for a global.
type Manager interface {
	Settings

	// ConnectionStrings returns every connection entry, merged across
	// configuration levels.
	ConnectionStrings() ConnectionStrings

	// RefreshSection drops the cached copy of the named section so the
	// next read re-reads it from the backing files.
	RefreshSection(name string)

	// HasSetting reports whether key exists in the appSettings section.
	HasSetting(key string) bool

	// HasSectionSetting reports whether key exists in the named section.
	// A missing section reports false.
	HasSectionSetting(key, section string) bool

	// HasConnectionString reports whether a connection entry named
	// exactly name exists. Blank names report false.
	HasConnectionString(name string) bool

	// OpenExeConfiguration opens the configuration of the running
	// executable as seen at the given user level.
	OpenExeConfiguration(level UserLevel) (Document, error)

	// OpenExeConfigurationFile opens the configuration of the
	// executable at exePath.
	OpenExeConfigurationFile(exePath string) (Document, error)

	// OpenMachineConfiguration opens the machine-wide configuration.
	OpenMachineConfiguration() (Document, error)

	// OpenMappedExeConfiguration opens the executable configuration
	// using explicitly mapped file names.
	OpenMappedExeConfiguration(fileMap ExeFileMap, level UserLevel, opts ...OpenOption) (Document, error)

	// OpenMappedMachineConfiguration opens the machine configuration
	// from an explicitly mapped file name.
	OpenMappedMachineConfiguration(fileMap FileMap) (Document, error)
}

// Watcher is implemented by Managers able to refresh themselves when
// their backing files change.
type Watcher interface {
	Watch(ctx context.Context) error
}

// Document is a single opened configuration hierarchy. Section edits
// are only persisted by Save and SaveAs.
type Document interface {
	Settings

	// ConnectionStrings returns the connection entries visible at
	// this document's level.
	ConnectionStrings() ConnectionStrings

	// SetConnectionString adds or replaces a connection entry at this
	// document's level.
	SetConnectionString(cs ConnectionString) error

	// RemoveConnectionString removes the named entry from this
	// document's level and reports whether it was present there.
	RemoveConnectionString(name string) bool

	// AddSection returns the named section, creating it empty at this
	// document's level when it does not exist.
	AddSection(name string) (*Section, error)

	// RemoveSection removes the named section or group from this
	// document's level and reports whether it was present there.
	RemoveSection(name string) bool

	// GetSectionGroup returns the named section group, if it exists.
	GetSectionGroup(name string) (*SectionGroup, bool)

	// Sections returns the top level sections.
	Sections() []*Section

	// SectionGroups returns the top level section groups.
	SectionGroups() []*SectionGroup

	// RootSectionGroup returns the group containing every top level
	// section and section group.
	RootSectionGroup() *SectionGroup

	// FilePath is the file this document saves to.
	FilePath() string

	// HasFile reports whether FilePath exists.
	HasFile() bool

	// Save writes the document to FilePath.
	Save(opts ...SaveOption) error

	// SaveAs writes the document to filename. The file extension
	// selects the output format.
	SaveAs(filename string, opts ...SaveOption) error
}

// UserLevel selects how much of the per-user configuration is
// layered over the executable configuration.
type UserLevel int

const (
	// None opens the executable configuration shared by all users.
	None UserLevel = iota

	// PerUserRoaming layers the roaming user configuration on top.
	PerUserRoaming

	// PerUserRoamingAndLocal also layers the local user configuration.
	PerUserRoamingAndLocal
)

// String implements the [fmt.Stringer] interface.
func (l UserLevel) String() string {
	switch l {
	case None:
		return "None"
	case PerUserRoaming:
		return "PerUserRoaming"
	case PerUserRoamingAndLocal:
		return "PerUserRoamingAndLocal"
	default:
		return "UserLevel(" + strconv.Itoa(int(l)) + ")"
	}
}

// FileMap names the machine configuration file explicitly.
type FileMap struct {
	MachineConfigFilename string
}

// ExeFileMap names every file of an executable's configuration
// hierarchy explicitly. Empty names are skipped, except for the
// name of the level being opened.
type ExeFileMap struct {
	FileMap

	ExeConfigFilename         string
	RoamingUserConfigFilename string
	LocalUserConfigFilename   string
}

// SaveMode controls which settings Save writes.
type SaveMode int

const (
	// SaveModeModified writes the settings held at the document's own
	// level and skips the write when nothing was changed.
	SaveModeModified SaveMode = iota

	// SaveModeMinimal writes only the settings at the document's own
	// level whose values differ from the inherited levels.
	SaveModeMinimal

	// SaveModeFull writes every setting visible to the document,
	// including inherited ones.
	SaveModeFull
)

// String implements the [fmt.Stringer] interface.
func (m SaveMode) String() string {
	switch m {
	case SaveModeModified:
		return "Modified"
	case SaveModeMinimal:
		return "Minimal"
	case SaveModeFull:
		return "Full"
	default:
		return "SaveMode(" + strconv.Itoa(int(m)) + ")"
	}
}

type saveOptions struct {
	mode  SaveMode
	force bool
}

// SaveOption configures Save and SaveAs.
type SaveOption func(*saveOptions)

// WithSaveMode selects the [SaveMode]. The default is SaveModeModified.
func WithSaveMode(mode SaveMode) SaveOption {
	return func(so *saveOptions) {
		so.mode = mode
	}
}

// ForceSaveAll writes the document even when nothing was changed.
func ForceSaveAll() SaveOption {
	return func(so *saveOptions) {
		so.force = true
	}
}

type openOptions struct {
	preLoad bool
}

// OpenOption configures how a [Document] is opened.
type OpenOption func(*openOptions)

// PreLoad validates every section and connection entry while opening
// so malformed content fails the open instead of being skipped later.
func PreLoad() OpenOption {
	return func(oo *openOptions) {
		oo.preLoad = true
	}
}
