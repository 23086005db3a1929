package config

// Tool represents an extra archive-packaged developer utility to install.
// - Name: Logical name for the tool.
// - Version: Version to install, used for idempotent re-runs against the state file.
// - URL: Direct download URL of the archive (.zip, .7z, .tar.gz, .tar.bz2, .tar.xz).
// - Checksum: Optional MD5 of the archive; verified before extraction when set.
type Tool struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	URL      string `yaml:"url"`
	Checksum string `yaml:"checksum"`
}

// Config is the full runtime configuration. The defaults are the fixed
// production paths the tool uses when invoked with no config file (the normal
// case for the packaged post-install invocation); a YAML file can override
// individual values and declare extra tools.
type Config struct {
	// ScratchDir is the working location for downloaded artifacts.
	ScratchDir string `yaml:"scratch_dir"`

	// ToolchainDir is the Command Line Tools installation directory whose
	// presence marks the base toolchain as installed.
	ToolchainDir string `yaml:"toolchain_dir"`

	// SentinelPath is the on-demand marker file that makes softwareupdate
	// list the Command Line Tools in its catalog.
	SentinelPath string `yaml:"sentinel_path"`

	// MountPoint is the fixed location the gfortran disk image is attached at.
	MountPoint string `yaml:"mount_point"`

	// DownloadBase is the release download base URL for gfortran disk images.
	DownloadBase string `yaml:"download_base"`

	// EnvFiles are the user config files removed (with backup) on every run so
	// compiler settings from an earlier toolchain cannot leak into new builds.
	EnvFiles []string `yaml:"env_files"`

	// StatePath is the JSON state file recording what this tool has installed.
	StatePath string `yaml:"state_path"`

	// Tools are optional extra utilities to provision after the toolchain.
	Tools []Tool `yaml:"tools"`
}
