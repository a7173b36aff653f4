package config

const (
	defaultDataDir    = "~/.local/share/packsmith"
	defaultLogDir     = "~/.local/share/packsmith/logs"
	defaultExportDir  = "~/packsmith-export"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultEnviron    = "desktop"
	defaultDesktopSec = 30
	defaultWebSec     = 15
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
			ExportDir: defaultExportDir,
		},
		Host: Host{
			Environment: defaultEnviron,
		},
		Autosave: Autosave{
			Enabled:                true,
			DesktopIntervalSeconds: defaultDesktopSec,
			WebIntervalSeconds:     defaultWebSec,
			RestoreOnStart:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
