package config

const (
	defaultCropHeight   = 224
	defaultCropWidth    = 224
	defaultChannels     = 3
	defaultSampleFrames = 20
	defaultRecordExt    = ".tfrecord"
	defaultDataDir      = "~/.local/share/clipset/data"
	defaultMetaDir      = "~/.local/share/clipset/meta"
	defaultLogDir       = "~/.local/share/clipset/logs"
	defaultCatalogPath  = "~/.local/share/clipset/catalog.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults. NumClasses has
// no sensible default and must come from the config file or environment.
func Default() Config {
	return Config{
		Dataset: Dataset{
			CropHeight:   defaultCropHeight,
			CropWidth:    defaultCropWidth,
			Channels:     defaultChannels,
			SampleFrames: defaultSampleFrames,
			RecordExt:    defaultRecordExt,
		},
		Paths: Paths{
			DataDir:     defaultDataDir,
			MetaDir:     defaultMetaDir,
			LogDir:      defaultLogDir,
			CatalogPath: defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
