package constants

// Environment variables
const (
	EnvPrefix = "PREFIX"
	EnvDebug  = "GEN_EEPROM_DEBUG"
)

// Configuration defaults
const (
	DefaultConfigPath   = ".gen-eeprom.yaml"
	DefaultQualifier    = "static const uint8_t"
	DefaultBytesPerLine = 16
	DefaultIndent       = "    "
	DefaultLogLevel     = "info"
)

// Output suffixes
const (
	RedactedSuffix = ".redacted"
)
