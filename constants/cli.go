package constants

// CLI Commands
const (
	CmdGenerate = "gen-eeprom"
	CmdRedact   = "fru-redact"
)

// CLI Short Descriptions
const (
	DescGenerate = "Convert binary files into C byte array declarations"
	DescRedact   = "Redact identifying strings from a FRU EEPROM image"
)

// CLI Usage
const (
	UseGenerate = CmdGenerate + " [flags] <file> [file...]"
	UseRedact   = CmdRedact + " FILE"
	UsageRedact = "USAGE: fru-redact FILE"
)

// CLI Error Messages
const (
	ErrConfigLoadFailed  = "failed to load config %s: %w"
	ErrEmitterFailed     = "failed to build emitter: %w"
	ErrStoreCreateFailed = "failed to create blob store: %w"
	ErrGenerateFailed    = "Generation failed: %v"
	ErrRedactFailed      = "Redaction failed: %v"
)

// CLI Messages
const (
	MsgRedactedField = "%d %d %s"
	MsgRedactedWrote = "Wrote %s"
)
