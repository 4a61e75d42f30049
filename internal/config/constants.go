package config

const SourceFileExt = ".l"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".l"}

// Version of the interpreter, overridable at build time.
var Version = "0.3.0"

// ConfigFileName is the optional runner configuration file looked up
// next to the executed script.
const ConfigFileName = "li.yaml"

// Well-known event names understood by the events native module.
const (
	EventStart = "start"
	EventStop  = "stop"
)
