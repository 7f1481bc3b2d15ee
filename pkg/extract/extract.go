package extract

// Logger is the slice of the application logger the extractors use.
type Logger interface {
	Debug(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}
