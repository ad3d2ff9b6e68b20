package petstore

// Logger is the logging surface the client relies on.
type Logger interface {
	DebugObj(msg, key string, obj any)
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, any) {}
