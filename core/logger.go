package core

// Logger is any leveled logger the services can report through.
// Implementations decide what to do with trailing args; an args entry
// of type user.User identifies the acting user where available.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
