package core

// Logger is the application logger. Implementations may inspect trailing
// args for known types (eg. a logged in user) and report them accordingly.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
