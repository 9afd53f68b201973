package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal surface used by commands: output, line prompts,
// hidden password prompts and yes/no confirmations.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}
