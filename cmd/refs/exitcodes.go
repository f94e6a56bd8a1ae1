package main

// Exit codes
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // General error (invalid arguments, runtime failure)
)
