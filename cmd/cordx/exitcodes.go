package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error or the data file cannot be loaded
	ExitDataError   = 3 // Data error (empty dataset, cache disagrees with source)
)
