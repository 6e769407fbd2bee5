package defaults

import "time"

const (
	// Browser names the browser engine used when none is configured
	Browser = "chrome"

	// ImplicitWait defines how long the session waits for elements to appear on lookup
	ImplicitWait = 5 * time.Second

	// ElementTimeout defines the default timeout for element wait operations
	ElementTimeout = 10 * time.Second

	// PollInterval defines the frequency of polling attempts in wait loops
	PollInterval = 200 * time.Millisecond

	// PageLoadTimeout defines the amount of time to wait for a document to finish loading
	PageLoadTimeout = 30 * time.Second

	// WindowWidth and WindowHeight define the fixed browser window geometry
	WindowWidth  = 1920
	WindowHeight = 1080

	// RetryDelay defines the interval between retry attempts
	RetryDelay = 500 * time.Millisecond
	// RetryAttempts defines the maximum number of retry attempts
	RetryAttempts = 3

	// DriverStartTimeout defines the amount of time allotted to a local driver service to start
	DriverStartTimeout = 10 * time.Second
)
