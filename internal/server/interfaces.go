package server

// Server owns the listeners of the accounts service.
type Server interface {
	// RunServer serves until a termination signal arrives, then drains
	// in-flight requests and returns.
	RunServer()

	Shutdown()
}
