package telemetry

// Source is an upstream telemetry producer: a lazy, non-restartable stream
// of samples. The engine consumes the channel until it is closed; Stop
// releases the underlying sensor subscription.
//
// Implementations live outside this module (platform sensor drivers, test
// simulators). Position and biometric streams are independently scheduled
// Sources; the engine funnels both into one aggregator entry point.
type Source interface {
	// Samples returns the sample channel. The channel is closed when the
	// source ends or after Stop.
	Samples() <-chan Sample

	// Stop releases the sensor subscription. Safe to call more than once.
	Stop()
}
