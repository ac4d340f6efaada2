package sim

// VTimeInCycle is the logical time of a simulated component, counted in
// serviced operations.
type VTimeInCycle uint64

// TimeTeller can be used to get the current logical time.
type TimeTeller interface {
	CurrentTime() VTimeInCycle
}
