package types

import "time"

// InstanceSummary is a read-only projection of one EC2 instance as the
// provider reported it. It is rebuilt on every listing call and never
// persisted.
type InstanceSummary struct {
	ID               string
	Name             string
	State            string
	InstanceType     string
	AvailabilityZone string
	PublicIP         string
	PrivateIP        string
	LaunchTime       time.Time
}

// Tag is a provider-level key/value label attached to an instance.
type Tag struct {
	Key   string
	Value string
}

// StateChange is the provider-reported lifecycle transition of a single
// instance after a start, stop, or terminate call.
type StateChange struct {
	InstanceID    string
	PreviousState string
	CurrentState  string
}
