package events

import (
	"github.com/carlmjohnson/versioninfo"
)

// DoorModeChangedEvent is published on the actor system event stream every
// time the door actor settles in a new mode.
type DoorModeChangedEvent struct {
	From string
	To   string
}

type ServiceInfoEvent struct {
	Service string
	Version string
}

func NewServiceInfoEvent(service string) ServiceInfoEvent {
	return ServiceInfoEvent{
		Service: service,
		Version: versioninfo.Short(),
	}
}
