package domain

const (
	ACTOR_ID_MASTER = "master"
	ACTOR_ID_DOOR   = "door"
)

// Door modes as reported by DoorStateResponse.
const (
	DOOR_MODE_CLOSED = "closed"
	DOOR_MODE_OPEN   = "open"
	DOOR_MODE_MOVING = "moving"
	DOOR_MODE_LOCKED = "locked"
)

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
}

type OpenDoorRequest struct {
	ActorRequestMixIn
}

type CloseDoorRequest struct {
	ActorRequestMixIn
}

type LockDoorRequest struct {
	ActorRequestMixIn
	PIN string
}

type UnlockDoorRequest struct {
	ActorRequestMixIn
	PIN string
}

type DoorCommandAck struct {
	ActorResponseMixIn
}

type DoorStateRequest struct {
	ActorRequestMixIn
}

type DoorStateResponse struct {
	ActorResponseMixIn
	Mode string
}
