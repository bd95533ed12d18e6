package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/berfenger/beckon/internal/config"
	"github.com/berfenger/beckon/internal/domain"
	"github.com/berfenger/beckon/internal/events"
	"github.com/berfenger/beckon/internal/util/actorutil"
	"github.com/berfenger/beckon/pkg/receive"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// DoorActor drives a simulated motorized door. Modes map to behavior states:
// closed and open swap with Become, locked is stacked on top of closed and
// reverts with UnbecomeStacked, moving stashes commands until the drive
// settles.
type DoorActor struct {
	actorutil.ActorWithStates
	config      *config.Config
	stash       *actorutil.Stash
	scheduler   *scheduler.TimerScheduler
	eventStream *eventstream.EventStream

	cancelAutoClose scheduler.CancelFunc

	ctx    actor.Context
	logger *zap.Logger
}

type doorMotorDone struct {
	mode string
}

type doorAutoCloseTick struct {
}

func NewDoorActor(config *config.Config, eventStream *eventstream.EventStream, logger *zap.Logger) *DoorActor {
	act := &DoorActor{
		ActorWithStates: actorutil.NewActorWithStates(),
		config:          config,
		stash:           &actorutil.Stash{},
		eventStream:     eventStream,
		logger:          actorutil.ActorLogger(domain.ACTOR_ID_DOOR, logger),
	}
	act.Become(doorStartingState{actor: act})
	return act
}

func (state *DoorActor) Receive(ctx actor.Context) {
	state.ctx = ctx
	if !state.Dispatch(ctx) {
		state.logger.Debug("unhandled message", zap.String("type", fmt.Sprintf("%T", ctx.Message())))
	}
}

// clauses shared by every settled state: health checks and state queries
func (act *DoorActor) commonReceive(mode string) receive.Receive {
	b := receive.Match(receive.NewBuilder(), func(req domain.ActorHealthRequest) {
		act.logger.Debug("door@" + mode + " ActorHealthRequest")
		actorutil.ForRequest(req).Respond(act.ctx, domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_DOOR,
			Healthy: true,
		})
	})
	b = receive.Match(b, func(req domain.DoorStateRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorStateResponse{
			Mode: mode,
		})
	})
	return b.Build()
}

func (act *DoorActor) startTravel(target string) {
	act.logger.Debug("door travel", zap.String("target", target))
	act.Become(doorMovingState{actor: act, target: target})
	act.scheduler.RequestOnce(time.Duration(act.config.Door.TravelMillis)*time.Millisecond,
		act.ctx.Self(), doorMotorDone{mode: target})
}

// settle leaves the moving/starting state and installs the behavior for the
// mode the drive reports.
func (act *DoorActor) settle(from, mode string) {
	if mode == domain.DOOR_MODE_OPEN {
		act.Become(doorOpenState{actor: act})
		if act.config.Door.AutoCloseMillis > 0 {
			act.cancelAutoClose = act.scheduler.RequestOnce(
				time.Duration(act.config.Door.AutoCloseMillis)*time.Millisecond,
				act.ctx.Self(), doorAutoCloseTick{})
		}
	} else {
		act.Become(doorClosedState{actor: act})
	}
	act.eventStream.Publish(events.DoorModeChangedEvent{
		From: from,
		To:   mode,
	})
}

// readInitialMode stands in for a position read from the door drive.
func (act *DoorActor) readInitialMode() *string {
	mode := domain.DOOR_MODE_CLOSED
	return &mode
}

// Starting state

type doorStartingState struct {
	actor *DoorActor
}

func (state doorStartingState) Name() string {
	return "starting"
}

func (state doorStartingState) Receive() receive.Receive {
	act := state.actor
	b := receive.Match(receive.NewBuilder(), func(*actor.Started) {
		act.logger.Debug("door@starting started")
		act.scheduler = scheduler.NewTimerScheduler(act.ctx)

		actorutil.NewBackgroundTaskNoError(act.ctx, act.readInitialMode).
			WithTimeout(2 * time.Second).
			Recover(func(err error) string {
				act.logger.Warn("door@starting position read failed", zap.Error(err))
				return domain.DOOR_MODE_CLOSED
			}).
			OnSuccess(func(mode string) {
				act.settle(state.Name(), mode)
				act.stash.UnstashAll(act.ctx)
			}).Run()
	})
	return b.MatchAny(func(msg any) {
		act.logger.Debug("door@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		act.stash.Stash(act.ctx, msg)
	}).Build()
}

// Closed state

type doorClosedState struct {
	actor *DoorActor
}

func (state doorClosedState) Name() string {
	return domain.DOOR_MODE_CLOSED
}

func (state doorClosedState) Receive() receive.Receive {
	act := state.actor
	b := receive.Match(receive.NewBuilder(), func(req domain.OpenDoorRequest) {
		act.logger.Debug("door@closed OpenDoorRequest")
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{})
		act.startTravel(domain.DOOR_MODE_OPEN)
	})
	b = receive.Match(b, func(req domain.CloseDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("door is already closed"),
			},
		})
	})
	b = receive.MatchWhen(b, func(req domain.LockDoorRequest) bool {
		return req.PIN == act.config.Door.PIN
	}, func(req domain.LockDoorRequest) {
		act.logger.Debug("door@closed LockDoorRequest")
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{})
		act.BecomeStacked(doorLockedState{actor: act})
		act.eventStream.Publish(events.DoorModeChangedEvent{
			From: domain.DOOR_MODE_CLOSED,
			To:   domain.DOOR_MODE_LOCKED,
		})
	})
	b = receive.Match(b, func(req domain.LockDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("wrong pin"),
			},
		})
	})
	b = b.MatchEquals("knock", func(any) {
		act.logger.Info("door@closed knock")
		if act.ctx.Sender() != nil {
			act.ctx.Respond("who's there?")
		}
	})
	return b.Build().OrElse(act.commonReceive(domain.DOOR_MODE_CLOSED))
}

// Open state

type doorOpenState struct {
	actor *DoorActor
}

func (state doorOpenState) Name() string {
	return domain.DOOR_MODE_OPEN
}

func (state doorOpenState) Receive() receive.Receive {
	act := state.actor
	b := receive.Match(receive.NewBuilder(), func(req domain.CloseDoorRequest) {
		act.logger.Debug("door@open CloseDoorRequest")
		if act.cancelAutoClose != nil {
			act.cancelAutoClose()
			act.cancelAutoClose = nil
		}
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{})
		act.startTravel(domain.DOOR_MODE_CLOSED)
	})
	b = receive.Match(b, func(req domain.OpenDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("door is already open"),
			},
		})
	})
	b = receive.Match(b, func(req domain.LockDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("close the door before locking"),
			},
		})
	})
	b = receive.Match(b, func(doorAutoCloseTick) {
		act.logger.Debug("door@open auto close")
		act.cancelAutoClose = nil
		act.startTravel(domain.DOOR_MODE_CLOSED)
	})
	return b.Build().OrElse(act.commonReceive(domain.DOOR_MODE_OPEN))
}

// Moving state: the drive is traveling, commands wait in the stash

type doorMovingState struct {
	actor  *DoorActor
	target string
}

func (state doorMovingState) Name() string {
	return domain.DOOR_MODE_MOVING
}

func (state doorMovingState) Receive() receive.Receive {
	act := state.actor
	specific := receive.Match(receive.NewBuilder(), func(done doorMotorDone) {
		act.logger.Debug("door@moving settled", zap.String("mode", done.mode))
		act.settle(domain.DOOR_MODE_MOVING, done.mode)
		act.stash.UnstashAll(act.ctx)
	}).Build()
	stashAll := receive.NewBuilder().MatchAny(func(msg any) {
		act.logger.Debug("door@moving stash", zap.String("type", fmt.Sprintf("%T", msg)))
		act.stash.Stash(act.ctx, msg)
	}).Build()
	return specific.
		OrElse(act.commonReceive(domain.DOOR_MODE_MOVING)).
		OrElse(stashAll)
}

// Locked state: stacked on top of closed, reverts with UnbecomeStacked

type doorLockedState struct {
	actor *DoorActor
}

func (state doorLockedState) Name() string {
	return domain.DOOR_MODE_LOCKED
}

func (state doorLockedState) Receive() receive.Receive {
	act := state.actor
	b := receive.MatchWhen(receive.NewBuilder(), func(req domain.UnlockDoorRequest) bool {
		return req.PIN == act.config.Door.PIN
	}, func(req domain.UnlockDoorRequest) {
		act.logger.Debug("door@locked UnlockDoorRequest")
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{})
		act.UnbecomeStacked()
		act.eventStream.Publish(events.DoorModeChangedEvent{
			From: domain.DOOR_MODE_LOCKED,
			To:   domain.DOOR_MODE_CLOSED,
		})
	})
	b = receive.Match(b, func(req domain.UnlockDoorRequest) {
		act.logger.Warn("door@locked wrong pin")
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("wrong pin"),
			},
		})
	})
	b = receive.Match(b, func(req domain.OpenDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("door is locked"),
			},
		})
	})
	b = receive.Match(b, func(req domain.CloseDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("door is locked"),
			},
		})
	})
	b = receive.Match(b, func(req domain.LockDoorRequest) {
		actorutil.ForRequest(req).Respond(act.ctx, domain.DoorCommandAck{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: errors.New("door is already locked"),
			},
		})
	})
	b = b.MatchEquals("knock", func(any) {
		act.logger.Info("door@locked knock")
		if act.ctx.Sender() != nil {
			act.ctx.Respond("go away")
		}
	})
	return b.Build().OrElse(act.commonReceive(domain.DOOR_MODE_LOCKED))
}
