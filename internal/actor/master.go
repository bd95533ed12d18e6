package actor

import (
	"fmt"
	"time"

	"github.com/berfenger/beckon/internal/config"
	"github.com/berfenger/beckon/internal/domain"
	"github.com/berfenger/beckon/internal/events"
	"github.com/berfenger/beckon/internal/util/actorutil"
	"github.com/berfenger/beckon/pkg/receive"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

type DoorActorProvider func(*eventstream.EventStream) *DoorActor

// MasterActor owns the door child. It answers health checks by probing the
// child and forwards every other domain request to it.
type MasterActor struct {
	actorutil.ActorWithStates
	config       config.Config
	stash        *actorutil.Stash
	doorProvider DoorActorProvider
	doorActor    *actor.PID
	eventStream  *eventstream.EventStream

	currentHealthCheck healthCheckResult

	ctx    actor.Context
	logger *zap.Logger
}

type healthCheckResult struct {
	respondTo *actor.PID
}

func NewMasterActor(config config.Config, doorProvider DoorActorProvider, logger *zap.Logger) *MasterActor {
	act := &MasterActor{
		ActorWithStates: actorutil.NewActorWithStates(),
		config:          config,
		stash:           &actorutil.Stash{},
		doorProvider:    doorProvider,
		eventStream:     &eventstream.EventStream{},
		logger:          actorutil.ActorLogger(domain.ACTOR_ID_MASTER, logger),
	}
	act.Become(masterStartingState{actor: act})
	return act
}

func (state *MasterActor) Receive(ctx actor.Context) {
	state.ctx = ctx
	if !state.Dispatch(ctx) {
		state.logger.Debug("unhandled message", zap.String("type", fmt.Sprintf("%T", ctx.Message())))
	}
}

func (act *MasterActor) startDoorActor(ctx actor.Context) (*actor.PID, error) {
	props := actor.PropsFromProducer(func() actor.Actor {
		return act.doorProvider(act.eventStream)
	})
	return ctx.SpawnNamed(props, domain.ACTOR_ID_DOOR)
}

// Starting state

type masterStartingState struct {
	actor *MasterActor
}

func (state masterStartingState) Name() string {
	return "starting"
}

func (state masterStartingState) Receive() receive.Receive {
	act := state.actor
	b := receive.Match(receive.NewBuilder(), func(*actor.Started) {
		act.logger.Debug("master@starting started")

		act.eventStream.Subscribe(func(evt any) {
			if changed, ok := evt.(events.DoorModeChangedEvent); ok {
				act.logger.Info("door mode changed",
					zap.String("from", changed.From), zap.String("to", changed.To))
			}
		})

		doorActorPID, err := act.startDoorActor(act.ctx)
		if err != nil {
			panic(err)
		}
		act.doorActor = doorActorPID

		act.eventStream.Publish(events.NewServiceInfoEvent(domain.ACTOR_ID_MASTER))

		act.Become(masterRunningState{actor: act})
		act.stash.UnstashAll(act.ctx)
	})
	return b.MatchAny(func(msg any) {
		act.logger.Debug("master@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		act.stash.Stash(act.ctx, msg)
	}).Build()
}

// Running state

type masterRunningState struct {
	actor *MasterActor
}

func (state masterRunningState) Name() string {
	return "running"
}

func (state masterRunningState) Receive() receive.Receive {
	act := state.actor
	b := receive.Match(receive.NewBuilder(), func(req domain.ActorHealthRequest) {
		act.logger.Debug("master@running ActorHealthRequest")
		act.currentHealthCheck.respondTo = actorutil.ForRequest(req).ReplyTo(act.ctx)
		actorutil.PipeToSelfWithRecover(act.ctx,
			act.ctx.RequestFuture(act.doorActor, domain.ActorHealthRequest{}, 500*time.Millisecond),
			func(err error) any {
				return domain.ActorHealthResponse{
					Id:      domain.ACTOR_ID_DOOR,
					Healthy: false,
				}
			})
	})
	b = receive.Match(b, func(resp domain.ActorHealthResponse) {
		act.logger.Debug("master@running ActorHealthResponse",
			zap.String("id", resp.Id), zap.Bool("healthy", resp.Healthy))
		if act.currentHealthCheck.respondTo != nil {
			act.ctx.Send(act.currentHealthCheck.respondTo, domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MASTER,
				Healthy: resp.Healthy,
			})
			act.currentHealthCheck = healthCheckResult{}
		}
	})
	// any other domain request belongs to the door. The health clauses above
	// shadow this one for their own types: first clause wins.
	b = receive.Match(b, func(req domain.ActorRequest) {
		act.logger.Debug("master@running forward", zap.String("type", fmt.Sprintf("%T", req)))
		act.ctx.Forward(act.doorActor)
	})
	b = b.MatchEquals("knock", func(any) {
		act.ctx.Forward(act.doorActor)
	})
	return b.Build()
}
