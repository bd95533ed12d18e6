package server

import (
	"net/http"
	"time"

	"github.com/berfenger/beckon/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	if s.httpLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.GET("/healthcheck", s.HealthCheckHandler)
	e.GET("/door", s.DoorStateHandler)
	e.POST("/door/open", s.DoorCommandHandler(func(pinRequest) any {
		return domain.OpenDoorRequest{}
	}))
	e.POST("/door/close", s.DoorCommandHandler(func(pinRequest) any {
		return domain.CloseDoorRequest{}
	}))
	e.POST("/door/lock", s.DoorCommandHandler(func(body pinRequest) any {
		return domain.LockDoorRequest{PIN: body.PIN}
	}))
	e.POST("/door/unlock", s.DoorCommandHandler(func(body pinRequest) any {
		return domain.UnlockDoorRequest{PIN: body.PIN}
	}))

	return e
}

type pinRequest struct {
	PIN string `json:"pin"`
}

type doorStateResponse struct {
	Mode string `json:"mode"`
}

type doorCommandResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Server) HealthCheckHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
	}
	if response, ok := res.(domain.ActorHealthResponse); ok && response.Healthy {
		return c.String(http.StatusOK, "health_check: OK")
	}
	return c.String(http.StatusServiceUnavailable, "health_check: FAIL")
}

func (s *Server) DoorStateHandler(c echo.Context) error {
	res, err := s.rootContext.RequestFuture(s.masterActor, domain.DoorStateRequest{}, 10*time.Second).Result()
	if err != nil {
		return c.String(http.StatusServiceUnavailable, "door state: FAIL")
	}
	if response, ok := res.(domain.DoorStateResponse); ok {
		return c.JSON(http.StatusOK, doorStateResponse{Mode: response.Mode})
	}
	return c.String(http.StatusServiceUnavailable, "door state: FAIL")
}

func (s *Server) DoorCommandHandler(toRequest func(pinRequest) any) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body pinRequest
		// pin is optional for open/close
		_ = c.Bind(&body)

		res, err := s.rootContext.RequestFuture(s.masterActor, toRequest(body), 10*time.Second).Result()
		if err != nil {
			return c.String(http.StatusServiceUnavailable, "door command: FAIL")
		}
		ack, ok := res.(domain.DoorCommandAck)
		if !ok {
			return c.String(http.StatusServiceUnavailable, "door command: FAIL")
		}
		if ack.HasResponseError() {
			return c.JSON(http.StatusConflict, doorCommandResponse{
				OK:    false,
				Error: ack.GetResponseError().Error(),
			})
		}
		return c.JSON(http.StatusOK, doorCommandResponse{OK: true})
	}
}
