package http

import (
	"net/http"
	"strings"

	"mfgorders/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorRole  = "X-Actor-Role"
	HeaderActorEmail = "X-Actor-Email"
	HeaderActorParty = "X-Actor-Party"

	actorKey = "actor"
)

// ActorFromHeaders resolves the caller from the headers set by the session
// gateway. Requests without a valid actor are rejected with 401.
func ActorFromHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := parseActor(c.Request().Header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "actor headers are missing or invalid",
				})
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func parseActor(h http.Header) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(strings.TrimSpace(h.Get(HeaderActorID)))
	if err != nil {
		return kernel.Actor{}, err
	}
	role, err := kernel.ParseRole(strings.TrimSpace(h.Get(HeaderActorRole)))
	if err != nil {
		return kernel.Actor{}, err
	}
	party, err := kernel.OptionalUUIDFromString(strings.TrimSpace(h.Get(HeaderActorParty)))
	if err != nil {
		return kernel.Actor{}, err
	}
	return kernel.NewActor(id, role, strings.TrimSpace(h.Get(HeaderActorEmail)), party)
}

func actorOf(c echo.Context) kernel.Actor {
	a, _ := c.Get(actorKey).(kernel.Actor)
	return a
}
