package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	UserIDHeader = "X-User-Id"
	ShopIDHeader = "X-Shop-Id"
	actorKey     = "actor"
)

type UserResolver interface {
	Resolve(ctx context.Context, raw string) (*domain.User, error)
}

// Actor resolves X-User-Id (and the optional X-Shop-Id scope) before any
// refund or dispute handler runs.
func Actor(users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if strings.TrimSpace(raw) == "" {
			abort(c, http.StatusBadRequest, "X-User-Id header is required")
			return
		}
		user, err := users.Resolve(c.Request.Context(), raw)
		switch {
		case errors.Is(err, domain.ErrInvalidActor):
			abort(c, http.StatusBadRequest, err.Error())
			return
		case errors.Is(err, domain.ErrActorNotFound):
			abort(c, http.StatusNotFound, err.Error())
			return
		case err != nil:
			c.Error(err)
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}

		actor := &domain.Actor{User: user}
		if rawShop := strings.TrimSpace(c.GetHeader(ShopIDHeader)); rawShop != "" {
			shopID, err := strconv.ParseInt(domain.StripQuotes(rawShop), 10, 64)
			if err != nil || shopID <= 0 {
				abort(c, http.StatusBadRequest, fmt.Sprintf("invalid X-Shop-Id %q", rawShop))
				return
			}
			actor.ShopID = &shopID
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func GetActor(c *gin.Context) (*domain.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil, false
	}
	actor, ok := v.(*domain.Actor)
	return actor, ok
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
