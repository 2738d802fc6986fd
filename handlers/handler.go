package handlers

import (
	"net/http"

	"superapp-api/actions"
	"superapp-api/geocode"
	"superapp-api/middleware"
	"superapp-api/models"
	"superapp-api/roles"
	"superapp-api/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves the HTTP API on top of the store, the action service and
// the session router.
type Handler struct {
	store   *store.Store
	actions *actions.Service
	router  *roles.Router
	geo     geocode.Searcher
	tokens  *middleware.Tokens
	log     logrus.FieldLogger
}

func New(st *store.Store, svc *actions.Service, router *roles.Router, geo geocode.Searcher, tokens *middleware.Tokens, log logrus.FieldLogger) *Handler {
	return &Handler{
		store:   st,
		actions: svc,
		router:  router,
		geo:     geo,
		tokens:  tokens,
		log:     log,
	}
}

// caller loads the authenticated user and makes sure a router session
// exists for it. It writes the error response itself.
func (h *Handler) caller(c *gin.Context) (models.User, bool) {
	user, err := h.actions.User(middleware.GetUID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
		return models.User{}, false
	}
	if _, err := h.router.Ensure(user); err != nil {
		respondError(c, err)
		return models.User{}, false
	}
	return user, true
}

// allow checks that action is offered on the caller's current screen.
func (h *Handler) allow(c *gin.Context, user models.User, action roles.Action) bool {
	if err := h.router.Allow(user.UID, action, h.store.Snapshot()); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func (h *Handler) screen(c *gin.Context, uid string, status int) {
	sc, err := h.router.Render(uid, h.store.Snapshot())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, gin.H{"screen": sc})
}
