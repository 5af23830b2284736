// Package service is the query/mutation façade over the record store.
// It validates input, applies one uniform error policy, and logs
// failures with context. Every mutation it issues runs inside a single
// store transaction; nothing is retried.
package service

import (
	"github.com/rs/zerolog"

	"taskpad/internal/model"
	"taskpad/internal/store"
)

// Service translates feature-level intents into store operations for
// one local user.
type Service struct {
	store store.Store
	user  *model.User
	log   zerolog.Logger
}

// New creates a Service bound to the given store handle and user. The
// store's lifecycle is owned by the caller.
func New(st store.Store, user *model.User, log zerolog.Logger) *Service {
	return &Service{store: st, user: user, log: log}
}

// User returns the owner all façade operations act for.
func (s *Service) User() *model.User {
	return s.user
}
