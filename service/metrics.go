package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pokeelite_backend/model"
)

var (
	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeelite_registrations_total",
		Help: "Account registrations by outcome",
	}, []string{"outcome"})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeelite_logins_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})

	charactersProvisioned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeelite_characters_provisioned_total",
		Help: "Character creations by outcome",
	}, []string{"outcome"})

	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeelite_tokens_issued_total",
		Help: "Session tokens issued",
	})

	tokensRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeelite_tokens_rejected_total",
		Help: "Requests rejected by the authorization guard",
	}, []string{"reason"})
)

// outcome reduces an error to a low cardinality label.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if isUserError(err) {
		return "rejected"
	}
	return "error"
}

var userErrors = []error{
	model.ErrDuplicateIdentity,
	model.ErrNameTaken,
	model.ErrCharacterLimitReached,
	model.ErrInvalidCredentials,
	model.ErrNotFoundOrNotOwned,
	model.ErrNotFound,
	model.ErrUnauthorized,
	model.ErrForbidden,
	model.ErrInvalidCategory,
}

func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
