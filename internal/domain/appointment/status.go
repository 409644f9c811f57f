package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCanceled  Status = "canceled"
	StatusFinalized Status = "finalized"
)

var synonyms = map[string]Status{
	"scheduled":  StatusScheduled,
	"agendado":   StatusScheduled,
	"canceled":   StatusCanceled,
	"cancelled":  StatusCanceled,
	"cancelado":  StatusCanceled,
	"finalized":  StatusFinalized,
	"finalizado": StatusFinalized,
	"completed":  StatusFinalized,
	"concluido":  StatusFinalized,
	"concluído":  StatusFinalized,
}

// ParseStatus accepts the canonical names and the legacy synonyms older
// clients still send.
func ParseStatus(raw string) (Status, error) {
	s, ok := synonyms[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}
	return s, nil
}

// ===============================
// Transitions
// ===============================

// CanTransition allows scheduled -> canceled | finalized. Setting the
// current status again is a no-op, not an error.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if from == StatusScheduled && (to == StatusCanceled || to == StatusFinalized) {
		return nil
	}
	return httperr.ErrBusiness(httperr.CodeInvalidStatusTransition)
}

// EffectiveStatus is what every reader sees: a scheduled appointment whose
// time has come is finalized, whatever the stored row says.
func EffectiveStatus(stored Status, startsAt, now time.Time) Status {
	if stored == StatusScheduled && !startsAt.After(now) {
		return StatusFinalized
	}
	return stored
}

func InitialStatus() Status {
	return StatusScheduled
}
