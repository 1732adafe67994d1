// Package status implements the reservation status lifecycle.
package status

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

var (
	// ErrReasonRequired is returned when a transition that needs a reason has none.
	ErrReasonRequired = fmt.Errorf("%w: reason is required", domain.ErrInvalidTransition)

	// ErrActorRequired is returned when the actor performing the change is empty.
	ErrActorRequired = errors.New("status: actor is required")
)

// TimeProvider source of the current time
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider wall clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// rule an allowed target state and whether it needs a reason
type rule struct {
	to             domain.ReservationStatus
	reasonRequired bool
}

// Machine validates and applies reservation status transitions
type Machine struct {
	transitions map[domain.ReservationStatus][]rule
	clock       TimeProvider
}

// NewMachine creates a machine with the salon transition table
func NewMachine(clock TimeProvider) *Machine {
	if clock == nil {
		clock = &RealTimeProvider{}
	}
	return &Machine{
		transitions: map[domain.ReservationStatus][]rule{
			domain.StatusPending: {
				{to: domain.StatusConfirmed},
				{to: domain.StatusCancelled, reasonRequired: true},
			},
			domain.StatusConfirmed: {
				{to: domain.StatusCompleted},
				{to: domain.StatusCancelled, reasonRequired: true},
				{to: domain.StatusNoShow, reasonRequired: true},
			},
			domain.StatusCancelled: {
				{to: domain.StatusConfirmed},
			},
		},
		clock: clock,
	}
}

// Request a requested status change
type Request struct {
	To     domain.ReservationStatus
	Actor  string
	Reason *string
}

// CanTransition reports whether from -> to is in the table
func (m *Machine) CanTransition(from, to domain.ReservationStatus) bool {
	_, ok := m.find(from, to)
	return ok
}

// RequiresReason reports whether from -> to needs a reason
func (m *Machine) RequiresReason(from, to domain.ReservationStatus) bool {
	r, ok := m.find(from, to)
	return ok && r.reasonRequired
}

// AllowedTransitions returns the statuses reachable from from, in table order
func (m *Machine) AllowedTransitions(from domain.ReservationStatus) []domain.ReservationStatus {
	rules := m.transitions[from]
	result := make([]domain.ReservationStatus, 0, len(rules))
	for _, r := range rules {
		result = append(result, r.to)
	}
	return result
}

// Transition applies req to reservation. It returns the updated copy together with the
// history record to append. On failure the input is left untouched.
func (m *Machine) Transition(reservation domain.Reservation, req Request) (domain.Reservation, domain.StatusHistory, error) {
	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		return reservation, domain.StatusHistory{}, ErrActorRequired
	}

	from := reservation.Status
	r, ok := m.find(from, req.To)
	if !ok {
		return reservation, domain.StatusHistory{}, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, req.To)
	}

	var reason *string
	if req.Reason != nil {
		if trimmed := strings.TrimSpace(*req.Reason); trimmed != "" {
			reason = &trimmed
		}
	}
	if r.reasonRequired && reason == nil {
		return reservation, domain.StatusHistory{}, fmt.Errorf("%w: %s -> %s", ErrReasonRequired, from, req.To)
	}

	now := m.clock.Now()
	record := domain.StatusHistory{
		ReservationID: reservation.ID,
		OldStatus:     from,
		NewStatus:     req.To,
		ChangedBy:     actor,
		ChangedAt:     now,
		Reason:        reason,
	}

	updated := reservation
	updated.Status = req.To
	updated.StatusUpdatedAt = &now
	updated.StatusUpdatedBy = &actor
	updated.UpdatedAt = now
	updated.History = append(append(make([]domain.StatusHistory, 0, len(reservation.History)+1), reservation.History...), record)

	return updated, record, nil
}

func (m *Machine) find(from, to domain.ReservationStatus) (rule, bool) {
	for _, r := range m.transitions[from] {
		if r.to == to {
			return r, true
		}
	}
	return rule{}, false
}
