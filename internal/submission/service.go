package submission

import (
	"context"
	"time"

	"github.com/credlane/credlane/internal/ids"
	"github.com/credlane/credlane/internal/notification"
	"github.com/credlane/credlane/internal/user"
)

// Service applies the ownership and role rules on top of a Store. Every
// operation requires an authenticated caller; the caller's identity comes
// from the verified session, never from the request payload.
type Service struct {
	store    Store
	notifier notification.Notifier
}

// NewService builds a submission service. notifier may be nil.
func NewService(store Store, notifier notification.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Append stores a new application for the authenticated owner. The record's
// id, timestamp, status and ownership are stamped here: status always starts
// pending and the owner snapshot comes from the caller, regardless of
// anything the client sent.
func (s *Service) Append(ctx context.Context, payload Payload, owner user.User) (Submission, error) {
	if owner.ID == "" {
		return Submission{}, ErrUnauthenticated
	}

	record := Submission{
		ID:          ids.NewNumeric(),
		SubmittedAt: time.Now().UTC(),
		Status:      StatusPending,
		OwnerUserID: owner.ID,
		OwnerEmail:  owner.Email,
		Payload:     payload,
	}
	if err := s.store.Append(ctx, record); err != nil {
		return Submission{}, err
	}

	s.notify(ctx, notification.KindSubmissionReceived, record)
	return record, nil
}

// List returns the submissions visible to the caller: administrators see the
// whole collection in creation order, everyone else sees only their own.
func (s *Service) List(ctx context.Context, caller user.User) ([]Submission, error) {
	if caller.ID == "" {
		return nil, ErrUnauthenticated
	}
	if caller.IsAdmin() {
		return s.store.All(ctx)
	}
	return s.store.ByOwner(ctx, caller.ID)
}

// GetByID fetches one submission. A caller who is neither the owner nor an
// administrator gets ErrNotFound, so the response does not confirm the id
// exists.
func (s *Service) GetByID(ctx context.Context, id string, caller user.User) (Submission, error) {
	if caller.ID == "" {
		return Submission{}, ErrUnauthenticated
	}
	record, err := s.store.ByID(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	if !caller.IsAdmin() && record.OwnerUserID != caller.ID {
		return Submission{}, ErrNotFound
	}
	return record, nil
}

// UpdateStatus moves a submission to a new review state. Administrators
// only; the status must be one of the known states.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status, caller user.User) (Submission, error) {
	if caller.ID == "" {
		return Submission{}, ErrUnauthenticated
	}
	if !caller.IsAdmin() {
		return Submission{}, ErrForbidden
	}
	if !ValidStatus(status) {
		return Submission{}, ErrInvalidStatus
	}

	record, err := s.store.SetStatus(ctx, id, status)
	if err != nil {
		return Submission{}, err
	}

	s.notify(ctx, notification.KindSubmissionStatus, record)
	return record, nil
}

func (s *Service) notify(ctx context.Context, kind string, record Submission) {
	if s.notifier == nil {
		return
	}
	// Delivery is best effort and never fails the request.
	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        kind,
		Destination: record.OwnerEmail,
		Body:        "submission " + record.ID + " is " + string(record.Status),
	})
}
