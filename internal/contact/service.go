package contact

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Store persists submissions. Insert is the only operation; stored
// records are never read back, updated, or deleted by this service.
type Store interface {
	SaveSubmission(ctx context.Context, sub *Submission) (string, error)
}

// Notifier delivers the notification email for a stored submission.
type Notifier interface {
	Send(ctx context.Context, sub *Submission) error
}

// Service runs the submission pipeline: validate, persist, notify.
// Each step executes sequentially; a failed step stops the pipeline.
type Service struct {
	store    Store
	notifier Notifier
	log      *zerolog.Logger
	now      func() time.Time
}

// NewService wires the pipeline with its collaborators.
func NewService(store Store, notifier Notifier, logger *zerolog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		log:      logger,
		now:      time.Now,
	}
}

// Submit processes one contact-form entry and returns the stored record's
// opaque id. Error taxonomy: *ValidationError means nothing happened;
// *StoreError means nothing was stored; *MailError means the record is
// stored but the notification was not delivered. Notification failure is
// not retried and the stored record is not rolled back.
func (s *Service) Submit(ctx context.Context, in Input) (string, error) {
	sub, err := in.Validate(s.now())
	if err != nil {
		return "", err
	}

	id, err := s.store.SaveSubmission(ctx, sub)
	if err != nil {
		return "", &StoreError{Err: err}
	}

	if err := s.notifier.Send(ctx, sub); err != nil {
		s.log.Error().Err(err).Str("submission_id", id).Msg("notification failed for stored submission")
		return id, &MailError{Err: err}
	}

	s.log.Info().Str("submission_id", id).Msg("submission processed")
	return id, nil
}
