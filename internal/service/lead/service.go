package lead

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jmehdipour/lead-gateway/internal/message"
	"github.com/jmehdipour/lead-gateway/internal/metrics"
	"github.com/jmehdipour/lead-gateway/internal/model"
	"github.com/jmehdipour/lead-gateway/internal/validation"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Sender

// Sender is implemented by *dispatcher.Dispatcher.
type Sender interface {
	Provider() model.Provider
	Send(ctx context.Context, text string) (model.Dispatch, error)
}

type Result struct {
	Lead     model.Lead
	Dispatch model.Dispatch
}

// Service runs validate -> normalize -> format -> dispatch for one submission at a time.
// It keeps no state between calls.
type Service struct {
	validator *validation.Validator
	sender    Sender
	loc       *time.Location
	log       *zap.Logger
}

// New constructs the lead service. loc is the zone used for the message timestamp.
func New(v *validation.Validator, sender Sender, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{validator: v, sender: sender, loc: loc, log: log}
}

// Provider reports which provider Submit dispatches through.
func (s *Service) Provider() model.Provider { return s.sender.Provider() }

// Preview validates and formats without sending.
// Validation failures come back as model.FieldErrors.
func (s *Service) Preview(sub model.Submission) (model.Lead, string, error) {
	l, err := s.validator.Normalize(sub)
	if err != nil {
		return model.Lead{}, "", err
	}
	return l, message.Format(l, s.loc), nil
}

// Submit sends the formatted lead through the configured provider.
// Errors are model.FieldErrors, *dispatcher.ConfigError or *dispatcher.ExternalError.
func (s *Service) Submit(ctx context.Context, sub model.Submission) (Result, error) {
	l, text, err := s.Preview(sub)
	if err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			metrics.SubmissionsTotal.WithLabelValues("invalid").Inc()
			s.log.Info("lead rejected", zap.Strings("fields", fieldErrs.Fields()))
		}
		return Result{}, err
	}

	d, err := s.sender.Send(ctx, text)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		s.log.Error("lead dispatch failed",
			zap.String("lead_id", l.ID),
			zap.String("provider", s.sender.Provider().String()),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("dispatch lead %s: %w", l.ID, err)
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	s.log.Info("lead dispatched",
		zap.String("lead_id", l.ID),
		zap.String("provider", d.Provider.String()),
		zap.String("message_id", d.MessageID),
	)

	return Result{Lead: l, Dispatch: d}, nil
}
