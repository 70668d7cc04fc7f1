package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unihaven/backend/internal/domain/ad"
	"github.com/unihaven/backend/internal/domain/advertiser"
	"github.com/unihaven/backend/internal/domain/notifier"
	"github.com/unihaven/backend/internal/domain/user"
	idb "github.com/unihaven/backend/internal/infra/database"
	"github.com/unihaven/backend/internal/infra/email"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Reconciler runs one reconciliation pass: lifting elapsed suspensions,
// expiring ads past their end date and sending expiring-soon reminders.
type Reconciler interface {
	RunPass(ctx context.Context) (*PassSummary, error)
}

// AdRef identifies an ad acted upon during a pass.
type AdRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// PassSummary lists what one pass changed. Every run re-derives its work
// set from stored data, so the summary is complete for that pass only.
type PassSummary struct {
	Unsuspended  int
	Expired      []AdRef
	ExpiringSoon []AdRef
}

type ReconcilerService struct {
	userRepo         user.Repository
	adRepo           ad.Repository
	advertiserRepo   advertiser.Repository
	sender           notifier.Sender
	templates        *email.Templates
	logger           *logrus.Logger
	reminderWindow   time.Duration
	reminderThrottle time.Duration
	now              func() time.Time
}

func NewReconcilerService(
	ur user.Repository,
	ar ad.Repository,
	advr advertiser.Repository,
	sender notifier.Sender,
	templates *email.Templates,
	logger *logrus.Logger,
	reminderWindow, reminderThrottle time.Duration,
) *ReconcilerService {
	if reminderWindow <= 0 {
		reminderWindow = ad.DefaultReminderWindow
	}
	if reminderThrottle <= 0 {
		reminderThrottle = ad.DefaultReminderThrottle
	}
	return &ReconcilerService{
		userRepo:         ur,
		adRepo:           ar,
		advertiserRepo:   advr,
		sender:           sender,
		templates:        templates,
		logger:           logger,
		reminderWindow:   reminderWindow,
		reminderThrottle: reminderThrottle,
		now:              time.Now,
	}
}

// RunPass executes the suspension-lift sub-pass and then the ad
// sub-pass. A data-access failure aborts only the sub-pass it occurred
// in; the next scheduled run retries naturally. Notification failures
// never abort anything.
func (s *ReconcilerService) RunPass(ctx context.Context) (*PassSummary, error) {
	now := s.now()
	summary := &PassSummary{Expired: []AdRef{}, ExpiringSoon: []AdRef{}}

	suspErr := s.liftDueSuspensions(ctx, now, summary)
	if suspErr != nil {
		s.logger.WithError(suspErr).Error("Suspension-lift sub-pass aborted")
	}

	adErr := s.processAds(ctx, now, summary)
	if adErr != nil {
		s.logger.WithError(adErr).Error("Ad sub-pass aborted")
	}

	s.logger.WithFields(logrus.Fields{
		"unsuspended":   summary.Unsuspended,
		"expired":       len(summary.Expired),
		"expiring_soon": len(summary.ExpiringSoon),
	}).Info("Reconciliation pass complete")

	return summary, errors.Join(suspErr, adErr)
}

func (s *ReconcilerService) liftDueSuspensions(ctx context.Context, now time.Time, summary *PassSummary) error {
	due, err := s.userRepo.ListSuspensionsDue(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list due suspensions: %w", err)
	}

	for _, u := range due {
		lifted, err := s.userRepo.LiftSuspension(ctx, u.ID, now)
		if err != nil {
			if errors.Is(err, idb.ErrUserNotFound) {
				// Deleted or already unsuspended since the read.
				s.logger.WithField("user_id", u.ID).Debug("Suspension lift skipped, no matching row")
				continue
			}
			return fmt.Errorf("failed to lift suspension for user %s: %w", u.ID, err)
		}
		summary.Unsuspended++
		s.logger.WithFields(logrus.Fields{"user_id": lifted.ID, "email": lifted.Email}).Info("Suspension lifted")

		msg, err := s.templates.WelcomeBack(lifted.DisplayName())
		if err != nil {
			s.logger.WithError(err).WithField("user_id", lifted.ID).Warn("Could not render welcome-back email")
			continue
		}
		if err := s.sender.Send(ctx, lifted.Email, msg.Subject, lifted.DisplayName(), msg.HTML); err != nil {
			// Best-effort: the state change is already committed.
			s.logger.WithError(err).WithField("user_id", lifted.ID).Warn("Failed to send welcome-back email")
		}
	}
	return nil
}

func (s *ReconcilerService) processAds(ctx context.Context, now time.Time, summary *PassSummary) error {
	candidates, err := s.adRepo.ListActiveEndingBy(ctx, now.Add(s.reminderWindow))
	if err != nil {
		return fmt.Errorf("failed to list ads nearing expiry: %w", err)
	}

	for _, a := range candidates {
		switch ad.Evaluate(a, now, s.reminderWindow, s.reminderThrottle) {
		case ad.DecisionExpire:
			expired, err := s.adRepo.MarkExpired(ctx, a.ID, now)
			if err != nil {
				if errors.Is(err, idb.ErrAdNotFound) {
					continue // deleted or raced with another pass
				}
				return fmt.Errorf("failed to expire ad %s: %w", a.ID, err)
			}
			summary.Expired = append(summary.Expired, AdRef{ID: expired.ID, Title: expired.Title})
			s.logger.WithFields(logrus.Fields{"ad_id": expired.ID, "title": expired.Title}).Info("Ad expired")
			s.notifyAdvertiser(ctx, expired, s.templates.AdExpired)

		case ad.DecisionRemind:
			reminded, err := s.adRepo.MarkReminderSent(ctx, a.ID, now, s.reminderThrottle)
			if err != nil {
				if errors.Is(err, idb.ErrAdNotFound) {
					continue
				}
				return fmt.Errorf("failed to mark reminder for ad %s: %w", a.ID, err)
			}
			summary.ExpiringSoon = append(summary.ExpiringSoon, AdRef{ID: reminded.ID, Title: reminded.Title})
			s.logger.WithFields(logrus.Fields{"ad_id": reminded.ID, "title": reminded.Title}).Info("Ad expiring soon, reminder due")
			s.notifyAdvertiser(ctx, reminded, s.templates.AdExpiringSoon)
		}
	}
	return nil
}

// notifyAdvertiser resolves the owning advertiser and sends the rendered
// notification. A missing advertiser or missing email suppresses the
// notification for that ad only.
func (s *ReconcilerService) notifyAdvertiser(ctx context.Context, a *ad.Ad, render func(name, title string) (email.Message, error)) {
	adv, err := s.advertiserRepo.GetByID(ctx, a.AdvertiserID)
	if err != nil {
		if errors.Is(err, idb.ErrAdvertiserNotFound) {
			s.logger.WithField("ad_id", a.ID).Warn("Advertiser missing, notification suppressed")
			return
		}
		s.logger.WithError(err).WithField("ad_id", a.ID).Warn("Could not resolve advertiser, notification suppressed")
		return
	}
	if !adv.Email.Valid || adv.Email.String == "" {
		s.logger.WithFields(logrus.Fields{"ad_id": a.ID, "advertiser_id": adv.ID}).Warn("Advertiser has no email, notification suppressed")
		return
	}

	name := adv.BusinessName
	if name == "" {
		name = "Advertiser"
	}
	msg, err := render(name, a.Title)
	if err != nil {
		s.logger.WithError(err).WithField("ad_id", a.ID).Warn("Could not render ad notification")
		return
	}
	if err := s.sender.Send(ctx, adv.Email.String, msg.Subject, name, msg.HTML); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"ad_id": a.ID, "to": adv.Email.String}).Warn("Failed to send ad notification")
	}
}
