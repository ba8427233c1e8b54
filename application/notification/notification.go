package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/telecom-distribution/constant"
	"github.com/muhammadheryan/telecom-distribution/model"
	redisrepo "github.com/muhammadheryan/telecom-distribution/repository/redis"
	"github.com/muhammadheryan/telecom-distribution/utils/errors"
	"github.com/muhammadheryan/telecom-distribution/utils/i18n"
	"github.com/muhammadheryan/telecom-distribution/utils/logger"
	"go.uber.org/zap"
)

type NotificationApp interface {
	HandleRequestEvent(ctx context.Context, evt model.RequestEvent) error
	List(ctx context.Context, actor model.Principal) ([]model.Notification, error)
}

type notificationAppImpl struct {
	redisRepo redisrepo.Repository
}

func NewNotificationApp(redisRepo redisrepo.Repository) NotificationApp {
	return &notificationAppImpl{redisRepo: redisRepo}
}

// recipient is the party that must act on or learn about the event:
// the target for a new request, the requester for every outcome.
func recipient(evt model.RequestEvent) (uint64, bool) {
	switch evt.Type {
	case constant.EventRequestCreated:
		if evt.TargetID == nil {
			return 0, false
		}
		return *evt.TargetID, true
	case constant.EventRequestApproved, constant.EventRequestFulfilled, constant.EventRequestRejected:
		return evt.RequesterID, evt.RequesterID != 0
	}
	return 0, false
}

func (s *notificationAppImpl) HandleRequestEvent(ctx context.Context, evt model.RequestEvent) error {
	userID, ok := recipient(evt)
	if !ok {
		logger.Debug("[HandleRequestEvent] no recipient", zap.String("type", string(evt.Type)))
		return nil
	}

	lang := s.language(ctx, userID)
	n := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Event:     evt.Type,
		RequestID: evt.RequestID,
		OrderID:   evt.OrderID,
		Status:    evt.Status,
		Message:   message(evt, lang),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.redisRepo.PushNotification(ctx, n); err != nil {
		logger.Error("[HandleRequestEvent] err redisRepo.PushNotification", zap.String("error", err.Error()))
		return err
	}
	return nil
}

// language reads the recipient's saved preference, defaulting to English.
func (s *notificationAppImpl) language(ctx context.Context, userID uint64) string {
	prefs, err := s.redisRepo.GetPreferences(ctx, userID)
	if err != nil {
		logger.Warn("[HandleRequestEvent] err redisRepo.GetPreferences", zap.String("error", err.Error()))
		return i18n.English
	}
	if lang := prefs["language"]; i18n.Supported(lang) {
		return lang
	}
	return i18n.English
}

// message renders e.g. "ORD-1A2B3C4D: Approved (5 SIM)".
func message(evt model.RequestEvent, lang string) string {
	return fmt.Sprintf("%s: %s (%d %s)",
		evt.OrderID,
		i18n.T(string(evt.Status), lang),
		evt.Quantity,
		i18n.T(strings.ToLower(string(evt.ProductType)), lang),
	)
}

func (s *notificationAppImpl) List(ctx context.Context, actor model.Principal) ([]model.Notification, error) {
	res, err := s.redisRepo.ListNotifications(ctx, actor.ID, redisrepo.MaxNotifications)
	if err != nil {
		logger.Error("[ListNotifications] err redisRepo.ListNotifications", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return res, nil
}
