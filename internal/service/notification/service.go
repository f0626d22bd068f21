package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/emsuite/ems-backend-go/internal/domain/notification"
	"github.com/emsuite/ems-backend-go/internal/pkg/sse"
	"github.com/go-chi/jwtauth/v5"
)

type NotificationServiceImpl struct {
	notification.NotificationRepository
	hub *sse.Hub
}

func NewNotificationService(notificationRepository notification.NotificationRepository, hub *sse.Hub) notification.NotificationService {
	return &NotificationServiceImpl{
		NotificationRepository: notificationRepository,
		hub:                    hub,
	}
}

func toResponse(a notification.Announcement) notification.AnnouncementResponse {
	return notification.AnnouncementResponse{
		ID:         a.ID,
		Title:      a.Title,
		Body:       a.Body,
		CreatedBy:  a.CreatedBy,
		AuthorName: a.AuthorName,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// Create implements notification.NotificationService.
func (s *NotificationServiceImpl) Create(ctx context.Context, req notification.CreateAnnouncementRequest) (notification.AnnouncementResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return notification.AnnouncementResponse{}, fmt.Errorf("failed to get claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return notification.AnnouncementResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	created, err := s.NotificationRepository.Create(ctx, notification.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: userID,
	})
	if err != nil {
		return notification.AnnouncementResponse{}, err
	}

	resp := toResponse(created)
	s.hub.Publish(sse.TopicAnnouncements, "announcement", resp)

	return resp, nil
}

// List implements notification.NotificationService.
func (s *NotificationServiceImpl) List(ctx context.Context, limit int) ([]notification.AnnouncementResponse, error) {
	announcements, err := s.NotificationRepository.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, toResponse(a))
	}

	return responses, nil
}

// Delete implements notification.NotificationService.
func (s *NotificationServiceImpl) Delete(ctx context.Context, id string) error {
	return s.NotificationRepository.Delete(ctx, id)
}
