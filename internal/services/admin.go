package services

import (
	"context"
	"fmt"
	"time"

	"invy/internal/domain"
	"invy/internal/permissions"
)

const searchResultLimit = 10

type adminService struct {
	userRepo       domain.UserRepository
	eventRepo      domain.EventRepository
	rsvpRepo       domain.RSVPRepository
	logRepo        domain.LogRepository
	contextTimeout time.Duration
}

func NewAdminService(
	userRepo domain.UserRepository,
	eventRepo domain.EventRepository,
	rsvpRepo domain.RSVPRepository,
	logRepo domain.LogRepository,
	timeout time.Duration,
) domain.AdminService {
	return &adminService{
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		logRepo:        logRepo,
		contextTimeout: timeout,
	}
}

func (s *adminService) Overview(ctx context.Context, actor *domain.User) (*domain.Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	events, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	rsvps, err := s.rsvpRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rsvps: %w", err)
	}
	return &domain.Overview{
		TotalUsers:  users,
		TotalEvents: events,
		TotalRsvps:  rsvps,
	}, nil
}

func (s *adminService) Search(ctx context.Context, actor *domain.User, query string) (*domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.userRepo.SearchByEmail(ctx, query, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	events, err := s.eventRepo.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return &domain.SearchResult{Users: users, Events: events}, nil
}

func (s *adminService) ListUsers(ctx context.Context, actor *domain.User, p domain.PaginationParams) ([]*domain.User, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, 0, err
	}
	users, err := s.userRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

func (s *adminService) ListEvents(ctx context.Context, actor *domain.User, p domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, 0, err
	}
	events, err := s.eventRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

func (s *adminService) ListRsvps(ctx context.Context, actor *domain.User, p domain.PaginationParams) ([]*domain.RSVP, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, 0, err
	}
	rsvps, err := s.rsvpRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list rsvps: %w", err)
	}
	total, err := s.rsvpRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count rsvps: %w", err)
	}
	return rsvps, total, nil
}

func (s *adminService) Logs(ctx context.Context, actor *domain.User, limit int) (*domain.LogsPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := permissions.AssertSuperAdmin(actor); err != nil {
		return nil, err
	}
	errorLogs, err := s.logRepo.ListErrorLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list error logs: %w", err)
	}
	emailLogs, err := s.logRepo.ListEmailLogs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list email logs: %w", err)
	}
	return &domain.LogsPage{Errors: errorLogs, Emails: emailLogs}, nil
}
