package announcementController

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"shiftwatch/config"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/repositories"
	"shiftwatch/internal/services"
	"shiftwatch/internal/utils"
)

type AnnouncementController struct {
	transactionService *services.TransactionService
	announcementRepo   repositories.AnnouncementRepository
	Config             config.Config
	now                func() time.Time
	log                logger.Logger
}

func New(
	transactionService *services.TransactionService,
	announcementRepo repositories.AnnouncementRepository,
	config config.Config,
) *AnnouncementController {
	return &AnnouncementController{
		transactionService: transactionService,
		announcementRepo:   announcementRepo,
		Config:             config,
		now:                time.Now,
		log:                logger.New("AnnouncementController"),
	}
}

func (c *AnnouncementController) WithClock(now func() time.Time) *AnnouncementController {
	c.now = now
	return c
}

func (c *AnnouncementController) List(ctx context.Context) ([]*Announcement, error) {
	return c.announcementRepo.GetAll(ctx)
}

// build validates a request. Unreadable or missing dates become today.
func (c *AnnouncementController) build(request AnnouncementRequest) (*Announcement, error) {
	switch {
	case strings.TrimSpace(request.Title) == "":
		return nil, fmt.Errorf("%w: missing required field: title", ErrValidation)
	case strings.TrimSpace(request.Content) == "":
		return nil, fmt.Errorf("%w: missing required field: content", ErrValidation)
	case !slices.Contains(AnnouncementTypes, request.Type):
		return nil, fmt.Errorf("%w: type must be one of %s", ErrValidation, strings.Join(AnnouncementTypes, ", "))
	}

	return &Announcement{
		Title:   strings.TrimSpace(request.Title),
		Content: request.Content,
		Type:    request.Type,
		Date:    utils.NormalizeDateOr(request.Date, c.now().In(c.Config.Location())),
	}, nil
}

func (c *AnnouncementController) Create(ctx context.Context, request AnnouncementRequest) (*Announcement, error) {
	log := c.log.Function("Create")

	announcement, err := c.build(request)
	if err != nil {
		return nil, log.Err("invalid announcement", err)
	}

	if err := c.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (c *AnnouncementController) Delete(ctx context.Context, id int) error {
	return c.announcementRepo.Delete(ctx, id)
}

// Replace swaps the whole board for requests in one transaction.
func (c *AnnouncementController) Replace(ctx context.Context, requests []AnnouncementRequest) ([]*Announcement, error) {
	log := c.log.Function("Replace")

	announcements := make([]*Announcement, 0, len(requests))
	for i, request := range requests {
		announcement, err := c.build(request)
		if err != nil {
			return nil, log.Err("invalid announcement", err, "index", i)
		}
		announcements = append(announcements, announcement)
	}

	err := c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := c.announcementRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		for _, announcement := range announcements {
			if err := c.announcementRepo.Create(txCtx, announcement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to replace announcements", err)
	}

	return c.announcementRepo.GetAll(ctx)
}
