package services

import (
	"context"
	"time"

	"shiftwatch/internal/events"
	"shiftwatch/internal/logger"
)

// RosterInvalidator drops cached department rosters.
type RosterInvalidator interface {
	InvalidateRoster(ctx context.Context, department string) error
}

// CacheInvalidationService evicts a department's cached roster whenever a
// schedule in it changes.
type CacheInvalidationService struct {
	eventBus    *events.EventBus
	rosters     RosterInvalidator
	unsubscribe func()
	log         logger.Logger
}

func NewCacheInvalidationService(
	eventBus *events.EventBus,
	rosters RosterInvalidator,
) *CacheInvalidationService {
	s := &CacheInvalidationService{
		eventBus: eventBus,
		rosters:  rosters,
		log:      logger.New("CacheInvalidationService"),
	}
	s.unsubscribe = eventBus.Subscribe(events.ChannelRoster, s.handle)
	return s
}

func (s *CacheInvalidationService) handle(event events.Event) {
	log := s.log.Function("handle")

	department, _ := event.Data["department"].(string)
	if event.Type != events.TypeScheduleUpdated || department == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.rosters.InvalidateRoster(ctx, department); err != nil {
		log.Er("failed to invalidate roster", err, "department", department)
		return
	}
	log.Debug("invalidated roster", "department", department)
}

func (s *CacheInvalidationService) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
