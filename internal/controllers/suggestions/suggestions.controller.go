package suggestionController

import (
	"context"
	"fmt"

	"shiftwatch/config"
	insightsController "shiftwatch/internal/controllers/insights"
	"shiftwatch/internal/engine"
	"shiftwatch/internal/events"
	"shiftwatch/internal/logger"
	. "shiftwatch/internal/models"
	"shiftwatch/internal/repositories"
	"shiftwatch/internal/services"
)

type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeCoverage Scope = "coverage"
	ScopeBurnout  Scope = "burnout"
)

func ParseScope(s string) (Scope, error) {
	switch scope := Scope(s); scope {
	case "":
		return ScopeAll, nil
	case ScopeAll, ScopeCoverage, ScopeBurnout:
		return scope, nil
	}
	return "", fmt.Errorf("%w: unknown scope %q", ErrValidation, s)
}

// SnapshotSource supplies the roster and time off the generators run on.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (insightsController.Snapshot, error)
}

type SuggestionController struct {
	transactionService *services.TransactionService
	suggestionRepo     repositories.SuggestionRepository
	taskRepo           repositories.TaskRepository
	snapshots          SnapshotSource
	eventBus           *events.EventBus
	locks              *services.KeyedMutex
	Config             config.Config
	log                logger.Logger
}

func New(
	transactionService *services.TransactionService,
	suggestionRepo repositories.SuggestionRepository,
	taskRepo repositories.TaskRepository,
	snapshots SnapshotSource,
	eventBus *events.EventBus,
	config config.Config,
) *SuggestionController {
	return &SuggestionController{
		transactionService: transactionService,
		suggestionRepo:     suggestionRepo,
		taskRepo:           taskRepo,
		snapshots:          snapshots,
		eventBus:           eventBus,
		locks:              services.NewKeyedMutex(),
		Config:             config,
		log:                logger.New("SuggestionController"),
	}
}

func (c *SuggestionController) List(ctx context.Context, status string) ([]*Suggestion, error) {
	log := c.log.Function("List")

	var filter SuggestionStatus
	if status != "" {
		parsed, err := ParseSuggestionStatus(status)
		if err != nil {
			return nil, log.Err("invalid status filter", err)
		}
		filter = parsed
	}

	return c.suggestionRepo.List(ctx, filter)
}

func (c *SuggestionController) Get(ctx context.Context, id string) (*Suggestion, error) {
	return c.suggestionRepo.GetByID(ctx, id)
}

// Drafts computes the drafts for scope without persisting them.
func (c *SuggestionController) Drafts(ctx context.Context, scope Scope) ([]engine.Draft, error) {
	log := c.log.Function("Drafts")

	snapshot, err := c.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, log.Err("failed to load snapshot", err)
	}

	var drafts []engine.Draft
	if scope == ScopeAll || scope == ScopeCoverage {
		for _, department := range engine.Departments(snapshot.Staff) {
			drafts = append(drafts, engine.CoverageDrafts(department, snapshot.Staff)...)
		}
	}
	if scope == ScopeAll || scope == ScopeBurnout {
		scorer := engine.RiskScorer{CrisisDepartment: c.Config.EngineCrisisDepartment}
		drafts = append(drafts, engine.BurnoutDrafts(scorer.ScoreAll(snapshot.Week, snapshot.Staff, snapshot.TimeOff))...)
	}

	return drafts, nil
}

// Generate persists one suggestion per draft in a single transaction.
// Repeated runs accumulate duplicates unless pending deduplication is on.
func (c *SuggestionController) Generate(ctx context.Context, scopeName string) ([]*Suggestion, error) {
	log := c.log.Function("Generate")

	scope, err := ParseScope(scopeName)
	if err != nil {
		return nil, log.Err("invalid scope", err)
	}

	drafts, err := c.Drafts(ctx, scope)
	if err != nil {
		return nil, err
	}

	created := []*Suggestion{}
	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if c.Config.SuggestionsDedupePending {
			drafts, err = c.withoutPending(txCtx, drafts)
			if err != nil {
				return err
			}
		}

		for _, draft := range drafts {
			created = append(created, SuggestionFromDraft(draft))
		}
		return c.suggestionRepo.CreateBatch(txCtx, created)
	})
	if err != nil {
		return nil, log.Err("failed to persist suggestions", err, "scope", scope)
	}

	c.publish(events.TypeSuggestionsGenerated, map[string]any{
		"scope": scope,
		"count": len(created),
	})
	log.Info("generated suggestions", "scope", scope, "count", len(created))
	return created, nil
}

// withoutPending drops drafts matching a pending suggestion or an earlier
// draft of the same batch.
func (c *SuggestionController) withoutPending(ctx context.Context, drafts []engine.Draft) ([]engine.Draft, error) {
	pending, err := c.suggestionRepo.List(ctx, StatusPending)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(pending)+len(drafts))
	for _, s := range pending {
		seen[s.Draft().Key()] = true
	}

	kept := drafts[:0:0]
	for _, d := range drafts {
		if key := d.Key(); !seen[key] {
			seen[key] = true
			kept = append(kept, d)
		}
	}
	return kept, nil
}

type StatusResult struct {
	Suggestion         *Suggestion `json:"suggestion"`
	Task               *Task       `json:"task,omitempty"`
	ExecutedSideEffect bool        `json:"executedSideEffect"`
}

// UpdateStatus applies a status transition. Setting a terminal status again
// is accepted and has no side effect. Updates to one id are serialised here
// and guarded again by a compare-and-set on the stored status.
func (c *SuggestionController) UpdateStatus(ctx context.Context, id, statusName string) (StatusResult, error) {
	log := c.log.Function("UpdateStatus")

	to, err := ParseSuggestionStatus(statusName)
	if err != nil {
		return StatusResult{}, log.Err("invalid status", err, "id", id)
	}

	unlock := c.locks.Lock(id)
	defer unlock()

	var result StatusResult
	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		suggestion, err := c.suggestionRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		result.Suggestion = suggestion

		if err := CheckTransition(suggestion.Status, to); err != nil {
			return err
		}
		if suggestion.Status == to {
			return nil
		}

		ok, err := c.suggestionRepo.CompareAndSetStatus(txCtx, id, suggestion.Status, to)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: suggestion %s changed concurrently", ErrInvalidTransition, id)
		}
		suggestion.Status = to

		if to != StatusApproved {
			return nil
		}
		task, ok := suggestion.BackfillTask()
		if !ok {
			return nil
		}
		if err := c.taskRepo.Create(txCtx, task); err != nil {
			return err
		}
		result.Task = task
		result.ExecutedSideEffect = true
		return nil
	})
	if err != nil {
		return StatusResult{}, log.Err("failed to update suggestion status", err, "id", id, "status", to)
	}

	c.publish(events.TypeSuggestionStatus, map[string]any{
		"id":                 id,
		"status":             to,
		"executedSideEffect": result.ExecutedSideEffect,
	})
	return result, nil
}

func (c *SuggestionController) publish(eventType string, data map[string]any) {
	if c.eventBus == nil {
		return
	}
	if err := c.eventBus.Publish(events.ChannelSuggestions, events.Event{Type: eventType, Data: data}); err != nil {
		c.log.Function("publish").Warn("failed to publish suggestion event", "type", eventType, "error", err)
	}
}
