package track

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/Hirosolo/train-diary-cli/internal/refresh"
)

// planAppliedMessage is the backend's fixed success marker for plan
// application; there is no dedicated success field on this endpoint.
const planAppliedMessage = "Plan applied and sessions created."

type PlanGateway interface {
	ListPlans(ctx context.Context) ([]model.Plan, error)
	GetPlan(ctx context.Context, planID int64) (model.PlanDetails, error)
	ApplyPlan(ctx context.Context, req api.ApplyPlanRequest) (api.MessageResponse, error)
}

// Plans is the read-mostly workout plan catalog.
type Plans struct {
	gw     PlanGateway
	bus    *refresh.Bus
	userID int64

	mu    sync.Mutex
	items []model.Plan
}

func NewPlans(gw PlanGateway, bus *refresh.Bus, userID int64) *Plans {
	return &Plans{gw: gw, bus: bus, userID: userID}
}

func (p *Plans) Fetch(ctx context.Context) error {
	items, err := p.gw.ListPlans(ctx)
	if err != nil {
		return fmt.Errorf("fetch plans: %w", err)
	}
	p.mu.Lock()
	p.items = items
	p.mu.Unlock()
	return nil
}

func (p *Plans) Items() []model.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Plan, len(p.items))
	copy(out, p.items)
	return out
}

func (p *Plans) Details(ctx context.Context, planID int64) (model.PlanDetails, error) {
	details, err := p.gw.GetPlan(ctx, planID)
	if err != nil {
		return model.PlanDetails{}, fmt.Errorf("fetch plan %d: %w", planID, err)
	}
	return details, nil
}

// Apply schedules a plan's sessions starting at startDate. The batch of
// workout sessions is created server-side; on success a refresh is published
// so session views refetch.
func (p *Plans) Apply(ctx context.Context, planID int64, startDate string) error {
	if planID <= 0 {
		return fmt.Errorf("plan id must be > 0")
	}
	if _, err := time.Parse("2006-01-02", startDate); err != nil {
		return fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", startDate)
	}
	resp, err := p.gw.ApplyPlan(ctx, api.ApplyPlanRequest{UserID: p.userID, PlanID: planID, StartDate: startDate})
	if err != nil {
		return fmt.Errorf("apply plan %d: %w", planID, err)
	}
	if resp.Message != planAppliedMessage {
		return fmt.Errorf("apply plan %d: %s", planID, messageOr(resp.Message, "backend rejected the plan"))
	}
	p.bus.Publish()
	return nil
}
