package track

import (
	"context"
	"errors"
	"testing"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/Hirosolo/train-diary-cli/internal/refresh"
)

type fakePlanGateway struct {
	applyPlan func(req api.ApplyPlanRequest) (api.MessageResponse, error)
	applied   []api.ApplyPlanRequest
}

func (g *fakePlanGateway) ListPlans(ctx context.Context) ([]model.Plan, error) {
	return []model.Plan{{PlanID: 1, Name: "Push Pull Legs", DaysPerWeek: 6}}, nil
}

func (g *fakePlanGateway) GetPlan(ctx context.Context, planID int64) (model.PlanDetails, error) {
	return model.PlanDetails{Plan: model.Plan{PlanID: planID, Name: "Push Pull Legs"}}, nil
}

func (g *fakePlanGateway) ApplyPlan(ctx context.Context, req api.ApplyPlanRequest) (api.MessageResponse, error) {
	g.applied = append(g.applied, req)
	if g.applyPlan != nil {
		return g.applyPlan(req)
	}
	return api.MessageResponse{Message: "Plan applied and sessions created."}, nil
}

func TestApplyPlanPublishesOnSuccess(t *testing.T) {
	t.Parallel()
	gw := &fakePlanGateway{}
	bus, published := countingBus()
	plans := NewPlans(gw, bus, 7)

	if err := plans.Apply(context.Background(), 1, "2025-06-23"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(gw.applied) != 1 {
		t.Fatalf("apply called %d times, want 1", len(gw.applied))
	}
	if req := gw.applied[0]; req.UserID != 7 || req.PlanID != 1 || req.StartDate != "2025-06-23" {
		t.Fatalf("unexpected apply request: %+v", req)
	}
	if *published != 1 {
		t.Fatalf("published %d refreshes, want 1", *published)
	}
}

func TestApplyPlanRejectsUnexpectedMessage(t *testing.T) {
	t.Parallel()
	gw := &fakePlanGateway{applyPlan: func(api.ApplyPlanRequest) (api.MessageResponse, error) {
		return api.MessageResponse{Message: "Plan not found"}, nil
	}}
	bus, published := countingBus()
	plans := NewPlans(gw, bus, 7)

	err := plans.Apply(context.Background(), 99, "2025-06-23")
	if err == nil {
		t.Fatal("expected an error for a non-success message")
	}
	if *published != 0 {
		t.Fatal("nothing should be published when the backend rejects the plan")
	}
}

func TestApplyPlanSurfacesTransportError(t *testing.T) {
	t.Parallel()
	gw := &fakePlanGateway{applyPlan: func(api.ApplyPlanRequest) (api.MessageResponse, error) {
		return api.MessageResponse{}, errors.New("connection refused")
	}}
	bus, published := countingBus()
	plans := NewPlans(gw, bus, 7)

	if err := plans.Apply(context.Background(), 1, "2025-06-23"); err == nil {
		t.Fatal("expected the transport error to surface")
	}
	if *published != 0 {
		t.Fatal("nothing should be published on failure")
	}
}

func TestApplyPlanValidation(t *testing.T) {
	t.Parallel()
	gw := &fakePlanGateway{}
	plans := NewPlans(gw, refresh.NewBus(), 7)

	if err := plans.Apply(context.Background(), 0, "2025-06-23"); err == nil {
		t.Fatal("expected an error for plan id 0")
	}
	if err := plans.Apply(context.Background(), 1, "next monday"); err == nil {
		t.Fatal("expected an error for a malformed start date")
	}
	if len(gw.applied) != 0 {
		t.Fatalf("gateway must not be called on validation failure, got %d calls", len(gw.applied))
	}
}

func TestPlansFetchAndDetails(t *testing.T) {
	t.Parallel()
	gw := &fakePlanGateway{}
	plans := NewPlans(gw, refresh.NewBus(), 7)

	if err := plans.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	items := plans.Items()
	if len(items) != 1 || items[0].Name != "Push Pull Legs" {
		t.Fatalf("unexpected catalog: %+v", items)
	}

	details, err := plans.Details(context.Background(), 1)
	if err != nil {
		t.Fatalf("Details failed: %v", err)
	}
	if details.PlanID != 1 {
		t.Fatalf("details plan id %d, want 1", details.PlanID)
	}
}
