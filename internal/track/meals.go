package track

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/logx"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/Hirosolo/train-diary-cli/internal/refresh"
)

var mealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

type MealGateway interface {
	ListMeals(ctx context.Context, userID int64) ([]model.Meal, error)
	MealFoods(ctx context.Context, mealID int64) ([]model.MealFood, error)
	CreateMeal(ctx context.Context, req api.CreateMealRequest) (api.CreateMealResponse, error)
	DeleteMeal(ctx context.Context, mealID int64) (api.MessageResponse, error)
	GenerateSummary(ctx context.Context, key api.SummaryKey) (api.MessageResponse, error)
}

// Meals is the local collection of one user's logged meals, with each meal's
// foods attached.
type Meals struct {
	gw     MealGateway
	bus    *refresh.Bus
	userID int64
	now    func() time.Time

	mu    sync.Mutex
	items []model.Meal
}

func NewMeals(gw MealGateway, bus *refresh.Bus, userID int64) *Meals {
	return &Meals{gw: gw, bus: bus, userID: userID, now: time.Now}
}

// Fetch replaces the collection: the meal list first, then each meal's foods.
func (m *Meals) Fetch(ctx context.Context) error {
	meals, err := m.gw.ListMeals(ctx, m.userID)
	if err != nil {
		return fmt.Errorf("fetch meals: %w", err)
	}
	for i := range meals {
		foods, err := m.gw.MealFoods(ctx, meals[i].MealID)
		if err != nil {
			return fmt.Errorf("fetch foods of meal %d: %w", meals[i].MealID, err)
		}
		meals[i].Foods = foods
	}
	m.mu.Lock()
	m.items = meals
	m.mu.Unlock()
	return nil
}

func (m *Meals) Items() []model.Meal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Meal, len(m.items))
	copy(out, m.items)
	return out
}

// Log records a meal, regenerates the daily and weekly summaries it affects,
// refetches the collection and publishes a refresh. Summary regeneration
// failures are logged and swallowed: the aggregates go stale, the meal does
// not disappear.
func (m *Meals) Log(ctx context.Context, logDate, mealType string, foods []api.MealFoodAmount) (int64, error) {
	if _, err := time.Parse("2006-01-02", logDate); err != nil {
		return 0, fmt.Errorf("invalid log date %q (expected YYYY-MM-DD)", logDate)
	}
	if !mealTypes[mealType] {
		return 0, fmt.Errorf("invalid meal type %q (expected breakfast, lunch, dinner or snack)", mealType)
	}
	if len(foods) == 0 {
		return 0, fmt.Errorf("a meal needs at least one food")
	}
	for _, f := range foods {
		if f.FoodID <= 0 || f.AmountGrams < 0 {
			return 0, fmt.Errorf("food id must be > 0 and amount must be >= 0")
		}
	}

	resp, err := m.gw.CreateMeal(ctx, api.CreateMealRequest{
		UserID:   m.userID,
		MealType: mealType,
		LogDate:  logDate,
		Foods:    foods,
	})
	if err != nil {
		return 0, fmt.Errorf("log meal: %w", err)
	}
	if resp.MealID == 0 {
		return 0, fmt.Errorf("log meal: %s", messageOr(resp.Message, "backend did not return a meal id"))
	}

	for _, period := range []api.PeriodType{api.PeriodDaily, api.PeriodWeekly} {
		key := api.CurrentKey(m.userID, period, m.now())
		if _, err := m.gw.GenerateSummary(ctx, key); err != nil {
			logx.Warnf("regenerate %s summary after meal %d failed: %v", period, resp.MealID, err)
		}
	}

	if err := m.Fetch(ctx); err != nil {
		return resp.MealID, err
	}
	m.bus.Publish()
	return resp.MealID, nil
}

func (m *Meals) Delete(ctx context.Context, mealID int64) error {
	if _, err := m.gw.DeleteMeal(ctx, mealID); err != nil {
		return fmt.Errorf("delete meal %d: %w", mealID, err)
	}
	if err := m.Fetch(ctx); err != nil {
		return err
	}
	m.bus.Publish()
	return nil
}

// NutritionTotals is a client-side aggregate; it is never fetched.
type NutritionTotals struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// MealNutrition folds a meal's foods into totals. Per-serving values are per
// 100g, so each food contributes value * amount_grams / 100.
func MealNutrition(foods []model.MealFood) NutritionTotals {
	var t NutritionTotals
	for _, f := range foods {
		mult := f.AmountGrams / 100
		t.Calories += f.CaloriesPerServing * mult
		t.Protein += f.ProteinPerServing * mult
		t.Carbs += f.CarbsPerServing * mult
		t.Fat += f.FatPerServing * mult
	}
	return t
}

// DailyTotals sums the nutrition of every meal logged on the given day.
func (m *Meals) DailyTotals(date string) NutritionTotals {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t NutritionTotals
	for _, meal := range m.items {
		day := meal.LogDate
		if len(day) > 10 {
			day = day[:10]
		}
		if day != date {
			continue
		}
		n := MealNutrition(meal.Foods)
		t.Calories += n.Calories
		t.Protein += n.Protein
		t.Carbs += n.Carbs
		t.Fat += n.Fat
	}
	return t
}
