package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/model"
)

type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

func (p PeriodType) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// SummaryKey identifies one derived summary period on the backend.
type SummaryKey struct {
	UserID      int64      `json:"user_id"`
	PeriodType  PeriodType `json:"period_type"`
	PeriodStart string     `json:"period_start"`
}

func (k SummaryKey) Validate() error {
	if k.UserID <= 0 {
		return fmt.Errorf("user id must be > 0")
	}
	if !k.PeriodType.Valid() {
		return fmt.Errorf("invalid period type %q (expected daily, weekly or monthly)", k.PeriodType)
	}
	if _, err := time.Parse("2006-01-02", k.PeriodStart); err != nil {
		return fmt.Errorf("invalid period start %q (expected YYYY-MM-DD)", k.PeriodStart)
	}
	return nil
}

func (k SummaryKey) String() string {
	return fmt.Sprintf("%d/%s/%s", k.UserID, k.PeriodType, k.PeriodStart)
}

// MonthlyKey builds the key for a selected year-month; the backend expects
// the first day of the month as period start.
func MonthlyKey(userID int64, yearMonth string) SummaryKey {
	return SummaryKey{UserID: userID, PeriodType: PeriodMonthly, PeriodStart: strings.TrimSpace(yearMonth) + "-01"}
}

// CurrentKey builds a daily or weekly key anchored at the given day. Period
// boundaries are backend-defined; the client only supplies the anchor date.
func CurrentKey(userID int64, period PeriodType, now time.Time) SummaryKey {
	return SummaryKey{UserID: userID, PeriodType: period, PeriodStart: now.Format("2006-01-02")}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string     `json:"token,omitempty"`
	User    model.User `json:"user,omitempty"`
	Message string     `json:"message,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MessageResponse is the generic mutation acknowledgement shape.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success,omitempty"`
}

type CreateExerciseResponse struct {
	ExerciseID int64  `json:"exercise_id"`
	Message    string `json:"message,omitempty"`
}

type CreateFoodResponse struct {
	FoodID  int64  `json:"food_id"`
	Message string `json:"message,omitempty"`
}

type MealFoodAmount struct {
	FoodID      int64   `json:"food_id"`
	AmountGrams float64 `json:"amount_grams"`
}

type CreateMealRequest struct {
	UserID   int64            `json:"user_id"`
	MealType string           `json:"meal_type"`
	LogDate  string           `json:"log_date"`
	Foods    []MealFoodAmount `json:"foods"`
}

type CreateMealResponse struct {
	MealID  int64  `json:"meal_id"`
	Message string `json:"message,omitempty"`
}

type CreateSessionRequest struct {
	UserID        int64  `json:"user_id"`
	ScheduledDate string `json:"scheduled_date"`
	Notes         string `json:"notes"`
	Type          string `json:"type"`
}

type CreateSessionResponse struct {
	SessionID int64  `json:"session_id"`
	Message   string `json:"message,omitempty"`
}

type ReorderSessionRequest struct {
	SessionID   int64 `json:"session_id"`
	NewPosition int   `json:"new_position"`
}

type SessionExercise struct {
	ExerciseID  int64 `json:"exercise_id"`
	PlannedSets int   `json:"planned_sets"`
	PlannedReps int   `json:"planned_reps"`
}

type AddSessionExercisesRequest struct {
	Exercises []SessionExercise `json:"exercises"`
}

type CreateSessionLogRequest struct {
	SessionDetailID int64   `json:"session_detail_id"`
	ActualSets      int     `json:"actual_sets"`
	ActualReps      int     `json:"actual_reps"`
	WeightKg        float64 `json:"weight_kg"`
	DurationSeconds int     `json:"duration_seconds"`
	Notes           string  `json:"notes"`
}

type CreateSessionLogResponse struct {
	LogID   int64  `json:"log_id"`
	Message string `json:"message,omitempty"`
}

type ApplyPlanRequest struct {
	UserID    int64  `json:"user_id"`
	PlanID    int64  `json:"plan_id"`
	StartDate string `json:"start_date"`
}
