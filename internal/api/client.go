package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/model"
)

const DefaultBaseURL = "http://localhost:4000/api"

// TokenSource supplies the current bearer token, or "" when the session is
// unauthenticated. Calls without a token proceed unauthenticated; the backend
// decides whether to reject them.
type TokenSource interface {
	Token() string
}

// Client is the typed gateway to the train-diary backend. One method per
// backend operation, exactly one round trip each; no retries and no caching.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{BaseURL: baseURL, Tokens: tokens}
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 12 * time.Second}
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("execute %s request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg MessageResponse
		_ = json.Unmarshal(raw, &msg)
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Op: op, Body: raw, Err: err}
	}
	return nil
}

// --- auth ---

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, req, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil, req, &out)
	return out, err
}

// --- exercise catalog ---

func (c *Client) ListExercises(ctx context.Context) ([]model.Exercise, error) {
	var out []model.Exercise
	err := c.do(ctx, "list exercises", http.MethodGet, "/exercises", nil, nil, &out)
	return out, err
}

func (c *Client) CreateExercise(ctx context.Context, ex model.Exercise) (CreateExerciseResponse, error) {
	var out CreateExerciseResponse
	err := c.do(ctx, "create exercise", http.MethodPost, "/exercises", nil, ex, &out)
	return out, err
}

func (c *Client) DeleteExercise(ctx context.Context, exerciseID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "delete exercise", http.MethodDelete, "/exercises", nil,
		map[string]int64{"exercise_id": exerciseID}, &out)
	return out, err
}

// --- food catalog ---

func (c *Client) ListFoods(ctx context.Context) ([]model.Food, error) {
	var out []model.Food
	err := c.do(ctx, "list foods", http.MethodGet, "/foods", nil, nil, &out)
	return out, err
}

func (c *Client) CreateFood(ctx context.Context, food model.Food) (CreateFoodResponse, error) {
	var out CreateFoodResponse
	err := c.do(ctx, "create food", http.MethodPost, "/foods", nil, food, &out)
	return out, err
}

func (c *Client) UpdateFood(ctx context.Context, food model.Food) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "update food", http.MethodPut, "/foods", nil, food, &out)
	return out, err
}

func (c *Client) DeleteFood(ctx context.Context, foodID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "delete food", http.MethodDelete, "/foods", nil,
		map[string]int64{"food_id": foodID}, &out)
	return out, err
}

// --- meals ---

func (c *Client) ListMeals(ctx context.Context, userID int64) ([]model.Meal, error) {
	query := url.Values{"user_id": {fmt.Sprint(userID)}}
	var out []model.Meal
	err := c.do(ctx, "list meals", http.MethodGet, "/foods/meals", query, nil, &out)
	return out, err
}

func (c *Client) MealFoods(ctx context.Context, mealID int64) ([]model.MealFood, error) {
	var out []model.MealFood
	err := c.do(ctx, "get meal foods", http.MethodGet, fmt.Sprintf("/foods/meals/%d", mealID), nil, nil, &out)
	return out, err
}

func (c *Client) CreateMeal(ctx context.Context, req CreateMealRequest) (CreateMealResponse, error) {
	var out CreateMealResponse
	err := c.do(ctx, "create meal", http.MethodPost, "/foods/meals", nil, req, &out)
	return out, err
}

func (c *Client) DeleteMeal(ctx context.Context, mealID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "delete meal", http.MethodDelete, fmt.Sprintf("/foods/meals/%d", mealID), nil, nil, &out)
	return out, err
}

// --- workout sessions ---

func (c *Client) ListSessions(ctx context.Context, userID int64) ([]model.WorkoutSession, error) {
	query := url.Values{"user_id": {fmt.Sprint(userID)}}
	var out []model.WorkoutSession
	err := c.do(ctx, "list sessions", http.MethodGet, "/workouts", query, nil, &out)
	return out, err
}

func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (CreateSessionResponse, error) {
	var out CreateSessionResponse
	err := c.do(ctx, "create session", http.MethodPost, "/workouts", nil, req, &out)
	return out, err
}

func (c *Client) DeleteSession(ctx context.Context, sessionID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "delete session", http.MethodDelete, fmt.Sprintf("/workouts/%d", sessionID), nil, nil, &out)
	return out, err
}

func (c *Client) ReorderSession(ctx context.Context, req ReorderSessionRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "reorder session", http.MethodPost, "/workouts/reorder", nil, req, &out)
	return out, err
}

func (c *Client) CompleteSession(ctx context.Context, sessionID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "complete session", http.MethodPatch, fmt.Sprintf("/workouts/%d/complete", sessionID), nil, nil, &out)
	return out, err
}

func (c *Client) SessionDetails(ctx context.Context, sessionID int64) ([]model.SessionDetail, error) {
	var out []model.SessionDetail
	err := c.do(ctx, "session details", http.MethodGet, fmt.Sprintf("/workouts/%d/details", sessionID), nil, nil, &out)
	return out, err
}

func (c *Client) SessionLogs(ctx context.Context, sessionID int64) ([]model.SessionLog, error) {
	var out []model.SessionLog
	err := c.do(ctx, "session logs", http.MethodGet, fmt.Sprintf("/workouts/%d/logs", sessionID), nil, nil, &out)
	return out, err
}

func (c *Client) AddSessionExercises(ctx context.Context, sessionID int64, req AddSessionExercisesRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "add session exercises", http.MethodPost, fmt.Sprintf("/workouts/%d/exercises", sessionID), nil, req, &out)
	return out, err
}

func (c *Client) DeleteSessionDetail(ctx context.Context, detailID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "delete session detail", http.MethodDelete, fmt.Sprintf("/workouts/details/%d", detailID), nil, nil, &out)
	return out, err
}

func (c *Client) CreateSessionLog(ctx context.Context, req CreateSessionLogRequest) (CreateSessionLogResponse, error) {
	var out CreateSessionLogResponse
	err := c.do(ctx, "create session log", http.MethodPost, "/workouts/log", nil, req, &out)
	return out, err
}

func (c *Client) DeleteSessionLog(ctx context.Context, logID int64) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "delete session log", http.MethodDelete, fmt.Sprintf("/workouts/log/%d", logID), nil, nil, &out)
	return out, err
}

// --- plans ---

func (c *Client) ListPlans(ctx context.Context) ([]model.Plan, error) {
	var out []model.Plan
	err := c.do(ctx, "list plans", http.MethodGet, "/plans", nil, nil, &out)
	return out, err
}

func (c *Client) GetPlan(ctx context.Context, planID int64) (model.PlanDetails, error) {
	var out model.PlanDetails
	err := c.do(ctx, "get plan", http.MethodGet, fmt.Sprintf("/plans/%d", planID), nil, nil, &out)
	return out, err
}

func (c *Client) ApplyPlan(ctx context.Context, req ApplyPlanRequest) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "apply plan", http.MethodPost, "/plans/apply", nil, req, &out)
	return out, err
}

// --- summary ---

func (c *Client) GenerateSummary(ctx context.Context, key SummaryKey) (MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, "generate summary", http.MethodPost, "/summary/generate", nil, key, &out)
	return out, err
}

func (c *Client) GetSummary(ctx context.Context, key SummaryKey) (model.Summary, error) {
	query := url.Values{
		"user_id":      {fmt.Sprint(key.UserID)},
		"period_type":  {string(key.PeriodType)},
		"period_start": {key.PeriodStart},
	}
	var out model.Summary
	err := c.do(ctx, "get summary", http.MethodGet, "/summary", query, nil, &out)
	return out, err
}
