// Package track keeps local collections of remote-owned entities in sync
// with the backend. Every mutating flow follows the same contract: submit,
// and on success refetch the collection and publish on the refresh bus; on
// failure surface the error and leave the collection untouched. The one
// exception is drag reorder, which applies optimistically and compensates
// with an authoritative refetch when persistence fails.
package track

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/logx"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/Hirosolo/train-diary-cli/internal/refresh"
)

var (
	// ErrSessionCompleted guards edits to a completed session; completion
	// is irreversible and freezes the exercise list and its logs.
	ErrSessionCompleted = errors.New("session is already completed")
	// ErrNotCompletable is returned when at least one planned exercise has
	// no logged set yet.
	ErrNotCompletable = errors.New("every exercise needs at least one logged set before completing")

	ErrUnknownSession = errors.New("unknown session")
)

type SessionGateway interface {
	ListSessions(ctx context.Context, userID int64) ([]model.WorkoutSession, error)
	CreateSession(ctx context.Context, req api.CreateSessionRequest) (api.CreateSessionResponse, error)
	DeleteSession(ctx context.Context, sessionID int64) (api.MessageResponse, error)
	ReorderSession(ctx context.Context, req api.ReorderSessionRequest) (api.MessageResponse, error)
	CompleteSession(ctx context.Context, sessionID int64) (api.MessageResponse, error)
	SessionDetails(ctx context.Context, sessionID int64) ([]model.SessionDetail, error)
	SessionLogs(ctx context.Context, sessionID int64) ([]model.SessionLog, error)
	AddSessionExercises(ctx context.Context, sessionID int64, req api.AddSessionExercisesRequest) (api.MessageResponse, error)
	DeleteSessionDetail(ctx context.Context, detailID int64) (api.MessageResponse, error)
	CreateSessionLog(ctx context.Context, req api.CreateSessionLogRequest) (api.CreateSessionLogResponse, error)
	DeleteSessionLog(ctx context.Context, logID int64) (api.MessageResponse, error)
}

// Sessions is the local collection of one user's workout sessions.
type Sessions struct {
	gw     SessionGateway
	bus    *refresh.Bus
	userID int64

	mu    sync.Mutex
	items []model.WorkoutSession
}

func NewSessions(gw SessionGateway, bus *refresh.Bus, userID int64) *Sessions {
	return &Sessions{gw: gw, bus: bus, userID: userID}
}

// Fetch replaces the collection with the authoritative server list, sorted by
// scheduled date.
func (s *Sessions) Fetch(ctx context.Context) error {
	items, err := s.gw.ListSessions(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("fetch sessions: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ScheduledDate < items[j].ScheduledDate
	})
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *Sessions) Items() []model.WorkoutSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WorkoutSession, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Sessions) find(sessionID int64) (model.WorkoutSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.SessionID == sessionID {
			return item, true
		}
	}
	return model.WorkoutSession{}, false
}

// Schedule creates a session and, on success, refetches the list and
// publishes a refresh.
func (s *Sessions) Schedule(ctx context.Context, scheduledDate, sessionType, notes string) (int64, error) {
	if _, err := time.Parse("2006-01-02", scheduledDate); err != nil {
		return 0, fmt.Errorf("invalid scheduled date %q (expected YYYY-MM-DD)", scheduledDate)
	}
	if strings.TrimSpace(sessionType) == "" {
		return 0, fmt.Errorf("session type is required")
	}
	resp, err := s.gw.CreateSession(ctx, api.CreateSessionRequest{
		UserID:        s.userID,
		ScheduledDate: scheduledDate,
		Notes:         notes,
		Type:          sessionType,
	})
	if err != nil {
		return 0, fmt.Errorf("schedule session: %w", err)
	}
	if resp.SessionID == 0 {
		return 0, fmt.Errorf("schedule session: %s", messageOr(resp.Message, "backend did not return a session id"))
	}
	if err := s.Fetch(ctx); err != nil {
		return resp.SessionID, err
	}
	s.bus.Publish()
	return resp.SessionID, nil
}

func (s *Sessions) Delete(ctx context.Context, sessionID int64) error {
	if _, err := s.gw.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session %d: %w", sessionID, err)
	}
	if err := s.Fetch(ctx); err != nil {
		return err
	}
	s.bus.Publish()
	return nil
}

// Reorder moves the session at index from to index to, optimistically: the
// local collection is rearranged before the persistence call. When the call
// fails the authoritative list is refetched to undo the optimistic move.
func (s *Sessions) Reorder(ctx context.Context, from, to int) error {
	s.mu.Lock()
	if from < 0 || from >= len(s.items) || to < 0 || to >= len(s.items) {
		s.mu.Unlock()
		return fmt.Errorf("reorder: position out of range")
	}
	moved := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]model.WorkoutSession{moved}, s.items[to:]...)...)
	s.mu.Unlock()

	_, err := s.gw.ReorderSession(ctx, api.ReorderSessionRequest{SessionID: moved.SessionID, NewPosition: to})
	if err != nil {
		logx.Warnf("persist reorder of session %d failed, refetching authoritative order: %v", moved.SessionID, err)
		if fetchErr := s.Fetch(ctx); fetchErr != nil {
			return fmt.Errorf("reorder session %d: %w (compensating refetch also failed: %v)", moved.SessionID, err, fetchErr)
		}
		return fmt.Errorf("reorder session %d: %w", moved.SessionID, err)
	}
	return nil
}

// Workspace is the loaded detail view of one session: its planned exercises
// and the sets actually logged against them.
type Workspace struct {
	Session model.WorkoutSession
	Details []model.SessionDetail
	Logs    []model.SessionLog
}

// Completable reports whether every planned exercise has at least one logged
// set. A session with no exercises is not completable.
func (w Workspace) Completable() bool {
	if len(w.Details) == 0 {
		return false
	}
	for _, d := range w.Details {
		logged := false
		for _, l := range w.Logs {
			if l.SessionDetailID == d.SessionDetailID {
				logged = true
				break
			}
		}
		if !logged {
			return false
		}
	}
	return true
}

// LogsFor returns the logged sets for one planned exercise.
func (w Workspace) LogsFor(detailID int64) []model.SessionLog {
	var out []model.SessionLog
	for _, l := range w.Logs {
		if l.SessionDetailID == detailID {
			out = append(out, l)
		}
	}
	return out
}

// Open loads the detail workspace for a session in the collection.
func (s *Sessions) Open(ctx context.Context, sessionID int64) (Workspace, error) {
	session, ok := s.find(sessionID)
	if !ok {
		return Workspace{}, fmt.Errorf("open session %d: %w", sessionID, ErrUnknownSession)
	}
	details, err := s.gw.SessionDetails(ctx, sessionID)
	if err != nil {
		return Workspace{}, fmt.Errorf("load session %d details: %w", sessionID, err)
	}
	logs, err := s.gw.SessionLogs(ctx, sessionID)
	if err != nil {
		return Workspace{}, fmt.Errorf("load session %d logs: %w", sessionID, err)
	}
	return Workspace{Session: session, Details: details, Logs: logs}, nil
}

// Complete marks a session completed. The gate is checked client-side from
// the loaded workspace for responsiveness; the backend enforces it again.
func (s *Sessions) Complete(ctx context.Context, w Workspace) error {
	if w.Session.Completed {
		return ErrSessionCompleted
	}
	if !w.Completable() {
		return ErrNotCompletable
	}
	if _, err := s.gw.CompleteSession(ctx, w.Session.SessionID); err != nil {
		return fmt.Errorf("complete session %d: %w", w.Session.SessionID, err)
	}
	if err := s.Fetch(ctx); err != nil {
		return err
	}
	s.bus.Publish()
	return nil
}

// AddExercise adds a planned exercise to an incomplete session.
func (s *Sessions) AddExercise(ctx context.Context, sessionID, exerciseID int64, plannedSets, plannedReps int) error {
	session, ok := s.find(sessionID)
	if !ok {
		return fmt.Errorf("add exercise: %w", ErrUnknownSession)
	}
	if session.Completed {
		return ErrSessionCompleted
	}
	if exerciseID <= 0 || plannedSets <= 0 || plannedReps <= 0 {
		return fmt.Errorf("exercise id, sets and reps must be > 0")
	}
	_, err := s.gw.AddSessionExercises(ctx, sessionID, api.AddSessionExercisesRequest{
		Exercises: []api.SessionExercise{{ExerciseID: exerciseID, PlannedSets: plannedSets, PlannedReps: plannedReps}},
	})
	if err != nil {
		return fmt.Errorf("add exercise to session %d: %w", sessionID, err)
	}
	return nil
}

// RemoveExercise removes a planned exercise from an incomplete session.
func (s *Sessions) RemoveExercise(ctx context.Context, sessionID, detailID int64) error {
	session, ok := s.find(sessionID)
	if !ok {
		return fmt.Errorf("remove exercise: %w", ErrUnknownSession)
	}
	if session.Completed {
		return ErrSessionCompleted
	}
	if _, err := s.gw.DeleteSessionDetail(ctx, detailID); err != nil {
		return fmt.Errorf("remove exercise %d: %w", detailID, err)
	}
	return nil
}

// LogSet records one performed set against a planned exercise. Logs are
// append-only per exercise; multiple logs are allowed.
func (s *Sessions) LogSet(ctx context.Context, sessionID, detailID int64, sets, reps int, weightKg float64, notes string) (int64, error) {
	session, ok := s.find(sessionID)
	if !ok {
		return 0, fmt.Errorf("log set: %w", ErrUnknownSession)
	}
	if session.Completed {
		return 0, ErrSessionCompleted
	}
	if sets <= 0 || reps <= 0 {
		return 0, fmt.Errorf("sets and reps must be > 0")
	}
	resp, err := s.gw.CreateSessionLog(ctx, api.CreateSessionLogRequest{
		SessionDetailID: detailID,
		ActualSets:      sets,
		ActualReps:      reps,
		WeightKg:        weightKg,
		Notes:           notes,
	})
	if err != nil {
		return 0, fmt.Errorf("log set for exercise %d: %w", detailID, err)
	}
	return resp.LogID, nil
}

func (s *Sessions) DeleteLog(ctx context.Context, logID int64) error {
	if _, err := s.gw.DeleteSessionLog(ctx, logID); err != nil {
		return fmt.Errorf("delete log %d: %w", logID, err)
	}
	return nil
}

// Stats is the derived workout overview block.
type Stats struct {
	TotalCompleted int
	CompletedToday bool
	WeeklyStreak   int
	AvgDurationMin int
}

// ComputeStats derives the overview from the session collection and a set of
// logs (for durations).
func ComputeStats(sessions []model.WorkoutSession, logs []model.SessionLog, now time.Time) Stats {
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7)

	var stats Stats
	for _, session := range sessions {
		if !session.Completed {
			continue
		}
		stats.TotalCompleted++
		day := session.ScheduledDate
		if len(day) > 10 {
			day = day[:10]
		}
		if day == today {
			stats.CompletedToday = true
		}
		if t, err := time.Parse("2006-01-02", day); err == nil && !t.Before(weekAgo) && !t.After(now) {
			stats.WeeklyStreak++
		}
	}
	if stats.TotalCompleted > 0 {
		total := 0
		for _, l := range logs {
			total += l.DurationSeconds
		}
		stats.AvgDurationMin = total / (60 * stats.TotalCompleted)
	}
	return stats
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) != "" {
		return message
	}
	return fallback
}
