package traindiary

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Hirosolo/train-diary-cli/internal/api"
	"github.com/Hirosolo/train-diary-cli/internal/app"
	"github.com/Hirosolo/train-diary-cli/internal/auth"
	"github.com/Hirosolo/train-diary-cli/internal/db"
	"github.com/Hirosolo/train-diary-cli/internal/logx"
	"github.com/Hirosolo/train-diary-cli/internal/model"
	"github.com/Hirosolo/train-diary-cli/internal/refresh"
	"github.com/Hirosolo/train-diary-cli/internal/summary"
)

const baseURLEnv = "TRAINDIARY_BASE_URL"

// appEnv is the wired-up application: state file, session store, API client,
// refresh bus and summary aggregator. The aggregator is subscribed to the
// bus, so any published mutation regenerates the current month's summary.
type appEnv struct {
	DB      *sql.DB
	Auth    *auth.Store
	Client  *api.Client
	Bus     *refresh.Bus
	Summary *summary.Store
}

func withApp(run func(*appEnv) error) error {
	path := statePath
	if strings.TrimSpace(path) == "" {
		var err error
		path, err = app.DefaultStatePath()
		if err != nil {
			return err
		}
	}
	if err := app.EnsureStateDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}

	store := auth.NewStore(auth.SQLStorage{DB: sqldb})
	if err := store.Bootstrap(); err != nil {
		return err
	}

	baseURL, err := resolveBaseURL(sqldb)
	if err != nil {
		return err
	}
	client := api.New(baseURL, store)
	bus := refresh.NewBus()
	sum := summary.NewStore(client)

	env := &appEnv{DB: sqldb, Auth: store, Client: client, Bus: bus, Summary: sum}
	if user, ok := store.CurrentUser(); ok {
		// Mirror the dashboard subscription: data changes refresh the
		// current month's aggregate.
		env.Bus.Subscribe(func() {
			key := api.MonthlyKey(user.UserID, time.Now().Format("2006-01"))
			if err := sum.Refresh(context.Background(), key); err != nil {
				logx.Warnf("summary refresh after data change failed: %v", err)
			}
		})
	}
	return run(env)
}

func resolveBaseURL(sqldb *sql.DB) (string, error) {
	if strings.TrimSpace(baseURLFlag) != "" {
		return baseURLFlag, nil
	}
	if env := strings.TrimSpace(os.Getenv(baseURLEnv)); env != "" {
		return env, nil
	}
	stored, ok, err := db.GetValue(sqldb, db.StateBaseURL)
	if err != nil {
		return "", err
	}
	if ok && strings.TrimSpace(stored) != "" {
		return stored, nil
	}
	return api.DefaultBaseURL, nil
}

func (e *appEnv) requireUser() (model.User, error) {
	user, ok := e.Auth.CurrentUser()
	if !ok {
		return model.User{}, fmt.Errorf("not logged in (run 'traindiary login')")
	}
	return user, nil
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

func todayDate() string {
	return time.Now().Format("2006-01-02")
}
