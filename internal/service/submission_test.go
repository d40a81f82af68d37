package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"admin-form/internal/database"
	"admin-form/internal/form"
	"admin-form/internal/model"
	"admin-form/internal/store"
	"admin-form/internal/worker"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func aliceForm() model.FormData {
	return model.FormData{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "Secret12",
		Role:     model.RoleEditor,
		Phone:    "5551234567",
	}
}

// syncPool 同步執行任務，方便斷言
type syncPool struct {
	err   error
	tasks int
}

func (p *syncPool) Submit(t worker.Task) error {
	if p.err != nil {
		return p.err
	}
	p.tasks++
	t(context.Background())
	return nil
}

func (p *syncPool) Stop() {}

func TestLogSink(t *testing.T) {
	t.Cleanup(restoreGlobals)
	newID = func() string { return "sub-1" }
	logger, hook := test.NewNullLogger()

	require.NoError(t, (&LogSink{Logger: logger}).Accept(context.Background(), aliceForm()))
	entry := hook.LastEntry()
	require.Equal(t, "Form data", entry.Message)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "sub-1", entry.Data["submission_id"])
	require.Equal(t, "alice", entry.Data["username"])
	require.Equal(t, "editor", entry.Data["role"])
	require.Equal(t, "[REDACTED]", entry.Data["password"])
	require.Equal(t, false, entry.Data["newsletter"])
}

func TestUserSink(t *testing.T) {
	logger, hook := test.NewNullLogger()

	t.Run("hash error", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		s := &UserSink{DB: &database.FakeDB{}, Workers: &syncPool{}, Logger: logger}
		require.Error(t, s.Accept(context.Background(), aliceForm()))
	})

	t.Run("create error", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
			return nil, store.ErrDuplicateUser
		}
		s := &UserSink{DB: &database.FakeDB{}, Workers: &syncPool{}, Logger: logger}
		require.ErrorIs(t, s.Accept(context.Background(), aliceForm()), store.ErrDuplicateUser)
	})

	t.Run("created without newsletter", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		hashPassword = func(p string) (string, error) { require.Equal(t, "Secret12", p); return "h", nil }
		var got *model.User
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			got = u
			u.ID = 3
			return u, nil
		}
		pool := &syncPool{}
		s := &UserSink{DB: &database.FakeDB{}, Workers: pool, Logger: logger}
		require.NoError(t, s.Accept(context.Background(), aliceForm()))
		require.Equal(t, "alice@example.com", got.Email)
		require.Equal(t, "h", got.PasswordHash)
		require.Equal(t, model.RoleEditor, got.Role)
		require.Equal(t, "5551234567", got.Phone)
		require.Zero(t, pool.tasks)
	})

	t.Run("newsletter enrollment", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			u.ID = 4
			return u, nil
		}
		var mu sync.Mutex
		var subscribed []int
		addSubscriber = func(ctx context.Context, _ database.DB, id int, email string) error {
			_, ok := ctx.Deadline()
			require.True(t, ok)
			require.Equal(t, "alice@example.com", email)
			mu.Lock()
			subscribed = append(subscribed, id)
			mu.Unlock()
			return nil
		}
		d := aliceForm()
		d.Newsletter = true
		pool := &syncPool{}
		s := &UserSink{DB: &database.FakeDB{}, Workers: pool, Logger: logger}
		require.NoError(t, s.Accept(context.Background(), d))
		require.Equal(t, 1, pool.tasks)
		require.Equal(t, []int{4}, subscribed)
	})

	t.Run("newsletter enrollment failure is logged", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		hook.Reset()
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) { return u, nil }
		addSubscriber = func(context.Context, database.DB, int, string) error { return errors.New("db") }
		d := aliceForm()
		d.Newsletter = true
		s := &UserSink{DB: &database.FakeDB{}, Workers: &syncPool{}, Logger: logger}
		require.NoError(t, s.Accept(context.Background(), d))
		require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})

	t.Run("pool stopped", func(t *testing.T) {
		t.Cleanup(restoreGlobals)
		hook.Reset()
		hashPassword = func(string) (string, error) { return "h", nil }
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) { return u, nil }
		d := aliceForm()
		d.Newsletter = true
		s := &UserSink{DB: &database.FakeDB{}, Workers: &syncPool{err: worker.ErrStopped}, Logger: logger}
		require.NoError(t, s.Accept(context.Background(), d))
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})
}

func TestSinks(t *testing.T) {
	var order []string
	ok := func(name string) form.Sink {
		return form.SinkFunc(func(context.Context, model.FormData) error { order = append(order, name); return nil })
	}
	fail := form.SinkFunc(func(context.Context, model.FormData) error { order = append(order, "fail"); return errors.New("x") })

	require.NoError(t, Sinks{ok("a"), ok("b")}.Accept(context.Background(), aliceForm()))
	require.Equal(t, []string{"a", "b"}, order)

	order = nil
	require.Error(t, Sinks{ok("a"), fail, ok("c")}.Accept(context.Background(), aliceForm()))
	require.Equal(t, []string{"a", "fail"}, order)

	require.NoError(t, Sinks{}.Accept(context.Background(), aliceForm()))
}

func TestSinksSkipLogForRejectedSubmission(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hashPassword = func(string) (string, error) { return "h", nil }
	createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
		return nil, store.ErrDuplicateUser
	}
	logger, hook := test.NewNullLogger()
	sinks := Sinks{
		NewBreakerSink("users", &UserSink{DB: &database.FakeDB{}, Workers: &syncPool{}, Logger: logger}),
		&LogSink{Logger: logger},
	}

	require.ErrorIs(t, sinks.Accept(context.Background(), aliceForm()), store.ErrDuplicateUser)
	require.Empty(t, hook.AllEntries())

	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) { return u, nil }
	require.NoError(t, sinks.Accept(context.Background(), aliceForm()))
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, "Form data", hook.LastEntry().Message)
}

func TestBreakerSink(t *testing.T) {
	failing := true
	calls := 0
	next := form.SinkFunc(func(context.Context, model.FormData) error {
		calls++
		if failing {
			return errors.New("db down")
		}
		return nil
	})
	b := NewBreakerSink("users", next)

	for i := 0; i < 5; i++ {
		err := b.Accept(context.Background(), aliceForm())
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrSinkUnavailable)
	}
	require.Equal(t, gobreaker.StateOpen, b.State())

	err := b.Accept(context.Background(), aliceForm())
	require.ErrorIs(t, err, ErrSinkUnavailable)
	require.Equal(t, 5, calls)
}

func TestBreakerSinkAcceptsLongPasswords(t *testing.T) {
	t.Cleanup(restoreGlobals)
	bcryptGenerateFromPassword = func(pw []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(pw, bcrypt.MinCost)
	}
	created := 0
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
		created++
		require.NotEmpty(t, u.PasswordHash)
		return u, nil
	}

	logger, _ := test.NewNullLogger()
	b := NewBreakerSink("users", &UserSink{DB: &database.FakeDB{}, Workers: &syncPool{}, Logger: logger})

	d := aliceForm()
	d.Password = "Aa1" + strings.Repeat("x", 80)
	for i := 0; i < 6; i++ {
		require.NoError(t, b.Accept(context.Background(), d))
	}
	require.NoError(t, b.Accept(context.Background(), aliceForm()))
	require.Equal(t, 7, created)
	require.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerSinkIgnoresDuplicates(t *testing.T) {
	next := form.SinkFunc(func(context.Context, model.FormData) error {
		return store.ErrDuplicateUser
	})
	b := NewBreakerSink("users", next)
	for i := 0; i < 10; i++ {
		require.ErrorIs(t, b.Accept(context.Background(), aliceForm()), store.ErrDuplicateUser)
	}
	require.Equal(t, gobreaker.StateClosed, b.State())
}
