// File: internal/service/submission.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"admin-form/internal/database"
	"admin-form/internal/form"
	"admin-form/internal/model"
	"admin-form/internal/store"
	"admin-form/internal/worker"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// subscribeTimeout 背景訂閱電子報的逾時
const subscribeTimeout = 10 * time.Second

var (
	hashPassword  = HashPassword
	createUser    = store.CreateUser
	addSubscriber = store.AddNewsletterSubscriber
	newID         = uuid.NewString
)

// LogSink 將送出的表單資料寫入日誌，密碼不落地
type LogSink struct {
	Logger logrus.FieldLogger
}

func (s *LogSink) Accept(_ context.Context, d model.FormData) error {
	s.Logger.WithFields(logrus.Fields{
		"submission_id": newID(),
		"username":      d.Username,
		"email":         d.Email,
		"password":      "[REDACTED]",
		"role":          string(d.Role),
		"phone":         d.Phone,
		"newsletter":    d.Newsletter,
	}).Info("Form data")
	return nil
}

// UserSink 建立使用者帳號；勾選電子報時於背景加入訂閱
type UserSink struct {
	DB      database.DB
	Workers worker.Pool
	Logger  logrus.FieldLogger
}

func (s *UserSink) Accept(ctx context.Context, d model.FormData) error {
	hash, err := hashPassword(d.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Username:     d.Username,
		Email:        strings.ToLower(d.Email),
		PasswordHash: hash,
		Phone:        d.Phone,
		Role:         d.Role,
		Newsletter:   d.Newsletter,
	}
	created, err := createUser(ctx, s.DB, u)
	if err != nil {
		return err
	}
	if !created.Newsletter {
		return nil
	}

	userID, email := created.ID, created.Email
	err = s.Workers.Submit(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, subscribeTimeout)
		defer cancel()
		if err := addSubscriber(ctx, s.DB, userID, email); err != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("newsletter enrollment failed")
		}
	})
	if err != nil {
		// 使用者已建立，訂閱失敗不回滾
		s.Logger.WithError(err).WithField("user_id", userID).Warn("newsletter enrollment not queued")
	}
	return nil
}

// Sinks runs each sink in order and stops at the first error.
type Sinks []form.Sink

func (ss Sinks) Accept(ctx context.Context, d model.FormData) error {
	for _, s := range ss {
		if err := s.Accept(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// ErrSinkUnavailable is returned while the breaker is open.
var ErrSinkUnavailable = errors.New("submission sink unavailable")

// BreakerSink 以 circuit breaker 保護下游 sink；重複帳號不計入失敗
type BreakerSink struct {
	cb   *gobreaker.CircuitBreaker
	next form.Sink
}

func NewBreakerSink(name string, next form.Sink) *BreakerSink {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, store.ErrDuplicateUser)
		},
	})
	return &BreakerSink{cb: cb, next: next}
}

func (b *BreakerSink) Accept(ctx context.Context, d model.FormData) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Accept(ctx, d)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}
	return err
}

// State exposes the breaker state for logging and tests.
func (b *BreakerSink) State() gobreaker.State {
	return b.cb.State()
}
