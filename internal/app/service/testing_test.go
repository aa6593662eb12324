package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitebakers/brownie-backend/internal/app/repository"
	"github.com/bitebakers/brownie-backend/internal/db"
	"github.com/bitebakers/brownie-backend/internal/websocket"
)

// stubMailer records sends and can be told to fail.
type stubMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	attempts int
	failNext bool
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *stubMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if m.failNext {
		m.failNext = false
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *stubMailer) attemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *stubMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *stubMailer) lastMail() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

// stubGoogleVerifier returns a fixed profile or an error.
type stubGoogleVerifier struct {
	profile *GoogleProfile
	err     error
}

func (v *stubGoogleVerifier) Verify(_ context.Context, _ string) (*GoogleProfile, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.profile, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

// newTestNotificationService wires a real notification service against
// the test database and a running hub.
func newTestNotificationService(testDB *gorm.DB) NotificationService {
	hub := websocket.NewHub()
	go hub.Run()
	return NewNotificationService(repository.NewNotificationRepository(testDB), hub)
}
