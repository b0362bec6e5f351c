package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mstepanov/contact-backend/internal/config"
	"github.com/mstepanov/contact-backend/internal/contact"
)

type fakeStore struct {
	saved []*contact.Submission
	err   error
}

func (f *fakeStore) SaveSubmission(_ context.Context, sub *contact.Submission) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, sub)
	return "stored-id", nil
}

type fakeNotifier struct {
	sent []*contact.Submission
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, sub *contact.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sub)
	return nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second
	cfg.RateLimitEnabled = false
	return &cfg
}

// newTestServer builds the full server (middleware chain included) around
// fake collaborators, without a rate limiter backend.
func newTestServer(cfg *config.Config, st *fakeStore, nt *fakeNotifier) *stdhttp.Server {
	logger := zerolog.New(nil)
	svc := contact.NewService(st, nt, &logger)
	return NewServer(svc, cfg, nil, &logger)
}

// newRateLimitedServer is newTestServer with a Redis-backed limiter.
func newRateLimitedServer(cfg *config.Config, rdb *redis.Client) *stdhttp.Server {
	logger := zerolog.New(nil)
	svc := contact.NewService(&fakeStore{}, &fakeNotifier{}, &logger)
	return NewServer(svc, cfg, rdb, &logger)
}
