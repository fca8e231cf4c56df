package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/folio/internal/server/config"
	"github.com/dmitrijs2005/folio/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func memoryConfig(t *testing.T) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = config.MemoryDSN
	c.HTTPAddr = freeAddr(t)
	c.GRPCAddr = freeAddr(t)
	c.LogLevel = "error"
	return c
}

func TestApp_RunServesHealthAndStops(t *testing.T) {
	c := memoryConfig(t)

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", c.HTTPAddr))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

type failingMigrations struct{ *repomanager.MemoryRepositoryManager }

func (failingMigrations) RunMigrations(context.Context) error { return errors.New("boom") }

func TestNewApp_Errors(t *testing.T) {
	orig := openRepositories
	t.Cleanup(func() { openRepositories = orig })

	openRepositories = func(context.Context, *config.Config) (repomanager.RepositoryManager, error) {
		return nil, errors.New("refused")
	}
	_, err := NewApp(context.Background(), memoryConfig(t))
	require.ErrorContains(t, err, "db init error")

	openRepositories = func(context.Context, *config.Config) (repomanager.RepositoryManager, error) {
		return failingMigrations{repomanager.NewMemoryRepositoryManager()}, nil
	}
	_, err = NewApp(context.Background(), memoryConfig(t))
	require.ErrorContains(t, err, "migrations error")
}
