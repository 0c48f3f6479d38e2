package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/knowmebench/knowme-eval/api"
	"github.com/knowmebench/knowme-eval/internal/config"
	"github.com/knowmebench/knowme-eval/internal/store"
)

type stubStore struct {
	closeCalled int
	closeErr    error
}

func (s *stubStore) SaveRun(context.Context, *store.RunRecord) error { return nil }
func (s *stubStore) GetRun(context.Context, string) (*store.RunRecord, error) {
	return nil, nil
}
func (s *stubStore) ListRuns(context.Context, store.RunFilter) ([]*store.RunRecord, error) {
	return nil, nil
}
func (s *stubStore) Close() error {
	s.closeCalled++
	return s.closeErr
}

func saveServerGlobals(t *testing.T) {
	t.Helper()

	oldStderrWriter := stderrWriter
	oldLoadConfig := loadConfig
	oldOpenStore := openStore
	oldNewServer := newServer
	oldRunServer := runServer

	t.Cleanup(func() {
		stderrWriter = oldStderrWriter
		loadConfig = oldLoadConfig
		openStore = oldOpenStore
		newServer = oldNewServer
		runServer = oldRunServer
	})
}

func TestRunMainStartsServer(t *testing.T) {
	saveServerGlobals(t)
	t.Setenv("KNOWME_EVAL_DISABLE_AUTH", "true")
	t.Setenv("KNOWME_EVAL_API_KEY", "")

	st := &stubStore{}
	var gotAddr string

	loadConfig = func(path string) (*config.Config, error) {
		return &config.Config{Server: config.ServerConfig{Addr: ":9090"}}, nil
	}
	openStore = func(cfg *config.Config) (store.Store, error) { return st, nil }
	runServer = func(srv *api.Server, addr string) error {
		gotAddr = addr
		return nil
	}

	if code := runMain(nil); code != 0 {
		t.Fatalf("runMain = %d, want 0", code)
	}
	if gotAddr != ":9090" {
		t.Fatalf("addr = %q, want config addr", gotAddr)
	}
	if st.closeCalled != 1 {
		t.Fatalf("store Close called %d times, want 1", st.closeCalled)
	}
}

func TestRunMainAddrFlagOverridesConfig(t *testing.T) {
	saveServerGlobals(t)
	t.Setenv("KNOWME_EVAL_DISABLE_AUTH", "true")
	t.Setenv("KNOWME_EVAL_API_KEY", "")

	loadConfig = func(path string) (*config.Config, error) {
		return &config.Config{Server: config.ServerConfig{Addr: ":9090"}}, nil
	}
	openStore = func(cfg *config.Config) (store.Store, error) { return &stubStore{}, nil }

	var gotAddr string
	runServer = func(srv *api.Server, addr string) error {
		gotAddr = addr
		return nil
	}

	if code := runMain([]string{"-addr", ":7000"}); code != 0 {
		t.Fatalf("runMain = %d, want 0", code)
	}
	if gotAddr != ":7000" {
		t.Fatalf("addr = %q, want flag value", gotAddr)
	}
}

func TestRunMainConfigError(t *testing.T) {
	saveServerGlobals(t)

	var buf bytes.Buffer
	stderrWriter = &buf
	loadConfig = func(path string) (*config.Config, error) {
		return nil, errors.New("config: boom")
	}

	if code := runMain(nil); code != 1 {
		t.Fatalf("runMain = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "config: boom") {
		t.Fatalf("stderr = %q, want config error", buf.String())
	}
}

func TestRunMainStoreError(t *testing.T) {
	saveServerGlobals(t)

	var buf bytes.Buffer
	stderrWriter = &buf
	loadConfig = func(path string) (*config.Config, error) { return &config.Config{}, nil }
	openStore = func(cfg *config.Config) (store.Store, error) {
		return nil, errors.New("store: boom")
	}

	if code := runMain(nil); code != 1 {
		t.Fatalf("runMain = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "store: boom") {
		t.Fatalf("stderr = %q, want store error", buf.String())
	}
}
