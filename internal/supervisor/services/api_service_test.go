// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/schedule"
)

var _ suture.Service = (*APIServerService)(nil)

// newAPIRouter builds the real API router over the built-in schedule.
func newAPIRouter(t *testing.T) http.Handler {
	t.Helper()
	watcher, err := schedule.NewWatcher("", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	h := api.NewHandler(api.HandlerOptions{
		Schedule: watcher,
		Version:  "test",
		Logger:   zerolog.Nop(),
	})
	cfg := api.DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return api.NewRouter(h, cfg).SetupChi()
}

// waitBound polls until svc has a listener.
func waitBound(t *testing.T, svc *APIServerService) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr := svc.Addr(); addr != "" {
			return addr
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("api server did not bind")
	return ""
}

func getJSON(t *testing.T, url string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, body
}

func TestAPIServerConfig_Defaults(t *testing.T) {
	tests := []struct {
		name         string
		in           APIServerConfig
		wantRequest  time.Duration
		wantShutdown time.Duration
	}{
		{"zero", APIServerConfig{}, 30 * time.Second, 10 * time.Second},
		{"negative", APIServerConfig{RequestTimeout: -1, ShutdownTimeout: -1}, 30 * time.Second, 10 * time.Second},
		{"explicit", APIServerConfig{RequestTimeout: 5 * time.Second, ShutdownTimeout: time.Second}, 5 * time.Second, time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAPIServerService(http.NotFoundHandler(), tt.in, zerolog.Nop())
			if svc.config.RequestTimeout != tt.wantRequest || svc.config.ShutdownTimeout != tt.wantShutdown {
				t.Errorf("config = %+v", svc.config)
			}
			srv := svc.newServer()
			if srv.WriteTimeout != tt.wantRequest+5*time.Second {
				t.Errorf("WriteTimeout = %v, want request timeout + 5s", srv.WriteTimeout)
			}
			if svc.String() != "api-server" {
				t.Errorf("String() = %q", svc.String())
			}
		})
	}
}

func TestAPIServerService_ServesRouterAndDrains(t *testing.T) {
	svc := NewAPIServerService(newAPIRouter(t), APIServerConfig{Addr: "127.0.0.1:0"}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	base := "http://" + waitBound(t, svc)

	code, body := getJSON(t, base+"/api/v1/health/ready")
	if code != http.StatusOK {
		t.Fatalf("ready status = %d", code)
	}
	rules := body["data"].(map[string]interface{})["schedule_rules"].(map[string]interface{})
	if rules["weekly"].(float64) != 7 {
		t.Errorf("weekly rules = %v, want 7", rules["weekly"])
	}

	code, body = getJSON(t, base+"/api/v1/selector/index?date=2023-03-15&pool_size=1000")
	if code != http.StatusOK {
		t.Fatalf("index status = %d", code)
	}
	pos := body["data"].(map[string]interface{})["position"].(map[string]interface{})
	if pos["index"].(float64) != 607 || pos["page"].(float64) != 31 || pos["offset"].(float64) != 7 {
		t.Errorf("position = %v, want index 607 page 31 offset 7", pos)
	}

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	if svc.Addr() != "" {
		t.Errorf("Addr() = %q after shutdown, want empty", svc.Addr())
	}
}

func TestAPIServerService_PortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	svc := NewAPIServerService(http.NotFoundHandler(), APIServerConfig{Addr: busy.Addr().String()}, zerolog.Nop())
	err = svc.Serve(context.Background())
	if err == nil {
		t.Fatal("Serve() on a busy port returned nil")
	}
	if !strings.Contains(err.Error(), busy.Addr().String()) {
		t.Errorf("error %q does not name the address", err)
	}
}

func TestAPIServerService_RestartedAfterBindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := busy.Addr().String()

	svc := NewAPIServerService(newAPIRouter(t), APIServerConfig{Addr: addr}, zerolog.Nop())
	sup := suture.New("test-api", suture.Spec{
		FailureThreshold: 100,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := sup.ServeBackground(ctx)

	// First attempts fail on the busy port; the supervisor keeps retrying.
	time.Sleep(50 * time.Millisecond)
	busy.Close()

	base := "http://" + waitBound(t, svc)
	if code, _ := getJSON(t, base+"/api/v1/health/live"); code != http.StatusOK {
		t.Errorf("live status = %d after restart", code)
	}

	cancel()
	<-errCh
}
