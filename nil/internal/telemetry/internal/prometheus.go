package internal

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	promServer   *http.Server
	promServerMu sync.Mutex
)

func StartPrometheusServer(port int) error {
	if port == 0 {
		return nil
	}

	listener, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	promServerMu.Lock()
	promServer = server
	promServerMu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("prometheus endpoint stopped")
		}
	}()
	return nil
}

func StopPrometheusServer(ctx context.Context) {
	promServerMu.Lock()
	server := promServer
	promServer = nil
	promServerMu.Unlock()

	if server != nil {
		_ = server.Shutdown(context.WithoutCancel(ctx))
	}
}
