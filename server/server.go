package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prebid/prebid-gpp/config"
	"github.com/prebid/prebid-gpp/logger"
)

// Listen blocks forever, serving GPP decode requests on the given port. This will block forever, until the process is shut down.
//
// A nil registry disables the Prometheus listener.
func Listen(cfg *config.Configuration, handler http.Handler, adminHandler http.Handler, registry *prometheus.Registry) error {
	stopSignals := make(chan os.Signal, 1)
	signal.Notify(stopSignals, syscall.SIGTERM, syscall.SIGINT)

	// Run the servers. Fan any process-stopper signals out to each server for graceful shutdowns.
	var (
		done     = make(chan struct{})
		stoppers []chan<- os.Signal
	)

	start := func(name string, server *http.Server) error {
		listener, err := newListener(server.Addr)
		if err != nil {
			return err
		}
		stop := make(chan os.Signal)
		stoppers = append(stoppers, stop)
		go shutdownAfterSignals(server, stop, done)
		go runServer(server, name, listener)
		return nil
	}

	if err := start("Main", newMainServer(cfg, handler)); err != nil {
		return err
	}
	if cfg.AdminPort != 0 {
		if err := start("Admin", newAdminServer(cfg, adminHandler)); err != nil {
			return err
		}
	}
	if cfg.Metrics.Prometheus.Port != 0 && registry != nil {
		if err := start("Prometheus", newPrometheusServer(cfg, registry)); err != nil {
			return err
		}
	}

	wait(stopSignals, done, stoppers...)
	return nil
}

func newAdminServer(cfg *config.Configuration, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    cfg.Host + ":" + strconv.Itoa(cfg.AdminPort),
		Handler: handler,
	}
}

func newMainServer(cfg *config.Configuration, handler http.Handler) *http.Server {
	var serverHandler = handler
	if cfg.EnableGzip {
		serverHandler = gziphandler.GzipHandler(handler)
	}

	return &http.Server{
		Addr:         cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Handler:      serverHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
}

func runServer(server *http.Server, name string, listener net.Listener) {
	logger.Infof("%s server starting on: %s", name, server.Addr)
	err := server.Serve(listener)
	logger.Errorf("%s server quit with error: %v", name, err)
}

func newListener(address string) (net.Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("Error listening for TCP connections on %s: %v", address, err)
	}

	if casted, ok := ln.(*net.TCPListener); ok {
		ln = &tcpKeepAliveListener{casted}
	} else {
		logger.Warnf("net.Listen(\"tcp\", \"addr\") didn't return a TCPListener. Keep-alive is not enabled on %s", address)
	}

	return ln, nil
}

func wait(inbound <-chan os.Signal, done <-chan struct{}, outbound ...chan<- os.Signal) {
	sig := <-inbound

	for i := 0; i < len(outbound); i++ {
		go sendSignal(outbound[i], sig)
	}

	for i := 0; i < len(outbound); i++ {
		<-done
	}
}

func shutdownAfterSignals(server *http.Server, stopper <-chan os.Signal, done chan<- struct{}) {
	sig := <-stopper

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var s struct{}
	logger.Infof("Stopping %s because of signal: %s", server.Addr, sig.String())
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Failed to shutdown %s: %v", server.Addr, err)
	}
	done <- s
}

func sendSignal(to chan<- os.Signal, sig os.Signal) {
	to <- sig
}
