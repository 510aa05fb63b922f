package main

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestListenAndServe_ReachableOnReturn(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := &http.Server{
		Addr: "127.0.0.1:0",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	}
	addr, err := listenAndServe(srv, log)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer srv.Shutdown(context.Background())

	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("expected the server to accept connections immediately: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}

func TestListenAndServe_AddrInUse(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	first := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	addr, err := listenAndServe(first, log)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer first.Shutdown(context.Background())

	second := &http.Server{Addr: addr.String(), Handler: http.NotFoundHandler()}
	if _, err := listenAndServe(second, log); err == nil {
		t.Error("expected an error binding a port already in use")
	}
}
