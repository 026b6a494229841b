package snsconfirm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestConfirm(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	if err := c.Confirm(context.Background(), srv.URL+"/confirm?Token=abc"); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if gotPath != "/confirm" {
		t.Errorf("confirmed path = %q, want /confirm", gotPath)
	}
}

func TestConfirm_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	if err := c.Confirm(context.Background(), srv.URL); err == nil {
		t.Error("Confirm() should report non-2xx answers")
	}
}

func TestConfirm_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(time.Second)
	if err := c.Confirm(context.Background(), url); err == nil {
		t.Error("Confirm() should report unreachable endpoints")
	}
}
