package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func TestUtils_ShouldDownloadImage(t *testing.T) {
	const body = "fake-image-bytes"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	f, err := DownloadImage(srv.URL)
	if err != nil {
		t.Fatalf("could not download test file: %v", err)
	}
	defer os.Remove(f.Name())

	if !strings.Contains(f.Name(), "image") {
		t.Errorf("the downloaded image should have been saved in a temporary file, got %q", f.Name())
	}

	got, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatalf("could not read downloaded file: %v", err)
	}
	if string(got) != body {
		t.Errorf("downloaded content = %q, want %q", got, body)
	}
}

func TestUtils_ShouldRejectDownloadErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := DownloadImage(srv.URL); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	ok := IsValidUrl("https://github.com/esimov/caire/")
	if !ok {
		t.Errorf("a valid URL should have been provided")
	}
}

func TestUtils_ShouldRejectInvalidUrl(t *testing.T) {
	if IsValidUrl("not-a-url") {
		t.Errorf("expected an invalid URL to be rejected")
	}
}
