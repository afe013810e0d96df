package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vovakirdan/shared-garden/internal/garden"
	"github.com/vovakirdan/shared-garden/internal/snapshot"
)

func TestFetchState(t *testing.T) {
	s := garden.DefaultSettings()
	s.Seed = 3
	g, err := garden.New([]string{"ann", "bob"}, s)
	if err != nil {
		t.Fatal(err)
	}
	codec, err := snapshot.NewCodec(false)
	if err != nil {
		t.Fatal(err)
	}
	defer codec.Close()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/state" {
			http.NotFound(w, r)
			return
		}
		compress := strings.Contains(r.Header.Get("Accept-Encoding"), "zstd")
		data, err := codec.EncodeState(g.Snapshot(), compress)
		if err != nil {
			t.Error(err)
		}
		if compress {
			w.Header().Set("Content-Encoding", "zstd")
		}
		w.Write(data)
	}))
	defer ts.Close()

	state, err := fetchState(context.Background(), ts.Client(), ts.URL+"/", codec)
	if err != nil {
		t.Fatalf("fetchState: %v", err)
	}
	restored, err := garden.Restore(state)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got, want := garden.Render(restored), garden.Render(g); got != want {
		t.Errorf("rendered state differs:\n%s\nwant:\n%s", got, want)
	}

	if _, err := fetchState(context.Background(), ts.Client(), ts.URL+"/missing", codec); err == nil {
		t.Error("expected error for a 404")
	}
}
