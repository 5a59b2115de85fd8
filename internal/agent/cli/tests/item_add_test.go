package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mvoronkova/readlist/internal/agent/api"
	"github.com/mvoronkova/readlist/internal/agent/cli"
	"github.com/mvoronkova/readlist/internal/agent/config"
	"github.com/mvoronkova/readlist/internal/agent/memory"
)

func withDeps(t *testing.T, fn func()) {
	t.Helper()

	origNew := cli.NewAPIClient
	origRead := cli.ReadPassword
	origSave := cli.SaveItemsToFile

	t.Cleanup(func() {
		cli.NewAPIClient = origNew
		cli.ReadPassword = origRead
		cli.SaveItemsToFile = origSave
	})

	fn()
}

func TestItemAdd_Success(t *testing.T) {
	withDeps(t, func() {
		// перехватим входящий JSON запроса
		var got map[string]any

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Fatalf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/items" {
				t.Fatalf("expected /items, got %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer token" {
				t.Fatalf("expected Bearer token, got %q", auth)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("decode request: %v", err)
			}

			now := time.Now().Format(time.RFC3339Nano)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{
				"id":"11111111-1111-1111-1111-111111111111",
				"title":"The Go Programming Language",
				"kind":"book",
				"status":"planned",
				"priority":"high",
				"notes":"",
				"tags":["go"],
				"updated_at":"` + now + `",
				"created_at":"` + now + `"
			}`))
		}))
		defer srv.Close()

		cli.NewAPIClient = func(_ string) *api.Client { return api.NewClient(srv.URL) }

		saved := false
		cli.SaveItemsToFile = func(_ string, _ *memory.ItemsStore) error {
			saved = true
			return nil
		}

		app := &cli.App{
			ServerURL: srv.URL,
			ItemsPath: filepath.Join(t.TempDir(), "items.json"),
			Items:     memory.NewItems(),
			Creds:     &config.Credentials{AccessToken: "token"},
		}

		cmd := cli.ItemAdd(app)
		cmd.SetArgs([]string{
			"--title", "The Go Programming Language",
			"--kind", "book",
			"--priority", "high",
			"--tag", "go",
		})

		var out bytes.Buffer
		cmd.SetOut(&out)

		if err := cmd.Execute(); err != nil {
			t.Fatalf("execute: %v", err)
		}

		// проверим содержимое запроса
		if got["title"] != "The Go Programming Language" {
			t.Fatalf("title mismatch, got=%v", got["title"])
		}
		if got["kind"] != "book" {
			t.Fatalf("kind mismatch, got=%v", got["kind"])
		}
		// пустой статус не должен улетать (omitempty)
		if _, ok := got["status"]; ok {
			t.Fatalf("status should not be present in request")
		}

		if !saved {
			t.Fatalf("expected SaveItemsToFile called")
		}

		// элемент должен попасть в локальный кеш
		if _, err := app.Items.Get("11111111-1111-1111-1111-111111111111"); err != nil {
			t.Fatalf("expected item cached locally: %v", err)
		}

		if !strings.Contains(out.String(), "item created: 11111111-1111-1111-1111-111111111111") {
			t.Fatalf("unexpected output: %s", out.String())
		}
	})
}

func TestItemAdd_NoAccessToken_ReturnsError(t *testing.T) {
	app := &cli.App{
		ServerURL: "http://127.0.0.1:8080",
		Items:     memory.NewItems(),
		Creds:     &config.Credentials{},
	}

	cmd := cli.ItemAdd(app)
	cmd.SetArgs([]string{"--title", "X Y", "--kind", "book"})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no access_token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestItemAdd_MissingRequiredFlags_ReturnsError(t *testing.T) {
	app := &cli.App{
		ServerURL: "http://127.0.0.1:8080",
		Items:     memory.NewItems(),
		Creds:     &config.Credentials{AccessToken: "token"},
	}

	cmd := cli.ItemAdd(app)
	// --kind пропущен
	cmd.SetArgs([]string{"--title", "X Y"})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Fatalf("unexpected error: %v", err)
	}
}
