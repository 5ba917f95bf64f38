package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lyrebird/internal/notifications"
	"lyrebird/internal/testsupport"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	svc := notifications.NewService(cfg)
	if err := svc.NotifyRunCompleted(context.Background(), "Example", "/music/out.mp3"); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	var captured struct {
		title    string
		tags     string
		priority string
		body     string
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured.body = string(body)
		_ = r.Body.Close()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	svc := notifications.NewService(cfg)

	tests := []struct {
		name           string
		send           func() error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "run completed",
			send: func() error {
				return svc.NotifyRunCompleted(context.Background(), "Never Gonna Give You Up", "/music/out.mp3")
			},
			expectTitle:   "Lyrebird - Complete",
			expectMessage: "Lyrics embedded: Never Gonna Give You Up\nFile: /music/out.mp3",
			expectTags:    "lyrebird,run,completed",
		},
		{
			name: "run reused",
			send: func() error {
				return svc.NotifyRunReused(context.Background(), "Never Gonna Give You Up", "")
			},
			expectTitle:    "Lyrebird - Reused",
			expectMessage:  "Already processed: Never Gonna Give You Up",
			expectTags:     "lyrebird,run,reused",
			expectPriority: "low",
		},
		{
			name: "run failed",
			send: func() error {
				return svc.NotifyRunFailed(context.Background(), "Never Gonna Give You Up", errors.New("no subtitles"))
			},
			expectTitle:    "Lyrebird - Error",
			expectMessage:  "Failed: Never Gonna Give You Up\nno subtitles",
			expectTags:     "lyrebird,error,alert",
			expectPriority: "high",
		},
		{
			name:           "test notification",
			send:           func() error { return svc.TestNotification(context.Background()) },
			expectTitle:    "Lyrebird - Test",
			expectMessage:  "Notification system test",
			expectTags:     "lyrebird,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.send(); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}
			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithNtfyTopic(server.URL))
	svc := notifications.NewService(cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error when ntfy rejects the request")
	}
}
