package api

import (
	"errors"
	"testing"
	"time"

	"github.com/diogo/goalchat/internal/config"
	apierrors "github.com/diogo/goalchat/internal/errors"
)

// TestNewClient tests the NewClient function
func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		baseURL     string
		opts        []ClientOption
		wantErr     bool
		wantBaseURL string
		wantTimeout time.Duration
	}{
		{
			name:        "defaults",
			baseURL:     "http://localhost:8000",
			wantBaseURL: "http://localhost:8000",
			wantTimeout: 300 * time.Second,
		},
		{
			name:        "trailing slash trimmed",
			baseURL:     "https://assistant.example.com/api/",
			wantBaseURL: "https://assistant.example.com/api",
			wantTimeout: 300 * time.Second,
		},
		{
			name:        "custom timeout",
			baseURL:     "http://localhost:8000",
			opts:        []ClientOption{WithTimeout(30 * time.Second)},
			wantBaseURL: "http://localhost:8000",
			wantTimeout: 30 * time.Second,
		},
		{
			name:    "empty endpoint",
			baseURL: "",
			wantErr: true,
		},
		{
			name:    "missing scheme",
			baseURL: "localhost:8000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]ClientOption{WithHTTPClient(&MockHttpClient{})}, tt.opts...)
			client, err := NewClient(tt.baseURL, opts...)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, apierrors.ErrInvalidEndpoint) {
					t.Errorf("expected ErrInvalidEndpoint, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			if client.BaseURL() != tt.wantBaseURL {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.wantBaseURL)
			}
			if client.timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", client.timeout, tt.wantTimeout)
			}
		})
	}
}

func TestNewClient_RealTransport(t *testing.T) {
	client, err := NewClient("http://localhost:8000")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	defer client.Close()

	if client.httpClient == nil {
		t.Fatal("expected a tls-client transport")
	}
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIEndpoint = "https://assistant.example.com"
	cfg.TimeoutSeconds = 45

	client, err := NewClientFromConfig(cfg, WithHTTPClient(&MockHttpClient{}))
	if err != nil {
		t.Fatalf("NewClientFromConfig() error = %v", err)
	}
	if client.ChatURL() != "https://assistant.example.com/chat" {
		t.Errorf("ChatURL() = %q", client.ChatURL())
	}
	if client.timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", client.timeout)
	}
}

func TestClient_SetBaseURL(t *testing.T) {
	client, err := NewClient("http://localhost:8000", WithHTTPClient(&MockHttpClient{}))
	if err != nil {
		t.Fatal(err)
	}

	if err := client.SetBaseURL("https://other.example.com/"); err != nil {
		t.Fatalf("SetBaseURL() error = %v", err)
	}
	if client.ChatURL() != "https://other.example.com/chat" {
		t.Errorf("ChatURL() = %q", client.ChatURL())
	}

	if err := client.SetBaseURL("not a url"); err == nil {
		t.Error("expected error for invalid URL")
	}
	if client.BaseURL() != "https://other.example.com" {
		t.Errorf("invalid SetBaseURL should not change the endpoint, got %q", client.BaseURL())
	}
}

func TestClient_Close(t *testing.T) {
	mock := &MockHttpClient{}
	client, err := NewClient("http://localhost:8000", WithHTTPClient(mock))
	if err != nil {
		t.Fatal(err)
	}
	client.Close()
	if !mock.closed {
		t.Error("Close should release idle connections")
	}
}
