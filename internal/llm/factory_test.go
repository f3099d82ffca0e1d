package llm

import "testing"

func TestNewClient_None(t *testing.T) {
	client, err := NewClient("none", "", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil client for disabled provider, got %T", client)
	}
}

func TestNewClient_EmptyProvider(t *testing.T) {
	client, err := NewClient("", "", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if client != nil {
		t.Fatalf("expected nil client for empty provider, got %T", client)
	}
}

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient("ollama", "llama3", "")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	ollamaClient, ok := client.(*OllamaClient)
	if !ok {
		t.Fatalf("expected OllamaClient, got %T", client)
	}
	if ollamaClient.baseURL != defaultOllamaBaseURL {
		t.Errorf("baseURL = %q, want %q", ollamaClient.baseURL, defaultOllamaBaseURL)
	}
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient("unknown", "model", "")
	if err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}
