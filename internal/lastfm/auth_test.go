package lastfm

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestAuthServer_DeliversToken(t *testing.T) {
	as, err := StartAuthServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("StartAuthServer: %v", err)
	}
	defer as.Shutdown()

	if !strings.HasSuffix(as.CallbackURL(), "/callback") {
		t.Errorf("CallbackURL() = %q", as.CallbackURL())
	}

	resp, err := http.Get(as.CallbackURL() + "?token=abc")
	if err != nil {
		t.Fatalf("GET callback: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if !strings.Contains(string(body), "Successful") {
		t.Errorf("body = %q, want success page", body)
	}
	if got := <-as.TokenChan(); got != "abc" {
		t.Errorf("token = %q, want %q", got, "abc")
	}
}

func TestAuthServer_MissingToken(t *testing.T) {
	as, err := StartAuthServer("127.0.0.1:0")
	if err != nil {
		t.Fatalf("StartAuthServer: %v", err)
	}
	defer as.Shutdown()

	resp, err := http.Get(as.CallbackURL())
	if err != nil {
		t.Fatalf("GET callback: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if !strings.Contains(string(body), "Failed") {
		t.Errorf("body = %q, want failure page", body)
	}
	if got := <-as.TokenChan(); got != "" {
		t.Errorf("token = %q, want empty", got)
	}
}
