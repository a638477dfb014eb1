package lastfm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"
)

// DefaultCallbackAddr is where the local authorization callback listens.
const DefaultCallbackAddr = "127.0.0.1:9847"

// ErrNoToken is returned when the callback arrived without a token.
var ErrNoToken = errors.New("no token received")

const callbackPage = `<!DOCTYPE html>
<html>
<head><title>Last.fm Authorization</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 50px;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

// AuthServer receives the browser redirect after the user authorizes the app.
type AuthServer struct {
	server    *http.Server
	listener  net.Listener
	tokenChan chan string
	done      chan struct{}
}

// StartAuthServer listens on addr and serves /callback.
func StartAuthServer(addr string) (*AuthServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	as := &AuthServer{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		listener:  listener,
		tokenChan: make(chan string, 1),
		done:      make(chan struct{}),
	}
	mux.HandleFunc("/callback", as.handleCallback)

	go func() {
		_ = as.server.Serve(listener)
		close(as.done)
	}()

	return as, nil
}

func (as *AuthServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	w.Header().Set("Content-Type", "text/html")
	if token != "" {
		fmt.Fprintf(w, callbackPage, "Authorization Successful!", "You can close this window.")
	} else {
		fmt.Fprintf(w, callbackPage, "Authorization Failed", "No token received. Please try again.")
	}

	// first callback wins
	select {
	case as.tokenChan <- token:
	default:
	}
}

// CallbackURL is the URL Last.fm should redirect to.
func (as *AuthServer) CallbackURL() string {
	return "http://" + as.listener.Addr().String() + "/callback"
}

// TokenChan returns the channel that receives the auth token.
func (as *AuthServer) TokenChan() <-chan string {
	return as.tokenChan
}

// Shutdown stops the auth server.
func (as *AuthServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = as.server.Shutdown(ctx)
	<-as.done
}

// Link runs the browser authorization flow and returns the linked account.
// open is called with the authorization URL; pass OpenBrowser or a printer.
func Link(ctx context.Context, c *Client, addr string, open func(string) error) (username, sessionKey string, err error) {
	as, err := StartAuthServer(addr)
	if err != nil {
		return "", "", err
	}
	defer as.Shutdown()

	requestToken, err := c.GetToken()
	if err != nil {
		return "", "", err
	}
	if err := open(c.GetAuthURL(requestToken, as.CallbackURL())); err != nil {
		return "", "", fmt.Errorf("open authorization url: %w", err)
	}

	var token string
	select {
	case token = <-as.TokenChan():
	case <-ctx.Done():
		return "", "", ctx.Err()
	}
	if token == "" {
		return "", "", ErrNoToken
	}

	return c.GetSession(token)
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
