package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig configures the interactive Google sign-in flow.
type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
}

// AcquireGoogleCredential runs a loopback OAuth2 flow against Google
// and returns the ID token the Admin Obras service accepts as a login
// credential. It starts a localhost listener, opens the browser, and
// waits for the redirect.
func AcquireGoogleCredential(ctx context.Context, cfg GoogleOAuthConfig) (string, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return "", fmt.Errorf("google oauth credentials missing: set google.client_id and google.client_secret")
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer func() { _ = listener.Close() }()

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  fmt.Sprintf("http://%s/callback", listener.Addr().String()),
		Scopes:       []string{"openid", "email", "profile"},
	}

	state, err := randomState()
	if err != nil {
		return "", err
	}

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errChan <- errors.New("oauth state mismatch")
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- errors.New("no authorization code in callback")
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		_, _ = fmt.Fprintln(w, "Signed in. You can close this tab and return to the terminal.")
		codeChan <- code
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serveErr := server.Serve(listener); !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	authURL := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	slog.Info("Opening your browser to sign in with Google...")
	slog.Info("If the browser doesn't open, visit:", "url", authURL)
	openBrowser(authURL)

	var code string
	select {
	case code = <-codeChan:
	case err := <-errChan:
		return "", err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(5 * time.Minute):
		return "", errors.New("timeout waiting for Google sign-in")
	}

	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("google response did not include an id token")
	}
	return idToken, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
