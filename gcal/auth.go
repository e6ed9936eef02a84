package gcal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Scopes needed to look up the calendar and write events
var Scopes = []string{
	calendar.CalendarEventsScope,
	calendar.CalendarReadonlyScope,
}

// OAuthConfig reads the client secrets downloaded from the Google Cloud console
func OAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file %s: %w", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	return cfg, nil
}

// LoadToken reads an oauth2.Token from a JSON file
func LoadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from file %s: %w", path, err)
	}
	return tok, nil
}

// SaveToken writes tok to path, readable only by the owner
func SaveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("could not create token directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token to %s: %w", path, err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

// Authorize runs the authorization code flow. It prints the consent URL to
// out and waits on a local listener for the redirect carrying the code.
// The redirect URL in the client secrets must point at listenAddr.
func Authorize(ctx context.Context, cfg *oauth2.Config, listenAddr string, out io.Writer) (*oauth2.Token, error) {
	redirect, err := url.Parse(cfg.RedirectURL)
	if err != nil || redirect.Host == "" {
		redirect = &url.URL{Scheme: "http", Host: listenAddr, Path: "/oauth2callback"}
	} else {
		redirect.Host = listenAddr
	}
	local := *cfg
	local.RedirectURL = redirect.String()

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener on %s: %w", listenAddr, err)
	}
	defer listener.Close()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	server := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code := r.URL.Query().Get("code")
			if code == "" {
				http.Error(w, "Authorization code not found", http.StatusBadRequest)
				select {
				case errCh <- errors.New("authorization code not found in redirect URL"):
				default:
				}
				return
			}
			fmt.Fprintln(w, "Authentication successful! You can close this window.")
			select {
			case codeCh <- code:
			default:
			}
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- fmt.Errorf("HTTP server error: %w", err):
			default:
			}
		}
	}()
	defer server.Shutdown(context.Background())

	authURL := local.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Fprintf(out, "Open the following URL in your browser to authorize simplecal:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		tok, err := local.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("unable to retrieve token from Google: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization aborted: %w", ctx.Err())
	}
}

// NewService builds a Calendar service from the client secrets and a token
// saved by Authorize. Refreshed tokens are written back to tokenFile.
func NewService(ctx context.Context, credentialsFile, tokenFile string, logger *slog.Logger) (*calendar.Service, error) {
	cfg, err := OAuthConfig(credentialsFile)
	if err != nil {
		return nil, err
	}
	tok, err := LoadToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("no usable token at %s, run `simplecal gcal auth` first: %w", tokenFile, err)
	}

	src := &savingTokenSource{
		base:   cfg.TokenSource(ctx, tok),
		last:   tok,
		path:   tokenFile,
		logger: logger,
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(oauth2.NewClient(ctx, src)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google Calendar service: %w", err)
	}
	return srv, nil
}

// savingTokenSource persists the token whenever the underlying source refreshes it
type savingTokenSource struct {
	base   oauth2.TokenSource
	last   *oauth2.Token
	path   string
	logger *slog.Logger
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last.AccessToken || tok.RefreshToken != s.last.RefreshToken {
		if err := SaveToken(s.path, tok); err != nil {
			s.logger.Warn("could not save refreshed token", "path", s.path, "error", err)
		} else {
			s.logger.Debug("saved refreshed token", "path", s.path)
		}
		s.last = tok
	}
	return tok, nil
}
