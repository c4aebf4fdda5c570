// Package youtube wraps the YouTube Data API v3 for the two lookups this
// tool needs: like counts for comment IDs and titles for video IDs.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"takeout-comments/internal/config"
)

type Client struct {
	service *yt.Service
}

// NewClient authenticates against the YouTube Data API and returns a ready
// client. The token is loaded from the store when possible; otherwise the
// device authorization flow runs and the resulting token is persisted.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig, store TokenStore) (*Client, error) {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.force-ssl"},
		Endpoint:     google.Endpoint,
	}

	token, err := getToken(oauthConfig, store)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	// Token source that persists refreshed tokens back to the store.
	tokenSource := &tokenSaver{
		config: oauthConfig,
		token:  token,
		store:  store,
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)

	service, err := yt.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// tokenSaver wraps an oauth2.TokenSource to persist refreshed tokens, so a
// refresh that happens mid-run survives to the next run.
type tokenSaver struct {
	config *oauth2.Config
	token  *oauth2.Token
	store  TokenStore
	mu     sync.Mutex
}

func (ts *tokenSaver) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	newToken, err := ts.config.TokenSource(context.Background(), ts.token).Token()
	if err != nil {
		return nil, err
	}

	if newToken.AccessToken != ts.token.AccessToken {
		log.Println("Token refreshed, saving")
		ts.token = newToken
		if err := ts.store.Save(newToken); err != nil {
			log.Printf("Warning: Failed to save refreshed token: %v", err)
		}
	}

	return newToken, nil
}

// getToken loads a cached token, preferring anything with a refresh token
// even if expired (the tokenSaver will refresh it). Only when no usable
// token exists does the device flow run.
func getToken(config *oauth2.Config, store TokenStore) (*oauth2.Token, error) {
	tok, err := store.Load()
	if err == nil {
		if tok.RefreshToken != "" {
			return tok, nil
		}
		if tok.Valid() {
			return tok, nil
		}
	}

	tok, err = getTokenFromWeb(config)
	if err != nil {
		return nil, err
	}

	if err := store.Save(tok); err != nil {
		log.Printf("Warning: Failed to save token: %v", err)
	}
	return tok, nil
}

func getTokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	tok, err := getTokenWithDeviceFlow(config)
	if err == nil {
		return tok, nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		log.Printf("Device authorization response failed (%s): %s", retrieveErr.Response.Status, strings.TrimSpace(string(retrieveErr.Body)))
	} else {
		log.Printf("Device authorization flow failed: %v", err)
	}

	return nil, fmt.Errorf("device authorization failed: %w. Ensure your OAuth client is created as 'TVs and Limited Input devices' and that the YouTube Data API v3 is enabled", err)
}

func getTokenWithDeviceFlow(config *oauth2.Config) (*oauth2.Token, error) {
	ctx := context.Background()

	resp, err := config.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\n1. Visit %s in your browser (any device works).\n", resp.VerificationURI)
	fmt.Printf("2. Enter this code when prompted: %s\n", resp.UserCode)
	fmt.Printf("Waiting for authorization to complete... (Ctrl+C to cancel)\n\n")

	tok, err := config.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}

	fmt.Printf("Authorization successful.\n\n")
	return tok, nil
}
