package httpapi

import (
	"fmt"
	"net/http"

	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// handleLogin redirects to the Google consent page.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.auth == nil {
		http.Error(w, "Authentication setup failed: OAuth is not configured", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, s.auth.AuthCodeURL(randHex(8)), http.StatusFound)
}

// handleCallback exchanges the authorization code, identifies the user and
// stores the credential. Everything is keyed to "demo-user" so the webhook
// finds the token without session plumbing; the real Google ID is stored
// too for later multi-user support.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Authentication failed: missing code", http.StatusBadRequest)
		return
	}

	token, err := s.auth.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("oauth code exchange failed", "error", err)
		http.Error(w, fmt.Sprintf("Authentication failed: %v", err), http.StatusInternalServerError)
		return
	}

	if err := s.tokens.Set(ctx, defaultUserID, token); err != nil {
		s.logger.Error("storing token failed", "error", err)
		http.Error(w, "Authentication failed: could not store credentials", http.StatusInternalServerError)
		return
	}

	// Identifying the user is best-effort: a failed userinfo lookup must
	// not lose the login.
	if svc, err := oauth2api.NewService(ctx, option.WithTokenSource(s.auth.TokenSource(ctx, token))); err == nil {
		if info, err := svc.Userinfo.Get().Context(ctx).Do(); err == nil && info.Id != "" {
			s.logger.Info("user authenticated", "email", info.Email)
			if err := s.tokens.Set(ctx, info.Id, token); err != nil {
				s.logger.Warn("storing token by google id failed", "error", err)
			}
		}
	}

	http.Redirect(w, r, s.frontendURL+"?auth=success&userId="+defaultUserID, http.StatusFound)
}
