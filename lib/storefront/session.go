// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefront

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Session is the persisted login state: the platform's session cookies
// plus the identity they belong to. Stored at SessionFilePath and
// shared by every boxoffice invocation until "boxoffice logout".
type Session struct {
	// APIURL is the platform the cookies were issued by. A session is
	// only restored into a client talking to the same platform.
	APIURL string `json:"api_url"`

	Email    string `json:"email,omitempty"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type,omitempty"`

	Cookies []SessionCookie `json:"cookies"`
	SavedAt time.Time       `json:"saved_at"`
}

// SessionCookie is one cookie from the jar. The jar only reveals name
// and value, which is all the platform needs back.
type SessionCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionFilePath returns the path of the session file: the
// BOXOFFICE_SESSION_FILE environment variable if set, otherwise
// $XDG_CONFIG_HOME/boxoffice/session.json (~/.config when unset).
func SessionFilePath() string {
	if envPath := os.Getenv("BOXOFFICE_SESSION_FILE"); envPath != "" {
		return envPath
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "boxoffice-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "boxoffice", "session.json")
}

// LoadSessionFrom reads a session file. A missing file returns an
// error wrapping os.ErrNotExist.
func LoadSessionFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	if session.APIURL == "" {
		return nil, fmt.Errorf("session file %s has no api_url", path)
	}
	if len(session.Cookies) == 0 {
		return nil, fmt.Errorf("session file %s has no cookies", path)
	}
	return &session, nil
}

// SaveSessionTo writes a session file with mode 0600, creating the
// parent directory with mode 0700.
func SaveSessionTo(session *Session, path string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}
	return nil
}

// RemoveSession deletes a session file. A missing file is not an error.
func RemoveSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file %s: %w", path, err)
	}
	return nil
}

// Session snapshots the client's cookies for the platform. It returns
// nil when the jar holds no cookies (not logged in).
func (client *Client) Session() *Session {
	cookies := client.jar.Cookies(client.parsedBase)
	if len(cookies) == 0 {
		return nil
	}
	session := &Session{APIURL: client.baseURL, SavedAt: time.Now().UTC()}
	for _, cookie := range cookies {
		session.Cookies = append(session.Cookies, SessionCookie{Name: cookie.Name, Value: cookie.Value})
	}
	return session
}

// RestoreSession loads a saved session's cookies into the jar. It
// refuses sessions issued by a different platform.
func (client *Client) RestoreSession(session *Session) error {
	if session == nil {
		return fmt.Errorf("restore session: nil session")
	}
	if session.APIURL != client.baseURL {
		return fmt.Errorf("restore session: session belongs to %s, client talks to %s", session.APIURL, client.baseURL)
	}
	cookies := make([]*http.Cookie, 0, len(session.Cookies))
	for _, saved := range session.Cookies {
		cookies = append(cookies, &http.Cookie{Name: saved.Name, Value: saved.Value, Path: "/"})
	}
	client.jar.SetCookies(client.parsedBase, cookies)
	return nil
}

// ForgetSession drops every cookie the client holds.
func (client *Client) ForgetSession() {
	client.jar.reset()
}

// sessionJar is a cookie jar that can be emptied in place while the
// http.Client holding it is in use.
type sessionJar struct {
	mutex sync.Mutex
	jar   *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &sessionJar{jar: jar}, nil
}

func (jar *sessionJar) SetCookies(target *url.URL, cookies []*http.Cookie) {
	jar.mutex.Lock()
	defer jar.mutex.Unlock()
	jar.jar.SetCookies(target, cookies)
}

func (jar *sessionJar) Cookies(target *url.URL) []*http.Cookie {
	jar.mutex.Lock()
	defer jar.mutex.Unlock()
	return jar.jar.Cookies(target)
}

func (jar *sessionJar) reset() {
	jar.mutex.Lock()
	defer jar.mutex.Unlock()
	// cookiejar.New cannot fail with nil options.
	fresh, _ := cookiejar.New(nil)
	jar.jar = fresh
}
