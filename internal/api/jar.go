package api

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// CookieStore persists cookies between runs
type CookieStore interface {
	SaveCookies(host string, cookies []*http.Cookie, now time.Time) error
	LoadCookies(now time.Time) (map[string][]*http.Cookie, error)
	ClearCookies() error
}

// PersistentJar is a cookie jar whose cookies survive restarts, the way a
// browser keeps a session across reloads.
type PersistentJar struct {
	mu    sync.Mutex
	jar   *cookiejar.Jar
	store CookieStore
	log   Logger
	now   func() time.Time
}

// NewPersistentJar builds a jar and loads the cookies saved in store. A nil
// store gives an in-memory jar.
func NewPersistentJar(store CookieStore, log Logger) (*PersistentJar, error) {
	if log == nil {
		log = nopLogger{}
	}
	j := &PersistentJar{store: store, log: log, now: time.Now}
	jar, err := newJar()
	if err != nil {
		return nil, err
	}
	j.jar = jar
	if store == nil {
		return j, nil
	}

	saved, err := store.LoadCookies(j.now())
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	for host, cookies := range saved {
		scheme := "http"
		for _, c := range cookies {
			if c.Secure {
				scheme = "https"
				break
			}
		}
		j.jar.SetCookies(&url.URL{Scheme: scheme, Host: host, Path: "/"}, cookies)
	}
	return j, nil
}

func newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return jar, nil
}

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
	if j.store == nil || len(cookies) == 0 {
		return
	}
	if err := j.store.SaveCookies(u.Host, cookies, j.now()); err != nil {
		j.log.Warn("save cookies", "host", u.Host, "err", err)
	}
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Clear drops every cookie, in memory and in the store
func (j *PersistentJar) Clear() error {
	jar, err := newJar()
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar = jar
	if j.store == nil {
		return nil
	}
	return j.store.ClearCookies()
}
