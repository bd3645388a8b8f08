package db

import (
	"fmt"
	"net/http"
	"time"
)

// SaveCookies stores the cookies a response from host set. Cookies that are
// already expired, or carry a negative MaxAge, delete the stored entry.
func (db *DB) SaveCookies(host string, cookies []*http.Cookie, now time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		var expires int64
		switch {
		case c.MaxAge < 0:
			expires = -1
		case c.MaxAge > 0:
			expires = now.Add(time.Duration(c.MaxAge) * time.Second).Unix()
		case !c.Expires.IsZero():
			expires = c.Expires.Unix()
		}

		if expires < 0 || (expires > 0 && expires <= now.Unix()) {
			if _, err := tx.Exec("DELETE FROM cookies WHERE host = ? AND name = ? AND path = ?", host, c.Name, path); err != nil {
				return fmt.Errorf("delete cookie %s: %w", c.Name, err)
			}
			continue
		}

		_, err := tx.Exec(`
			INSERT INTO cookies (host, name, path, value, domain, expires, secure, http_only, same_site)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(host, name, path) DO UPDATE SET
				value = excluded.value,
				domain = excluded.domain,
				expires = excluded.expires,
				secure = excluded.secure,
				http_only = excluded.http_only,
				same_site = excluded.same_site
		`, host, c.Name, path, c.Value, c.Domain, expires, c.Secure, c.HttpOnly, int(c.SameSite))
		if err != nil {
			return fmt.Errorf("save cookie %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// LoadCookies returns the stored, unexpired cookies grouped by host
func (db *DB) LoadCookies(now time.Time) (map[string][]*http.Cookie, error) {
	rows, err := db.Query(`
		SELECT host, name, path, value, domain, expires, secure, http_only, same_site
		FROM cookies
		WHERE expires = 0 OR expires > ?
		ORDER BY host, name
	`, now.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]*http.Cookie{}
	for rows.Next() {
		var (
			host     string
			c        http.Cookie
			expires  int64
			sameSite int
		)
		if err := rows.Scan(&host, &c.Name, &c.Path, &c.Value, &c.Domain, &expires, &c.Secure, &c.HttpOnly, &sameSite); err != nil {
			return nil, err
		}
		if expires > 0 {
			c.Expires = time.Unix(expires, 0)
		}
		c.SameSite = http.SameSite(sameSite)
		out[host] = append(out[host], &c)
	}
	return out, rows.Err()
}

// ClearCookies forgets every stored cookie
func (db *DB) ClearCookies() error {
	_, err := db.Exec("DELETE FROM cookies")
	return err
}
