package utils

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ParseCookieFile reads a Netscape/Mozilla cookies.txt export: seven
// tab-separated fields per line, '#' comments and blanks skipped.
// Browser exports prefix HttpOnly cookies with "#HttpOnly_"; those
// lines are real cookies. Expiry is deliberately left unset so the jar
// keeps stale session cookies for the length of the run.
func ParseCookieFile(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimPrefix(line, "#HttpOnly_")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}

		cookies = append(cookies, &http.Cookie{
			Domain: strings.TrimPrefix(fields[0], "."),
			Path:   fields[2],
			Secure: strings.EqualFold(fields[3], "TRUE"),
			Name:   fields[5],
			Value:  fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}

// NewHTTPClient builds the shared client with a publicsuffix-aware
// cookie jar. cookiePath may be empty; when set, the file's cookies are
// installed for their respective domains so locked episodes resolve
// with the caller's session.
func NewHTTPClient(cookiePath string) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	client := &http.Client{Jar: jar}
	if cookiePath == "" {
		return client, nil
	}

	cookies, err := ParseCookieFile(cookiePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load cookies: %w", err)
	}

	byDomain := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		byDomain[c.Domain] = append(byDomain[c.Domain], c)
	}
	for domain, group := range byDomain {
		u := &url.URL{Scheme: "https", Host: domain}
		jar.SetCookies(u, group)
	}

	return client, nil
}
