package utils

import "strings"

// SplitLogin splits "username@domain" into its parts. A login without a
// domain is a bare username.
func SplitLogin(login string) (username, domain string) {
	login = strings.TrimSpace(login)
	if idx := strings.LastIndex(login, "@"); idx >= 0 {
		return login[:idx], login[idx+1:]
	}
	return login, ""
}

// JoinLogin is the inverse of SplitLogin
func JoinLogin(username, domain string) string {
	if domain == "" {
		return username
	}
	return username + "@" + domain
}
