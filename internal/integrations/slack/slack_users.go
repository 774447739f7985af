package slackbot

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/slack-go/slack"
)

const userCacheTTL = 5 * time.Minute

var userCache struct {
	sync.Mutex
	users     []slack.User
	fetchedAt time.Time
}

var mentionRegex = regexp.MustCompile(`^<@([UW][A-Z0-9]+)(?:\|([^>]*))?>$`)

func getCachedUsers(api *slack.Client) ([]slack.User, error) {
	userCache.Lock()
	defer userCache.Unlock()

	if userCache.users != nil && time.Since(userCache.fetchedAt) < userCacheTTL {
		return userCache.users, nil
	}

	users, err := api.GetUsers()
	if err != nil {
		return nil, err
	}
	userCache.users = users
	userCache.fetchedAt = time.Now()
	return users, nil
}

func displayName(u slack.User) string {
	if u.Profile.DisplayName != "" {
		return u.Profile.DisplayName
	}
	if u.RealName != "" {
		return u.RealName
	}
	return u.Name
}

// authorName returns the caller's display name, falling back to the slash
// command user name when the profile lookup fails.
func authorName(api *slack.Client, userID, fallback string) string {
	user, err := api.GetUserInfo(userID)
	if err != nil {
		log.Printf("user info lookup error user=%s: %v", userID, err)
		return fallback
	}
	if name := displayName(*user); name != "" {
		return name
	}
	return fallback
}

// resolveCrewMember maps "<@U123>", a raw Slack ID, or a name to a user.
func resolveCrewMember(api *slack.Client, query string) (id, name string, err error) {
	query = strings.TrimSpace(query)
	if m := mentionRegex.FindStringSubmatch(query); m != nil {
		return m[1], authorName(api, m[1], m[2]), nil
	}
	if isLikelySlackID(query) {
		return query, authorName(api, query, query), nil
	}

	users, err := getCachedUsers(api)
	if err != nil {
		return "", "", fmt.Errorf("list users: %w", err)
	}
	u, ok := matchCrewMember(users, query)
	if !ok {
		log.Printf("resolve crew member: no unique match for %q", query)
		return "", "", fmt.Errorf("no unique crew member matches %q", query)
	}
	return u.ID, displayName(u), nil
}

// matchCrewMember prefers an exact (case-insensitive) name match and falls
// back to token containment, e.g. "budi" matching "Budi Santoso". Ambiguous
// token matches are rejected.
func matchCrewMember(users []slack.User, query string) (slack.User, bool) {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return slack.User{}, false
	}
	for _, u := range users {
		if u.Deleted || u.IsBot {
			continue
		}
		for _, n := range []string{u.Name, u.RealName, u.Profile.DisplayName} {
			if strings.ToLower(strings.TrimSpace(n)) == key {
				return u, true
			}
		}
	}

	var found []slack.User
	for _, u := range users {
		if u.Deleted || u.IsBot {
			continue
		}
		if nameMatches(u.RealName, query) || nameMatches(u.Profile.DisplayName, query) {
			found = append(found, u)
		}
	}
	if len(found) != 1 {
		return slack.User{}, false
	}
	return found[0], true
}

func isLikelySlackID(val string) bool {
	if len(val) < 9 {
		return false
	}
	for i, r := range val {
		if i == 0 {
			if r != 'U' && r != 'W' {
				return false
			}
			continue
		}
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

var parenPattern = regexp.MustCompile(`\([^)]*\)|（[^）]*）`)

func normalizeNameTokens(s string) []string {
	if s == "" {
		return nil
	}
	s = parenPattern.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// nameMatches is true when every token of candidate appears in entry.
func nameMatches(entry, candidate string) bool {
	entryTokens := normalizeNameTokens(entry)
	candTokens := normalizeNameTokens(candidate)
	if len(entryTokens) == 0 || len(candTokens) == 0 {
		return false
	}
	set := make(map[string]bool, len(entryTokens))
	for _, t := range entryTokens {
		set[t] = true
	}
	for _, t := range candTokens {
		if !set[t] {
			return false
		}
	}
	return true
}
