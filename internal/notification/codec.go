// Package notification reads and writes the notification payload that the
// commenting automation embeds in pull request bodies.
//
// Wire format: the literal prefix "<!--staticman_notification:", a compact
// JSON object on a single line, then "-->". The prefix is matched
// case-insensitively when decoding.
package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/you/staticman-prhook/internal/domain"
)

const (
	markerPrefix = "<!--staticman_notification:"
	markerSuffix = "-->"
)

var ErrMalformed = errors.New("malformed notification")

// Payload is non-greedy and does not cross line breaks.
var markerRe = regexp.MustCompile(`(?i)<!--staticman_notification:(.+?)-->`)

// Encode renders n as a marker comment.
func Encode(n domain.Notification) (string, error) {
	// json.Marshal escapes '<' and '>', so the payload can never close the comment early.
	payload, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return markerPrefix + string(payload) + markerSuffix, nil
}

// Decode extracts the first marker found in body. found is false when body
// carries no marker; a marker whose payload is not a JSON object is an error.
func Decode(body string) (n domain.Notification, found bool, err error) {
	m := markerRe.FindStringSubmatch(body)
	if len(m) != 2 {
		return domain.Notification{}, false, nil
	}
	raw := strings.TrimSpace(m[1])
	if !strings.HasPrefix(raw, "{") {
		return domain.Notification{}, true, fmt.Errorf("%w: payload is not a JSON object", ErrMalformed)
	}
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return domain.Notification{}, true, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return n, true, nil
}

// Embed appends the marker for n to body, replacing any existing marker.
func Embed(body string, n domain.Notification) (string, error) {
	marker, err := Encode(n)
	if err != nil {
		return "", err
	}
	body = Strip(body)
	if body == "" {
		return marker, nil
	}
	return body + "\n\n" + marker, nil
}

// Strip removes every marker from body.
func Strip(body string) string {
	return strings.TrimSpace(markerRe.ReplaceAllString(body, ""))
}
