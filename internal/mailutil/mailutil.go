// Package mailutil provides small helpers shared by the email pipeline:
// recruiter address extraction and the Gmail browser compose link.
package mailutil

import (
	"net/url"
	"regexp"
)

// emailRe matches a syntactically plausible address: alphanumerics plus
// . _ % + - in the local part, alphanumerics plus . - in the domain, and a
// top-level label of at least two letters. Deliverability is not checked.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ExtractEmail returns the first email address found in the text, scanning
// left to right. The second return value is false when no address is present.
func ExtractEmail(text string) (string, bool) {
	match := emailRe.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

const gmailComposeBase = "https://mail.google.com/mail/?view=cm&fs=1"

// GmailComposeURL builds a direct link that opens Gmail's compose window in
// the user's browser with recipient, subject and body pre-filled. No network
// I/O happens here; the actual send is done by the user in their mail client.
func GmailComposeURL(to, subject, body string) string {
	params := url.Values{}
	params.Set("to", to)
	params.Set("su", subject)
	params.Set("body", body)
	return gmailComposeBase + "&" + params.Encode()
}
