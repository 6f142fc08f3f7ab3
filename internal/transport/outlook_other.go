//go:build !windows

package transport

// Available reports whether the Outlook desktop client can be driven on this
// host. Outside Windows there is no COM automation, so it never is.
func (o *OutlookDesktop) Available() bool {
	return false
}

// Send reports unavailability; this is distinct from a send failure so the
// caller can steer the user toward the browser or SMTP transports.
func (o *OutlookDesktop) Send(recipient, subject, body, attachmentPath string) (bool, string) {
	return false, "Outlook Desktop is not available on this server/machine. Use the browser or SMTP transport instead."
}
