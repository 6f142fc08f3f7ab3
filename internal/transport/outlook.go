package transport

// OutlookDesktop drives the locally installed Outlook client. It is only
// functional on Windows hosts; elsewhere Available reports false and Send
// explains the unavailability rather than failing generically.
type OutlookDesktop struct{}

// NewOutlookDesktop creates the desktop mail client transport
func NewOutlookDesktop() *OutlookDesktop {
	return &OutlookDesktop{}
}
