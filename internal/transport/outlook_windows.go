//go:build windows

package transport

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// olMailItem is the Outlook object model constant for a mail item
const olMailItem = 0

// Available reports whether the Outlook desktop client can be driven on this
// host. On Windows this is decided by the COM calls themselves.
func (o *OutlookDesktop) Available() bool {
	return true
}

// Send composes and sends a message through the locally installed Outlook
// desktop client. The attachment must be disk-resident; Outlook reads it by
// path. Diagnostics from COM are surfaced verbatim, with a hint for the
// well-known elevation mismatch error.
func (o *OutlookDesktop) Send(recipient, subject, body, attachmentPath string) (bool, string) {
	if err := ole.CoInitialize(0); err != nil {
		// S_FALSE means the thread was already initialized; anything else is fatal
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return false, fmt.Sprintf("Failed to initialize COM: %v", err)
		}
	}
	defer ole.CoUninitialize()

	// Prefer the running instance; starting a second one can hit permission issues
	unknown, err := oleutil.GetActiveObject("Outlook.Application")
	if err != nil {
		unknown, err = oleutil.CreateObject("Outlook.Application")
		if err != nil {
			return false, fmt.Sprintf("Outlook Desktop is not available: %v. Make sure Outlook is installed and open.", err)
		}
	}
	defer unknown.Release()

	outlook, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return false, fmt.Sprintf("Failed to talk to Outlook: %v", err)
	}
	defer outlook.Release()

	mailVar, err := oleutil.CallMethod(outlook, "CreateItem", olMailItem)
	if err != nil {
		return false, outlookErrorMessage(err)
	}
	mail := mailVar.ToIDispatch()
	defer mail.Release()

	if _, err := oleutil.PutProperty(mail, "To", recipient); err != nil {
		return false, outlookErrorMessage(err)
	}
	if _, err := oleutil.PutProperty(mail, "Subject", subject); err != nil {
		return false, outlookErrorMessage(err)
	}
	if _, err := oleutil.PutProperty(mail, "Body", body); err != nil {
		return false, outlookErrorMessage(err)
	}

	if attachmentPath != "" {
		absPath, err := filepath.Abs(attachmentPath)
		if err != nil {
			absPath = attachmentPath
		}
		attachmentsVar, err := oleutil.GetProperty(mail, "Attachments")
		if err != nil {
			return false, outlookErrorMessage(err)
		}
		attachments := attachmentsVar.ToIDispatch()
		defer attachments.Release()
		if _, err := oleutil.CallMethod(attachments, "Add", absPath); err != nil {
			return false, outlookErrorMessage(err)
		}
	}

	if _, err := oleutil.CallMethod(mail, "Send"); err != nil {
		return false, outlookErrorMessage(err)
	}

	return true, "Email sent successfully via Outlook Desktop!"
}

// outlookErrorMessage maps known COM failures to actionable diagnostics
func outlookErrorMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "-2146959355") || strings.Contains(msg, "Server execution failed") {
		return "Outlook is running with different permissions than this service.\n" +
			"1. Close Outlook.\n" +
			"2. Re-open Outlook normally (NOT as Admin).\n" +
			"3. If your terminal is running as Admin, restart it normally."
	}
	return fmt.Sprintf("Local Outlook Error: %v. Make sure Outlook is open.", err)
}
