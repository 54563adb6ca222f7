package notify

// Send delivers a desktop notification with the given title and body.
// Delivery is best effort; callers treat failure as log-worthy, not
// fatal.
func Send(title, body string) error {
	return osNotify(title, body)
}
