package ports

type OtpRegistry interface {
	// Issue generates a fresh code for the phone, replacing any pending
	// one, and returns it for delivery.
	Issue(phone string) (string, error)
	// Verify reports whether code matches the pending entry for the phone.
	// A successful verification consumes the entry.
	Verify(phone, code string) bool
}
