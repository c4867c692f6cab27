package domain

// PhoneDeletion reports the outcome of removing every number of one client.
// Deleted is zero when the client had no numbers.
type PhoneDeletion struct {
	Deleted int
	Numbers []string
}
