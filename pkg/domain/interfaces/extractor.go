package interfaces

// Extractor finds durable personal information in an utterance. Results are
// approximate; absence is reported as empty values, never as errors.
type Extractor interface {
	// CandidateFacts returns texts worth storing in the fact log
	CandidateFacts(utterance string) []string

	// Name returns the name the user introduced themselves with
	Name(utterance string) (string, bool)

	// Interests returns things the user said they like
	Interests(utterance string) []string
}
