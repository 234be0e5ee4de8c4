package jobs

// Kind classifies a job service failure.
type Kind string

const (
	// KindInvalidRequest marks input rejected before any subprocess ran.
	KindInvalidRequest Kind = "invalid_request"
	// KindSubprocess marks a downloader failure: non-zero exit, timeout,
	// or output capture breach.
	KindSubprocess Kind = "subprocess_failure"
	// KindArtifactMissing marks a downloader that reported success without
	// producing an output file.
	KindArtifactMissing Kind = "artifact_missing"
	// KindMetadata marks a metadata probe or parse failure.
	KindMetadata Kind = "metadata_fetch_failed"
)

// Error is the failure surface of the job service. Message is safe to show
// to callers; Details carries the raw diagnostic text.
type Error struct {
	Kind    Kind
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func invalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}
