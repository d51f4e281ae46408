package types

// ErrorKind classifies a failed popup reply.
type ErrorKind string

const (
	ErrorKindAPIUnavailable ErrorKind = "api_unavailable" // ErrorKindAPIUnavailable indicates the messaging capability is missing.
	ErrorKindNoActiveTab    ErrorKind = "no_active_tab"   // ErrorKindNoActiveTab indicates no usable active tab was found.
	ErrorKindRestrictedPage ErrorKind = "restricted_page" // ErrorKindRestrictedPage indicates the active tab is a browser-internal page.
	ErrorKindExtraction     ErrorKind = "extraction"      // ErrorKindExtraction indicates the page produced no usable text.
	ErrorKindGeneration     ErrorKind = "generation"      // ErrorKindGeneration indicates the model call or another step failed.
	ErrorKindTimeout        ErrorKind = "timeout"         // ErrorKindTimeout indicates a deadline expired.
	ErrorKindCanceled       ErrorKind = "canceled"        // ErrorKindCanceled indicates the caller abandoned the request.
	ErrorKindInternal       ErrorKind = "internal"        // ErrorKindInternal indicates an unexpected failure.
)

// ReplyError is the failure arm of a PopupReply.
type ReplyError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// PopupReply is the orchestrator's answer to a Request.
//
// Summary always carries the text shown to the user, so consumers reading only
// the summary field keep working. Error is nil on success; when set, Summary
// holds the human-readable failure and Error tags its kind.
type PopupReply struct {
	Summary string      `json:"summary"`
	Error   *ReplyError `json:"error,omitempty"`
}

// OkReply creates a successful reply.
func OkReply(text string) PopupReply {
	return PopupReply{Summary: text}
}

// ErrReply creates a failed reply whose summary is the given message.
func ErrReply(kind ErrorKind, message string) PopupReply {
	return PopupReply{
		Summary: message,
		Error:   &ReplyError{Kind: kind, Message: message},
	}
}

// IsError reports whether the reply carries a failure.
func (r PopupReply) IsError() bool {
	return r.Error != nil
}
