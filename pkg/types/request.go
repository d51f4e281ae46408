package types

// RequestKind identifies the action the popup asks the orchestrator to run.
type RequestKind string

const (
	RequestSummary RequestKind = "REQUEST_SUMMARY" // RequestSummary asks for a summary of the active page.
	RequestEssence RequestKind = "REQUEST_ESSENCE" // RequestEssence asks for a one-sentence essence of the active page.
)

// Valid reports whether k is one of the two request kinds the orchestrator answers.
func (k RequestKind) Valid() bool {
	return k == RequestSummary || k == RequestEssence
}

// Request is the message sent from the popup to the orchestrator.
type Request struct {
	Type RequestKind `json:"type"`
}

// NewRequest creates a request of the given kind.
func NewRequest(kind RequestKind) Request {
	return Request{Type: kind}
}

// PageMessageKind identifies a message sent from the orchestrator to a page.
type PageMessageKind string

const (
	PageMessagePing    PageMessageKind = "ping"     // PageMessagePing is the lightweight liveness check.
	PageMessageGetText PageMessageKind = "GET_TEXT" // PageMessageGetText asks the extractor for the page's visible text.
)

// PageMessage is the message sent from the orchestrator to a page's extractor.
type PageMessage struct {
	Type PageMessageKind `json:"type"`
}

// PageTextReply is the extractor's answer to a GET_TEXT message.
// Exactly one of Text and Error is set.
type PageTextReply struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// TextReply creates a reply carrying page text.
func TextReply(text string) PageTextReply {
	return PageTextReply{Text: text}
}

// ErrorReply creates a reply carrying an extraction error.
func ErrorReply(reason string) PageTextReply {
	return PageTextReply{Error: reason}
}
