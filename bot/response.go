package bot

// Attachment is the structured form of a multi-entry report: a header
// line, a preformatted body, and a plain-text fallback for clients that
// cannot render the structure.
type Attachment struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Fallback string `json:"fallback"`
}

// Response is the single outcome of one handled command. Simple outcomes
// carry only Text; multi-entry reports add an Attachment.
type Response struct {
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// textResponse wraps a plain message.
func textResponse(text string) *Response {
	return &Response{Text: text}
}
