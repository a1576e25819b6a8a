package documents

// createDocumentRequest is the payload for creating a document. The owner is
// always the authenticated caller, never taken from the body.
type createDocumentRequest struct {
	Title    string `json:"title" binding:"required,max=100"`
	Content  string `json:"content" binding:"required"`
	FilePath string `json:"filePath"`
}

// updateDocumentRequest carries optional document mutations.
type updateDocumentRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	FilePath *string `json:"filePath"`
	Status   *string `json:"status"`
}
