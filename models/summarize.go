package models

// PDFMediaType is the only accepted value for SummarizeRequest.FileType.
const PDFMediaType = "application/pdf"

type SummarizeRequest struct {
	// FileData is the base64-encoded content of the PDF.
	FileData string `json:"fileData"`

	// FileType must be the PDF media type.
	FileType string `json:"fileType"`
}

type SummarizeResponse struct {
	// Summary is the markdown-formatted summary of the report.
	Summary string `json:"summary"`
}
