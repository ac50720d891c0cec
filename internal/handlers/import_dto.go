package handlers

type ImportRequest struct {
	// Object is a key in the import bucket; empty means the configured default source.
	Object string `json:"object" example:"movies_1a2b3c4d.csv"`
}

type PresignResponse struct {
	PresignedURL string `json:"presigned_url"`
	Object       string `json:"object"`
}
