package attachment

type uploadRequest struct {
	Name        string `json:"name" minLength:"1" doc:"Unique object name, e.g. card/<uuid>-before.jpg"`
	ContentType string `json:"content_type,omitempty" doc:"MIME type of the payload"`
	Data        string `json:"data" doc:"Base64-encoded payload"`
}

type uploadInput struct {
	Body uploadRequest
}

type uploadOutput struct {
	Body uploadResponse
}

type uploadResponse struct {
	URL string `json:"url"`
}
