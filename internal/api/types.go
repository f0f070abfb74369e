package api

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query        string `json:"query"`
	UseWebSearch bool   `json:"use_web_search"`
	TopK         int    `json:"top_k"`
}

// SearchResult is a successful answer.
type SearchResult struct {
	Answer   string
	Sources  []string
	Query    string
	Passages []Passage
}

// Passage is one retrieved chunk the answer was grounded on.
type Passage struct {
	Text     string          `json:"text"`
	Score    float64         `json:"score"`
	Metadata PassageMetadata `json:"metadata"`
}

// PassageMetadata describes where a passage came from.
type PassageMetadata struct {
	URL   string `json:"url,omitempty"`
	Title string `json:"title,omitempty"`
}

// searchResponse uses pointers so missing required fields are detected.
type searchResponse struct {
	Answer        *string   `json:"answer"`
	Sources       *[]string `json:"sources"`
	Query         string    `json:"query"`
	SearchResults []Passage `json:"search_results"`
}

// AdminConfig is the backend's model configuration. The key is masked by
// the server.
type AdminConfig struct {
	APIKeyMasked string `json:"api_key"`
	BaseURL      string `json:"base_url"`
	Model        string `json:"model"`
}

// ConfigUpdate is the body of POST /api/config.
type ConfigUpdate struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
}

// Ack is a generic {success, message} reply.
type Ack struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// IngestRequest is the body of POST /api/ingest-url.
type IngestRequest struct {
	URL string `json:"url"`
}

// IngestResult reports what the backend indexed.
type IngestResult struct {
	Success     *bool  `json:"success,omitempty"`
	Message     string `json:"message,omitempty"`
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	ChunksCount int    `json:"chunks_count,omitempty"`
}

// Failed reports an explicit success:false reply.
func (r *IngestResult) Failed() bool {
	return r != nil && r.Success != nil && !*r.Success
}

// Health is the reply of GET /api/health.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Healthy reports whether the backend declared itself healthy.
func (h *Health) Healthy() bool {
	return h != nil && h.Status == "healthy"
}
