package talenthub

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "http://localhost:8000"
	userAgent = "jobscout/cli"

	// Per-call budgets. The async upload gets a long one because the first
	// analysis of an artifact may trigger server-side OCR and embedding.
	// Status polls are cheap and frequent, so they get a short one.
	defaultTimeout = 30 * time.Second
	uploadTimeout  = 2 * time.Minute
	pollTimeout    = 20 * time.Second
	saveTimeout    = 60 * time.Second
)

// Client talks to the TalentHub REST API.
type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, token string) *Client {
	return &Client{
		token:  token,
		logger: logger,
		APIURL: apiURL,
		// Deadlines are applied per request; the upload budget is far
		// longer than any sane client-wide timeout.
		HTTPClient: &http.Client{},
		UserAgent:  userAgent,
	}
}
