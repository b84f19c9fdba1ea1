package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sitecrew/auth-api/internal/config"
)

// apiMailer posts messages to the remote mail-send endpoint.
type apiMailer struct {
	baseURL string
	http    *http.Client
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

func newAPIMailer(cfg *config.Config) Mailer {
	return &apiMailer{
		baseURL: cfg.MailAPIBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *apiMailer) Send(to, subject, text, html string) error {
	body, err := json.Marshal(sendRequest{To: to, Subject: subject, Text: text, HTML: html})
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}
	resp, err := m.http.Post(m.baseURL+"/api/send-email", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send email: mail endpoint returned %d", resp.StatusCode)
	}
	return nil
}
