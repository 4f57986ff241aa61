package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/digestkit/gitdigest/internal/report"
)

const (
	defaultUsername  = "Daily Dev Report Bot"
	defaultAvatarURL = "https://i.imgur.com/mDKlggm.png"

	// Fixed pause between batch deliveries; a throttle for Discord's
	// webhook rate limit, not a retry mechanism.
	interBatchDelay = time.Second
)

// ErrNotConfigured is returned when no webhook URL was provided. It is
// surfaced before any network call is attempted.
var ErrNotConfigured = errors.New("Discord webhook URL is not configured")

// DeliveryError is a non-success response from the webhook endpoint.
// Delivery stops at the first one.
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("Discord API error: %d - %s", e.Status, e.Body)
}

// Config carries the delivery settings, injected at construction. The
// URL is validated non-empty before first use, never read from ambient
// state inside the dispatcher.
type Config struct {
	WebhookURL string
	Username   string
	AvatarURL  string
}

// Webhook delivers report pages to a Discord webhook, one POST per
// batch of at most 10 embeds, sequentially.
type Webhook struct {
	url      string
	username string
	avatar   string
	client   *http.Client
	delay    time.Duration
	log      *logrus.Logger
	now      func() time.Time
}

// NewWebhook creates a dispatcher. Empty Username/AvatarURL fall back
// to the stock bot identity.
func NewWebhook(cfg Config, log *logrus.Logger) *Webhook {
	if cfg.Username == "" {
		cfg.Username = defaultUsername
	}
	if cfg.AvatarURL == "" {
		cfg.AvatarURL = defaultAvatarURL
	}
	if log == nil {
		log = logrus.New()
	}
	return &Webhook{
		url:      cfg.WebhookURL,
		username: cfg.Username,
		avatar:   cfg.AvatarURL,
		client:   &http.Client{},
		delay:    interBatchDelay,
		log:      log,
		now:      time.Now,
	}
}

// message is the webhook request body.
type message struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Content   string  `json:"content,omitempty"`
	Embeds    []Embed `json:"embeds"`
}

// Notify paginates the report and posts each batch, waiting the fixed
// delay between consecutive batches. Only the first batch carries the
// introductory content line. Returns the number of pages delivered;
// delivery stops at the first failure.
func (w *Webhook) Notify(ctx context.Context, rep *report.Report) (int, error) {
	if w.url == "" {
		return 0, ErrNotConfigured
	}

	embeds := BuildEmbeds(rep, w.now())
	batches := Batch(embeds)

	sent := 0
	for i, batch := range batches {
		content := ""
		if i == 0 {
			plural := ""
			if len(embeds) > 1 {
				plural = "s"
			}
			content = fmt.Sprintf("📈 **Daily Development Report Generated** (%d page%s)", len(embeds), plural)
		}

		if err := w.post(ctx, content, batch); err != nil {
			return sent, err
		}
		sent += len(batch)

		w.log.WithFields(logrus.Fields{
			"batch":   i + 1,
			"batches": len(batches),
			"pages":   len(batch),
		}).Info("sent page batch")

		if i < len(batches)-1 {
			time.Sleep(w.delay)
		}
	}
	return sent, nil
}

func (w *Webhook) post(ctx context.Context, content string, embeds []Embed) error {
	body, err := json.Marshal(message{
		Username:  w.username,
		AvatarURL: w.avatar,
		Content:   content,
		Embeds:    embeds,
	})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(resp.Body)
		return &DeliveryError{Status: resp.StatusCode, Body: string(detail)}
	}
	return nil
}
