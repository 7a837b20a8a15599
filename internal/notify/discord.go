// Package notify posts search results to a Discord webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dharmasatrya/tripfinder/internal/models"
	"github.com/dharmasatrya/tripfinder/pkg/currency"
)

type Discord struct {
	webhookURL string
	client     *http.Client
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (d *Discord) Send(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// TripMessage formats the cheapest found trip for the notification channel.
func TripMessage(trip models.TripSummary, currencyCode string, passengers int) string {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# trip found! (%d passengers)\n", passengers)
	fmt.Fprintf(&b, "### %s -> %s:\n", trip.Outbound.Home, trip.Outbound.Destination)
	fmt.Fprintf(&b, "%s - **%s**\n",
		trip.Outbound.Takeoff.Format("2006-01-02 15:04"),
		currency.Format(trip.Outbound.Price, currencyCode))

	if trip.Inbound != nil {
		fmt.Fprintf(&b, "### %s -> %s:\n", trip.Inbound.Home, trip.Inbound.Destination)
		fmt.Fprintf(&b, "%s - **%s**\n",
			trip.Inbound.Takeoff.Format("2006-01-02 15:04"),
			currency.Format(trip.Inbound.Price, currencyCode))
	}

	fmt.Fprintf(&b, "\nTotal price: **%s**", currency.Format(trip.TotalPrice, currencyCode))
	return b.String()
}
