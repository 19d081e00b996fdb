package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/beacon-dev/beacon/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Footer      *DiscordFooter        `json:"footer,omitempty"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordFooter struct {
	Text string `json:"text"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	colorRed   = 16711680 // incident opened
	colorGreen = 65280    // incident resolved

	webhookUsername = "Beacon Status"
)

func SendIncidentCreatedNotification(org models.Organization, page models.StatusPage, incident models.Incident) error {
	if org.DiscordWebhook != "" {
		if err := sendDiscordIncident(org.DiscordWebhook, page, incident, false); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if org.SlackWebhook != "" {
		if err := sendSlackIncident(org.SlackWebhook, page, incident, false); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func SendIncidentResolvedNotification(org models.Organization, page models.StatusPage, incident models.Incident) error {
	if org.DiscordWebhook != "" {
		if err := sendDiscordIncident(org.DiscordWebhook, page, incident, true); err != nil {
			return fmt.Errorf("discord: %w", err)
		}
	}

	if org.SlackWebhook != "" {
		if err := sendSlackIncident(org.SlackWebhook, page, incident, true); err != nil {
			return fmt.Errorf("slack: %w", err)
		}
	}

	return nil
}

func sendDiscordIncident(webhookURL string, page models.StatusPage, incident models.Incident, resolved bool) error {
	title := "🚨 Incident reported"
	color := colorRed
	if resolved {
		title = "✅ Incident resolved"
		color = colorGreen
	}

	payload := DiscordWebhookRequest{
		Username: webhookUsername,
		Embeds: []DiscordEmbed{
			{
				Title:       title,
				Description: incident.Description,
				Color:       color,
				Fields: []DiscordWebhookField{
					{Name: "Status page", Value: page.Name, Inline: true},
					{Name: "Status", Value: incident.Status, Inline: true},
					{Name: "Incident", Value: incident.Title, Inline: false},
				},
				Footer:    &DiscordFooter{Text: "Beacon"},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}

	return postJSON(webhookURL, payload)
}

func sendSlackIncident(webhookURL string, page models.StatusPage, incident models.Incident, resolved bool) error {
	text := fmt.Sprintf("Incident reported on %s", page.Name)
	color := "#FF0000"
	if resolved {
		text = fmt.Sprintf("Incident resolved on %s", page.Name)
		color = "#00FF00"
	}

	payload := SlackWebhookRequest{
		Username: webhookUsername,
		Text:     text,
		Attachments: []SlackAttachment{
			{
				Color: color,
				Title: incident.Title,
				Text:  incident.Description,
				Fields: []SlackField{
					{Title: "Status page", Value: page.Name, Short: true},
					{Title: "Status", Value: incident.Status, Short: true},
				},
				Footer:    "Beacon",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return postJSON(webhookURL, payload)
}

func postJSON(url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
