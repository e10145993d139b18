// Package api provides handlers for external APIs and interfaces
package api

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dpavlovic/climate-watch/internal/entities"
	"github.com/dpavlovic/climate-watch/internal/integration/openai"
	"github.com/dpavlovic/climate-watch/internal/repository"
	"github.com/dpavlovic/climate-watch/internal/visualizer"
)

// TelegramBot serves collected climate data over Telegram
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	repo     repository.ClimateRepository
	renderer *visualizer.Renderer
	digest   openai.DigestService // nil when the digest feature is disabled
}

// NewTelegramBot creates a new Telegram bot handler
func NewTelegramBot(botToken string, repo repository.ClimateRepository, renderer *visualizer.Renderer, digest openai.DigestService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}

	return &TelegramBot{
		bot:      bot,
		repo:     repo,
		renderer: renderer,
		digest:   digest,
	}, nil
}

// Start begins listening for and handling Telegram messages
func (t *TelegramBot) Start() {
	log.Printf("Authorized on Telegram account %s", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	log.Println("Bot is now listening for messages...")

	for update := range updates {
		if update.Message == nil {
			continue
		}

		// Log incoming messages
		log.Printf("Received message from %s (ID: %d): %s",
			update.Message.From.UserName,
			update.Message.From.ID,
			update.Message.Text)

		t.handleMessage(update)
	}
}

// handleMessage processes a Telegram message update
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	// /chart replies with a photo instead of text
	if update.Message.IsCommand() && update.Message.Command() == "chart" {
		log.Printf("Handling /chart command for user %s", update.Message.From.UserName)
		t.handleChartCommand(update.Message)
		return
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")

	switch {
	case update.Message.IsCommand():
		t.handleCommand(update.Message, &msg)
	default:
		log.Printf("Received non-command message from user %s: %s", update.Message.From.UserName, update.Message.Text)
		msg.Text = "I don't understand. Use /help to see available commands."
	}

	log.Printf("Sending response to user %s", update.Message.From.UserName)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// handleCommand processes commands like /start, /help, etc.
func (t *TelegramBot) handleCommand(message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	switch message.Command() {
	case "start":
		log.Printf("Handling /start command for user %s", message.From.UserName)
		msg.Text = "Welcome to Climate Watch! Use /latest for the most recent reading or /help for more information."

	case "help":
		log.Printf("Handling /help command for user %s", message.From.UserName)
		msg.Text = "Available commands:\n" +
			"/start - Start the bot\n" +
			"/latest - Show the most recent climate reading\n" +
			"/readings - Show all stored climate readings\n" +
			"/articles - Show collected news articles\n" +
			"/digest - AI digest of the collected articles\n" +
			"/chart - Temperature chart\n" +
			"/help - Show this help message"

	case "latest":
		log.Printf("Handling /latest command for user %s", message.From.UserName)
		t.handleLatestCommand(msg)

	case "readings":
		log.Printf("Handling /readings command for user %s", message.From.UserName)
		t.handleReadingsCommand(msg)

	case "articles":
		log.Printf("Handling /articles command for user %s", message.From.UserName)
		t.handleArticlesCommand(msg)

	case "digest":
		log.Printf("Handling /digest command for user %s", message.From.UserName)
		t.handleDigestCommand(msg)

	default:
		log.Printf("Received unknown command /%s from user %s", message.Command(), message.From.UserName)
		msg.Text = "Unknown command. Use /help to see available commands."
	}
}

// handleLatestCommand processes the /latest command
func (t *TelegramBot) handleLatestCommand(msg *tgbotapi.MessageConfig) {
	reading, err := t.repo.LatestReading()
	if err != nil {
		msg.Text = "Error fetching climate data. Please try again later."
		return
	}
	if reading == nil {
		msg.Text = "No climate readings stored yet. Run the collector first."
		return
	}
	msg.Text = "Latest climate reading:\n\n" + formatReading(*reading)
}

// handleReadingsCommand processes the /readings command
func (t *TelegramBot) handleReadingsCommand(msg *tgbotapi.MessageConfig) {
	readings, err := t.repo.AllReadings()
	if err != nil {
		msg.Text = "Error fetching climate data. Please try again later."
		return
	}
	if len(readings) == 0 {
		msg.Text = "No climate readings stored yet. Run the collector first."
		return
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Stored climate readings (%d):\n\n", len(readings)))
	for _, r := range readings {
		result.WriteString(formatReading(r))
		result.WriteString("\n")
	}
	msg.Text = result.String()
}

// handleArticlesCommand processes the /articles command
func (t *TelegramBot) handleArticlesCommand(msg *tgbotapi.MessageConfig) {
	articles, err := t.repo.AllArticles()
	if err != nil {
		msg.Text = "Error fetching news articles. Please try again later."
		return
	}
	if len(articles) == 0 {
		msg.Text = "No news articles collected yet. Run the collector first."
		return
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Collected news articles (%d):\n\n", len(articles)))
	for _, a := range articles {
		result.WriteString(fmt.Sprintf("📰 %s\n%s\n🕒 %s\n\n", a.Title, a.Link, a.Date))
	}
	msg.Text = result.String()
}

// handleDigestCommand processes the /digest command
func (t *TelegramBot) handleDigestCommand(msg *tgbotapi.MessageConfig) {
	if t.digest == nil {
		msg.Text = "The digest feature is not configured on this deployment."
		return
	}

	articles, err := t.repo.AllArticles()
	if err != nil {
		msg.Text = "Error fetching news articles. Please try again later."
		return
	}
	if len(articles) == 0 {
		msg.Text = "No news articles collected yet, nothing to summarize."
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	digest, err := t.digest.SummarizeArticles(ctx, articles)
	if err != nil {
		log.Printf("Error summarizing articles: %v", err)
		msg.Text = "Sorry, I couldn't build a digest right now. Please try again later."
		return
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("🗞 %s\n\n%s\n", digest.Headline, digest.Summary))
	if len(digest.Themes) > 0 {
		result.WriteString("\nThemes:\n")
		for _, theme := range digest.Themes {
			result.WriteString("• " + theme + "\n")
		}
	}
	msg.Text = result.String()
}

// handleChartCommand renders the temperature chart and sends it as a photo
func (t *TelegramBot) handleChartCommand(message *tgbotapi.Message) {
	points, err := t.repo.QueryAllReadings()
	if err != nil || len(points) == 0 {
		reply := tgbotapi.NewMessage(message.Chat.ID, "No climate readings stored yet, nothing to chart.")
		if _, err := t.bot.Send(reply); err != nil {
			log.Printf("Error sending message: %v", err)
		}
		return
	}

	if err := t.renderer.RenderTemperatureSeries(); err != nil {
		reply := tgbotapi.NewMessage(message.Chat.ID, "Error rendering the chart. Please try again later.")
		if _, err := t.bot.Send(reply); err != nil {
			log.Printf("Error sending message: %v", err)
		}
		return
	}

	photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FilePath(t.renderer.OutputPath()))
	photo.Caption = fmt.Sprintf("Temperature over time (%d readings)", len(points))
	if _, err := t.bot.Send(photo); err != nil {
		log.Printf("Error sending chart photo: %v", err)
	}
}

// formatReading formats a single climate reading for display
func formatReading(r entities.ClimateReading) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("📍 Location: %s\n", r.Location))
	result.WriteString(fmt.Sprintf("🌡️ Temperature: %.1f °C\n", r.Temperature))
	result.WriteString(fmt.Sprintf("💧 Humidity: %.0f %%\n", r.Humidity))
	result.WriteString(fmt.Sprintf("🕒 Date: %s\n", r.Date))
	return result.String()
}
