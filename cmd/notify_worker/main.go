package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/univloop/univloop-api/config"
	"github.com/univloop/univloop-api/internal/application"
	"github.com/univloop/univloop-api/internal/domain/entity"
	"github.com/univloop/univloop-api/pkg/mailer"
)

// The worker consumes activity events and emails the recipients of like and
// comment notifications. Broadcast events stay in-app only; mailing every
// user on each upload would be noise.

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if !cfg.MailSendEnabled {
		log.Println("MAIL_SEND_ENABLED=false; notify worker disabled (no real emails will be sent)")
		return
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.ActivityQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}
	msgs, err := ch.Consume(cfg.ActivityQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var ev application.ActivityEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				log.Printf("bad message: %v", err)
				_ = msg.Nack(false, false)
				continue
			}

			if ev.Type == entity.NotifLike || ev.Type == entity.NotifComment {
				for _, userID := range ev.Recipients {
					var email string
					if err := db.QueryRowContext(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email); err != nil {
						log.Printf("lookup recipient %s: %v", userID, err)
						continue
					}
					body := fmt.Sprintf("%s\n\nhttps://univloop.app%s", ev.Message, ev.Link)
					if err := mg.Send(ctx, email, ev.Title, body); err != nil {
						log.Printf("send to %s: %v", email, err)
					}
				}
			}

			_ = msg.Ack(false)
		}
	}()

	log.Printf("notify worker consuming %q", cfg.ActivityQueue)
	<-stop
	_ = ch.Close()
	<-done
	log.Println("notify worker stopped")
}
