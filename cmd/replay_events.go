package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kuntur-detector/case-service/internal/alarmsvc"
	"github.com/kuntur-detector/case-service/internal/application"
	"github.com/kuntur-detector/case-service/internal/config"
	"github.com/kuntur-detector/case-service/internal/kafka"
)

var replayEventsCmd = &cobra.Command{
	Use:   "replay-events",
	Short: "Republish all stored cases. Prefers Kafka; falls back to the alarm service if ALARM_SERVICE_URL set.",
	RunE:  runReplayEvents,
}

func init() {
	rootCmd.AddCommand(replayEventsCmd)
}

func runReplayEvents(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	store, err := application.NewStore(cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	cases, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}
	log.Printf("replay-events: found %d cases", len(cases))

	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopicCase != "" {
		log.Println("replay-events: using Kafka")
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicCase)
		defer producer.Close()
		for i := range cases {
			c := &cases[i]
			payload := map[string]interface{}{
				"id_caso":        c.CaseID,
				"id_alarma":      c.AlarmID,
				"nombre_agente":  c.AgentName,
				"cedula_agente":  c.AgentIDNumber,
				"nombre_victima": c.VictimName,
				"cedula_victima": c.VictimIDNumber,
				"estado":         string(c.Status),
			}
			producer.ProduceCaseEvent(ctx, "caso.actualizado", payload)
			if (i+1)%50 == 0 || i == len(cases)-1 {
				log.Printf("replay-events: sent %d/%d events to Kafka", i+1, len(cases))
			}
		}
		log.Printf("replay-events: done, sent %d events to Kafka", len(cases))
		return nil
	}
	if cfg.AlarmServiceURL != "" {
		log.Println("replay-events: using the alarm service over HTTP")
		client := alarmsvc.NewClient(cfg.AlarmServiceURL)
		for i := range cases {
			client.NotifyCase(ctx, &cases[i])
			if (i+1)%50 == 0 || i == len(cases)-1 {
				log.Printf("replay-events: notified %d/%d", i+1, len(cases))
			}
		}
		log.Printf("replay-events: done, notified the alarm service about %d cases", len(cases))
		return nil
	}
	log.Println("replay-events: neither KAFKA_BROKERS nor ALARM_SERVICE_URL set")
	log.Printf("replay-events: found %d cases (not republished)", len(cases))
	return nil
}
