package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/google/uuid"
	messages "github.com/kpaschen/tspaa/lib/kafka"
	"github.com/kpaschen/tspaa/lib/paa"
	"github.com/kpaschen/tspaa/lib/settings"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	kafka "github.com/segmentio/kafka-go"
)

func resultKey(msg kafka.Message) []byte {
	if len(msg.Key) > 0 {
		return msg.Key
	}
	return []byte(uuid.NewString())
}

func main() {
	var kafkaURL string
	var groupID string
	var numIntervals int
	var strict bool
	var normalize bool
	var logLevel string
	flag.StringVar(&kafkaURL, "kafkaURL", "", "The URL for the kafka broker.")
	flag.StringVar(&groupID, "groupID", "paa", "The consumer group of this worker.")
	flag.IntVar(&numIntervals, "intervals", settings.DEFAULT_NUM_INTERVALS, "number of intervals to reduce sequences to, unless a message says otherwise")
	flag.BoolVar(&strict, "strict", false, "reject sequences shorter than the number of intervals")
	flag.BoolVar(&normalize, "normalize", false, "z-normalize sequences before reducing them")
	flag.StringVar(&logLevel, "logLevel", "info", "log level")
	flag.Parse()

	if level, err := zerolog.ParseLevel(logLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	transformer, err := paa.NewTransformer(settings.PAASettings{
		NumIntervals: numIntervals,
		Strict:       strict,
		Normalize:    normalize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	processor := messages.NewProcessor(transformer)

	sequenceReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{kafkaURL},
		GroupID: groupID,
		Topic:   messages.SEQUENCES_TOPIC,
	})
	defer sequenceReader.Close()

	resultsWriter := &kafka.Writer{
		Addr:     kafka.TCP(kafkaURL),
		Topic:    messages.RESULTS_TOPIC,
		Balancer: &kafka.Hash{},
	}
	defer resultsWriter.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Info().Str("topic", messages.SEQUENCES_TOPIC).Msg("kafka worker waiting for sequences")
	for {
		msg, err := sequenceReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("kafka worker shutting down")
				return
			}
			log.Error().Err(err).Msg("failed to read sequence message")
			continue
		}
		log.Debug().Str("key", string(msg.Key)).Int("partition", msg.Partition).Msg("received sequence message")

		value, err := processor.ProcessBytes(msg.Value)
		if err != nil {
			log.Error().Err(err).Str("key", string(msg.Key)).Msg("skipping sequence message")
			continue
		}
		err = resultsWriter.WriteMessages(ctx, kafka.Message{
			Key:   resultKey(msg),
			Value: value,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to send result message")
		}
	}
}
