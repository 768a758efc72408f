// Command remotia-server captures frames, encodes them and streams
// them to a single client over RemVSP.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/aegroto/remotia/pkg/capture"
	"github.com/aegroto/remotia/pkg/codec"
	"github.com/aegroto/remotia/pkg/config"
	"github.com/aegroto/remotia/pkg/feedback"
	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/pipeline"
	"github.com/aegroto/remotia/pkg/processors"
	"github.com/aegroto/remotia/pkg/remvsp"
	"github.com/aegroto/remotia/pkg/rlog"
)

const encodeDelayStat = "encode_delay"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		panic(err)
	}
	rlog.Setup(cfg.Logging.Level)

	raddr, err := net.ResolveUDPAddr("udp", cfg.Listen.RemVSPAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve remvsp listen addr")
	}

	sender, err := remvsp.NewSender(raddr, frame.EncodedFrameBuffer, cfg.Listen.FragmentSize)
	if err != nil {
		log.Fatal().Err(err).Msg("start remvsp sender")
	}
	defer sender.Close()

	zstdCodec, err := codec.NewZstdCodec()
	if err != nil {
		log.Fatal().Err(err).Msg("init codec")
	}
	defer zstdCodec.Close()

	rawPool := frame.NewPool(frame.RawFrameBuffer, cfg.BufferPool.Capacity, cfg.BufferPool.BufferBytes)
	backend := capture.NewMockBackend(cfg.BufferPool.BufferBytes)

	var publisher feedback.Publisher = feedback.NoopPublisher{}
	if cfg.Feedback.NATSURL != "" {
		natsPub, err := feedback.NewNATSPublisher(cfg.Feedback.NATSURL)
		if err != nil {
			log.Warn().Err(err).Msg("feedback publisher disabled: nats connect failed")
		} else {
			defer natsPub.Close()
			publisher = natsPub
		}
	}

	errSink := pipeline.NewStage("sink").
		Add(processors.NewDropReasonLogger()).
		Add(processors.NewFeedbackEmitter(publisher, cfg.Feedback.Topic, "server", encodeDelayStat)).
		Add(processors.NewSoftBufferRedeemer(rawPool))

	if cfg.CSVProfilingPath != "" {
		csvFile, err := os.Create(cfg.CSVProfilingPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open csv profiling file")
		}
		defer csvFile.Close()

		csvProfiler, err := processors.NewCSVProfiler(csvFile)
		if err != nil {
			log.Fatal().Err(err).Msg("init csv profiler")
		}
		errSink.Add(csvProfiler)
	}

	errPipeline := pipeline.New("server-errors").Feedable()
	errPipeline.Link(errSink)

	onError := processors.NewOnErrorSwitch(errPipeline)

	sendPipeline := pipeline.New("server-send")
	sendPipeline.Link(pipeline.NewStage("capture").
		WithTick(33 * time.Millisecond).
		Add(processors.NewBufferBorrower(rawPool)).
		Add(processors.NewCaptureAdder(backend, frame.RawFrameBuffer)).
		Add(processors.NewTimestampAdder(frame.StatCaptureTimestamp)).
		Add(onError))
	sendPipeline.Link(pipeline.NewStage("encode").
		Add(processors.NewEncoder(zstdCodec, frame.RawFrameBuffer, frame.EncodedFrameBuffer)).
		Add(processors.NewBufferRedeemer(rawPool)).
		Add(processors.NewTimestampDiffCalculator(frame.StatCaptureTimestamp, encodeDelayStat)).
		Add(processors.NewThresholdBasedFrameDropper(encodeDelayStat, cfg.DropPolicy.MaxFrameDelayMillis)).
		Add(onError))
	sendPipeline.Link(pipeline.NewStage("send").
		Add(sender).
		Add(onError))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := errPipeline.Run(ctx); err != nil {
			log.Error().Err(err).Msg("error pipeline exited")
		}
	}()

	go func() {
		if err := sendPipeline.Run(ctx); err != nil {
			log.Error().Err(err).Msg("send pipeline exited")
		}
	}()

	log.Info().Str("listen", cfg.Listen.RemVSPAddr).Msg("remotia-server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
