// Command remotia-client receives a RemVSP stream, decodes it and
// renders the frames, emitting feedback when observed delay is high.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/aegroto/remotia/pkg/codec"
	"github.com/aegroto/remotia/pkg/config"
	"github.com/aegroto/remotia/pkg/feedback"
	"github.com/aegroto/remotia/pkg/frame"
	"github.com/aegroto/remotia/pkg/pipeline"
	"github.com/aegroto/remotia/pkg/processors"
	"github.com/aegroto/remotia/pkg/remvsp"
	"github.com/aegroto/remotia/pkg/render"
	"github.com/aegroto/remotia/pkg/rlog"
)

const maxObservedDelayStat = "observed_delay"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		panic(err)
	}
	rlog.Setup(cfg.Logging.Level)

	laddr, err := net.ResolveUDPAddr("udp", cfg.RemVSPLocalAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve remvsp local addr")
	}

	receiver, err := remvsp.NewReceiver(laddr, frame.EncodedFrameBuffer)
	if err != nil {
		log.Fatal().Err(err).Msg("start remvsp receiver")
	}
	defer receiver.Close()

	zstdCodec, err := codec.NewZstdCodec()
	if err != nil {
		log.Fatal().Err(err).Msg("init codec")
	}
	defer zstdCodec.Close()

	var publisher feedback.Publisher = feedback.NoopPublisher{}
	if url := os.Getenv("FEEDBACK_NATS_URL"); url != "" {
		natsPub, err := feedback.NewNATSPublisher(url)
		if err != nil {
			log.Warn().Err(err).Msg("feedback publisher disabled: nats connect failed")
		} else {
			defer natsPub.Close()
			publisher = natsPub
		}
	}

	renderer := render.NullRenderer{}

	errPipeline := pipeline.New("client-errors").Feedable()
	errPipeline.Link(pipeline.NewStage("sink").
		Add(processors.NewDropReasonLogger()).
		Add(processors.NewFeedbackEmitter(publisher, "remotia.feedback", "client", maxObservedDelayStat)))

	onError := processors.NewOnErrorSwitch(errPipeline)

	recvPipeline := pipeline.New("client-receive")
	recvPipeline.Link(pipeline.NewStage("receive").
		Add(receiver).
		Add(processors.NewTimestampDiffCalculator(frame.StatCaptureTimestamp, maxObservedDelayStat)).
		Add(processors.NewThresholdBasedFrameDropper(maxObservedDelayStat, 250)).
		Add(onError))
	recvPipeline.Link(pipeline.NewStage("decode").
		Add(processors.NewDecoder(zstdCodec, frame.EncodedFrameBuffer, frame.RawFrameBuffer)).
		Add(onError))
	recvPipeline.Link(pipeline.NewStage("render").
		Add(processors.NewRenderDispatcher(renderer, frame.RawFrameBuffer)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := errPipeline.Run(ctx); err != nil {
			log.Error().Err(err).Msg("error pipeline exited")
		}
	}()

	go func() {
		if err := recvPipeline.Run(ctx); err != nil {
			log.Error().Err(err).Msg("receive pipeline exited")
		}
	}()

	log.Info().Str("server", cfg.RemVSPServerAddr).Msg("remotia-client started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
