package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"

	"github.com/creocert/sheet-filler/internal/filler"
	"github.com/creocert/sheet-filler/internal/filler/mq"
	"github.com/creocert/sheet-filler/internal/filler/web"
	"github.com/creocert/sheet-filler/internal/kafka"
	"github.com/creocert/sheet-filler/internal/parser"
	"github.com/creocert/sheet-filler/internal/path"
	"github.com/creocert/sheet-filler/internal/placeholder"
	"github.com/creocert/sheet-filler/internal/response"
	"github.com/creocert/sheet-filler/internal/workbook"
	"github.com/creocert/sheet-filler/internal/xlsx"
)

type configuration struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	UploadsDir string `envconfig:"UPLOADS_DIR" default:"./uploads"`
	TmpDir     string `envconfig:"TMP_DIR" default:"/tmp"`

	MQEnabled bool   `envconfig:"MQ_ENABLED" default:"false"`
	MQHost    string `envconfig:"MQ_HOST" default:"localhost"`
	MQPort    int    `envconfig:"MQ_PORT" default:"9093"`

	FillInTopicRequest  string `envconfig:"FILL_IN_TOPIC_REQUEST" default:"request"`
	FillInTopicResponse string `envconfig:"FILL_IN_TOPIC_RESPONSE" default:"response"`
}

const (
	prefixCfg   = ""
	serviceName = "sheet-filler"
)

func newUUID() string {
	return uuid.New().String()
}

func main() {
	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.WithPrefix(logger, "service", serviceName)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var cfg configuration
	if err := envconfig.Process(prefixCfg, &cfg); err != nil {
		level.Error(logger).Log("msg", "configuration", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "initialization")

	path, err := path.NewBuilder(
		cfg.UploadsDir,
		cfg.TmpDir,
		newUUID,
	)
	if err != nil {
		level.Error(logger).Log("msg", "path init", "err", err)
		os.Exit(1)
	}

	parser, err := parser.New()
	if err != nil {
		level.Error(logger).Log("msg", "parser init", "err", err)
		os.Exit(1)
	}

	resolver, err := placeholder.New()
	if err != nil {
		level.Error(logger).Log("msg", "placeholder init", "err", err)
		os.Exit(1)
	}

	x := xlsx.NewFacade(
		resolver,
		logger,
	)

	svc := filler.NewService(
		path,
		parser,
		workbook.NewExtractor(),
		x.FillIn,
		logger,
	)

	server := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: web.NewHandler(
			svc,
			response.Build,
			path,
			newUUID,
			logger,
		),
	}
	go func() {
		level.Info(logger).Log("msg", "http server turn on", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "http server", "err", err)
			os.Exit(1)
		}
	}()

	var mqKafka *kafka.MessageQueue
	if cfg.MQEnabled {
		address := fmt.Sprintf("%s:%d", cfg.MQHost, cfg.MQPort)
		if mqKafka, err = kafka.NewMessageQueue([]string{address}); err != nil {
			level.Error(logger).Log("msg", "kafka init", "address", address, "err", err)
			os.Exit(1)
		}

		fillInHandler := mq.NewFillInHandler(
			svc,
			mq.NewFillInTransport(),
			mqKafka.NewPublish(cfg.FillInTopicResponse),
		)
		if err = mqKafka.Consume(cfg.FillInTopicRequest, fillInHandler); err != nil {
			level.Error(logger).Log("msg", "kafka consume", "topic", cfg.FillInTopicRequest, "err", err)
			os.Exit(1)
		}

		go func() {
			level.Info(logger).Log("msg", "kafka listener turn on")
			mqKafka.ListenAndServe()
		}()
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
	level.Info(logger).Log("msg", "received signal", "signal", <-c)

	if mqKafka != nil {
		level.Info(logger).Log("msg", "kafka listener shutdown")
		mqKafka.Shutdown()
	}
	server.Close()
	level.Info(logger).Log("msg", "stop service")
}
