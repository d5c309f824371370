package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/nokori/framing"
	"github.com/dhamidi/nokori/stream"

	_ "github.com/tliron/commonlog/simple"
)

type serveConfig struct {
	Listen  string `yaml:"listen"`
	Metrics string `yaml:"metrics"`
	Echo    bool   `yaml:"echo"`
}

func defaultServeConfig() serveConfig {
	return serveConfig{
		Listen:  "127.0.0.1:7070",
		Metrics: "127.0.0.1:9090",
		Echo:    true,
	}
}

func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// serveMetrics contains the Prometheus collectors for the serve command.
type serveMetrics struct {
	framesTotal      prometheus.Counter
	bytesTotal       prometheus.Counter
	decodeErrors     prometheus.Counter
	openConnections  prometheus.Gauge
	connectionsTotal prometheus.Counter
}

func newServeMetrics() *serveMetrics {
	return &serveMetrics{
		framesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nokori_frames_decoded_total",
			Help: "Total number of frames decoded across all connections",
		}),
		bytesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nokori_bytes_consumed_total",
			Help: "Total number of input bytes consumed by the decoder",
		}),
		decodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nokori_decode_errors_total",
			Help: "Total number of connections terminated by a decode error",
		}),
		openConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "nokori_connections_open",
			Help: "Number of currently open connections",
		}),
		connectionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nokori_connections_total",
			Help: "Total number of accepted connections",
		}),
	}
}

func newServeCmd() *cobra.Command {
	var configPath string
	var verbosity int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept TCP connections and decode framed messages from each",
		Long: "Serve listens for TCP connections and runs one frame decoder per " +
			"connection. Each connection's partial parse state lives in its " +
			"decoder, so slow or bursty senders cost a buffer, not a stalled " +
			"thread. Decoded frames are echoed back framed when echo is enabled.",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "", "path to YAML config file")
	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	return cmd
}

func runServe(cfg serveConfig) error {
	log := commonlog.GetLogger("nokori.serve")
	metrics := newServeMetrics()

	if cfg.Metrics != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics, mux); err != nil {
				log.Errorf("metrics endpoint: %v", err)
			}
		}()
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Listen, err)
	}
	defer ln.Close()
	log.Infof("listening on %s", cfg.Listen)

	for {
		conn, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("accept: %w", err)
		}
		metrics.connectionsTotal.Inc()
		go handleConn(conn, cfg, metrics, log)
	}
}

func handleConn(conn net.Conn, cfg serveConfig, metrics *serveMetrics, log commonlog.Logger) {
	defer conn.Close()
	id := uuid.NewString()
	metrics.openConnections.Inc()
	defer metrics.openConnections.Dec()
	log.Infof("[%s] connected from %s", id, conn.RemoteAddr())

	dec := stream.NewDecoder(conn, framing.Message())
	for {
		frame, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			log.Infof("[%s] closed after %d bytes", id, dec.Offset())
			metrics.bytesTotal.Add(float64(dec.Offset()))
			return
		}
		if err != nil {
			metrics.decodeErrors.Inc()
			metrics.bytesTotal.Add(float64(dec.Offset()))
			log.Errorf("[%s] %v", id, err)
			return
		}
		metrics.framesTotal.Inc()
		log.Debugf("[%s] frame of %d bytes", id, frame.Length)
		if cfg.Echo {
			if _, err := conn.Write(framing.Encode(frame.Payload)); err != nil {
				log.Errorf("[%s] echo: %v", id, err)
				return
			}
		}
	}
}
