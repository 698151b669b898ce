package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/calcpad/calcpad/internal/config"
	"github.com/calcpad/calcpad/internal/server"
	"github.com/calcpad/calcpad/internal/ui"
)

// Serve command flags
var (
	serveHost        string
	servePort        int
	serveInstance    string
	serveNoAdvertise bool
	certPath         string
	keyPath          string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator as a remote keypad",
	Long: `Start the keypad server. Every websocket connection to /ws gets its own
calculator; clients send key presses as JSON and receive the display after
each request. GET /healthz answers "ok".

Host, port and instance default to the server section of the config file.
The server registers itself via mDNS unless --no-advertise is given.

Provide --cert and --key to serve wss:// instead of ws://.`,
	Example: `  # Serve on the configured port (7337 by default)
  calcpad serve

  # Custom port, no mDNS
  calcpad serve --port 9000 --no-advertise

  # TLS with debug logging
  calcpad serve --cert cert.pem --key key.pem --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config)")
	serveCmd.Flags().StringVar(&serveInstance, "instance", "", "mDNS instance name (default from config)")
	serveCmd.Flags().BoolVar(&serveNoAdvertise, "no-advertise", false, "Do not register the server via mDNS")
	serveCmd.Flags().StringVar(&certPath, "cert", "", "Path to TLS certificate file")
	serveCmd.Flags().StringVar(&keyPath, "key", "", "Path to TLS private key file")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Validate: Either both cert and key are provided, or neither
	if (certPath != "") != (keyPath != "") {
		return fmt.Errorf("both --cert and --key must be provided together, or neither")
	}
	for _, path := range []string{certPath, keyPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	applyServerFlags(cmd, cfg.Server)

	srv, err := server.New(&server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		CertPath:     certPath,
		KeyPath:      keyPath,
		RepeatPolicy: cfg.RepeatPolicy(),
		Advertise:    cfg.Server.Advertise,
		Instance:     cfg.Server.Instance,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Listen(); err != nil {
		return err
	}

	scheme := "ws"
	if certPath != "" {
		scheme = "wss"
	}
	advertise := "off"
	if cfg.Server.Advertise {
		advertise = cfg.Server.Instance
	}
	newPrinter(cmd).PrintHeader("KEYPAD SERVER", "calcpad serve",
		ui.Detail{Key: "Listening", Value: scheme + "://" + srv.Addr().String() + "/ws"},
		ui.Detail{Key: "Port", Value: strconv.Itoa(cfg.Server.Port)},
		ui.Detail{Key: "mDNS", Value: advertise},
		ui.Detail{Key: "Repeat =", Value: cfg.RepeatPolicy().String()},
	)

	return srv.Start(commandContext(cmd))
}

// applyServerFlags overlays explicitly set serve flags on the config file values
func applyServerFlags(cmd *cobra.Command, s *config.Server) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		s.Host = serveHost
	}
	if flags.Changed("port") {
		s.Port = servePort
	}
	if flags.Changed("instance") {
		s.Instance = serveInstance
	}
	if serveNoAdvertise {
		s.Advertise = false
	}
}
