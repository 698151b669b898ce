package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calcpad/calcpad/internal/calculator"
	"github.com/calcpad/calcpad/internal/discovery"
	"github.com/calcpad/calcpad/internal/logging"
	"github.com/calcpad/calcpad/internal/server"
	"github.com/calcpad/calcpad/internal/tui"
	"github.com/calcpad/calcpad/internal/ui"
)

// Command flags
var (
	noWatch     bool
	pressURL    string
	pressReset  bool
	scanTimeout int
)

func init() {
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(pressCmd)
	rootCmd.AddCommand(discoverCmd)
}

// tuiCmd launches the full-screen calculator
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the full-screen calculator",
	Long: `Launch the full-screen calculator.

Type digits and operators directly, or move over the buttons with the arrow
keys and press space. Tab switches to the greeting screen.

Logs go to stdout by default, which the calculator owns; set CALCPAD_LOG_FILE
to write them to a file instead.`,
	Example: `  # Launch the calculator (tui is the default command)
  calcpad
  calcpad tui

  # Repeat the last operation on every '='
  calcpad --repeat-equals repeat

  # Debug logging into a file
  CALCPAD_LOG_FILE=/tmp/calcpad.log calcpad --log-level debug`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	return tui.Run(commandContext(cmd), tui.Options{
		Config:     cfg,
		ConfigPath: path,
		Watch:      !noWatch,
	})
}

// evalCmd runs key presses offline
var evalCmd = &cobra.Command{
	Use:   "eval <keys>...",
	Short: "Press keys and print the display",
	Long: `Press keys on a fresh calculator and print the resulting display.

Each argument is either a single key token (7, +, ×, x, *, ÷, /, ±, neg, %,
AC, =, enter) or a compact string where every character is a key, such as
"12.5*4=". Evaluation is immediate: each operator applies the pending one.`,
	Example: `  calcpad eval 5+3=
  calcpad eval 1.5 + 2.5 =
  calcpad eval "7/0="
  calcpad eval --plain 50%`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	keys, err := calculator.ParseTokens(args)
	if err != nil {
		return err
	}

	m := calculator.NewMachine(
		calculator.WithRepeatPolicy(cfg.RepeatPolicy()),
		calculator.WithOwner("eval"),
	)
	m.PressAll(keys)

	p := newPrinter(cmd)
	p.PrintHeader("EVALUATE", "calcpad eval "+strings.Join(args, " "),
		ui.Detail{Key: "Repeat =", Value: cfg.RepeatPolicy().String()},
	)
	p.PrintDisplay(m.Display(), pendingDetails(m.State().Pending.String())...)
	return nil
}

func pendingDetails(pending string) []ui.Detail {
	if pending == "" {
		return nil
	}
	return []ui.Detail{{Key: "Pending", Value: pending}}
}

// pressCmd presses keys on a remote keypad
var pressCmd = &cobra.Command{
	Use:   "press <keys>...",
	Short: "Press keys on a remote keypad",
	Long: `Press keys on a calcpad keypad server and print its display.

Keys use the same syntax as 'calcpad eval'. Without --url the first keypad
found via mDNS is used. Each connection gets a fresh calculator.`,
	Example: `  # Discover a keypad on the LAN and evaluate
  calcpad press 5+3=

  # Connect to a specific keypad
  calcpad press --url ws://192.168.1.20:7337/ws 6 × 7 =`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPress,
}

func init() {
	pressCmd.Flags().StringVar(&pressURL, "url", "", "Keypad websocket URL (skips discovery)")
	pressCmd.Flags().BoolVar(&pressReset, "reset", false, "Clear the keypad before pressing")
	pressCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Discovery timeout in seconds")
}

func runPress(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	p := newPrinter(cmd)

	url := pressURL
	if url == "" {
		scanner := discovery.NewScanner()
		scanner.Timeout = time.Duration(scanTimeout) * time.Second

		keypad, err := scanner.First(ctx)
		if err != nil {
			p.PrintError("No keypad found", err,
				"Is 'calcpad serve' running on the network?",
				"mDNS may be blocked; pass --url ws://host:port/ws",
			)
			return fmt.Errorf("discovery failed: %w", err)
		}
		url = keypad.URL()
		logging.Info("Using discovered keypad", zap.String("keypad", keypad.String()), zap.String("url", url))
	}

	client, err := server.Dial(ctx, url)
	if err != nil {
		p.PrintError("Connection failed", err,
			"Check the URL and that the keypad server is running",
		)
		return err
	}
	defer func() { _ = client.Close() }()

	if pressReset {
		if _, err := client.Reset(); err != nil {
			return err
		}
	}

	reply, err := client.Press(args...)
	if err != nil {
		if errors.Is(err, server.ErrRejected) {
			p.PrintError("Keys rejected", err, "See 'calcpad eval --help' for key syntax")
		}
		return err
	}

	p.PrintHeader("REMOTE KEYPAD", "calcpad press "+strings.Join(args, " "),
		ui.Detail{Key: "Keypad", Value: url},
	)
	p.PrintDisplay(reply.Display, pendingDetails(reply.Pending)...)
	return nil
}

// discoverCmd lists keypads on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find keypads on the local network",
	Long: `Browse mDNS for calcpad keypad servers (` + discovery.ServiceType + `) and list
their addresses and websocket URLs.`,
	Example: `  # Browse for the default 3 seconds
  calcpad discover

  # Longer scan for slow networks
  calcpad discover --timeout 10`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	timeout := time.Duration(scanTimeout) * time.Second

	p.PrintHeader("DISCOVER", "calcpad discover",
		ui.Detail{Key: "Service", Value: discovery.ServiceType},
		ui.Detail{Key: "Timeout", Value: timeout.String()},
	)

	scanner := discovery.NewScanner()
	scanner.Timeout = timeout

	keypads, err := scanner.Scan(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(keypads) == 0 {
		p.PrintError("No keypads found", fmt.Errorf("no %s services answered within %s", discovery.ServiceType, timeout),
			"Start one with 'calcpad serve'",
			"Try increasing --timeout for slower networks",
		)
		return nil
	}

	for _, k := range keypads {
		details := []ui.Detail{
			{Key: "Host", Value: k.Hostname},
			{Key: "Address", Value: fmt.Sprintf("%s:%d", k.IP, k.Port)},
			{Key: "URL", Value: k.URL()},
		}
		if v := k.GetMetadata("version"); v != "" {
			details = append(details, ui.Detail{Key: "Version", Value: v})
		}
		if r := k.GetMetadata("repeat"); r != "" {
			details = append(details, ui.Detail{Key: "Repeat =", Value: r})
		}
		p.PrintDetails(k.Instance, details...)
	}
	return nil
}
