package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arcanefeed/riftwatch/internal/config"
	"github.com/arcanefeed/riftwatch/internal/engine"
	"github.com/arcanefeed/riftwatch/internal/lcu"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "riftwatch",
		Short: "League client companion: session tracking and match-history analysis",
		RunE:  run,
	}

	f := rootCmd.Flags()
	f.Int("credential-ttl", 60, "seconds a discovered credential is trusted before rescanning")
	f.Int("probe-timeout", 5, "seconds before a single connection probe gives up")
	f.Int("match-history-count", 20, "default number of recent games a match-history run samples")
	f.Int("champ-select-throttle-ms", 100, "minimum milliseconds between champ-select-session-changed events")
	f.Int("max-concurrent-fetches", 4, "max simultaneous per-player match-history fetches")
	f.Bool("verbose", false, "annotate engine log lines with source file and line")
	f.Bool("probe-only", false, "run credential discovery plus one probe and exit")

	bindFlag := func(viperKey, flagName string) {
		_ = viper.BindPFlag(viperKey, f.Lookup(flagName))
	}
	bindFlag("credential_ttl", "credential-ttl")
	bindFlag("probe_timeout", "probe-timeout")
	bindFlag("match_history_count", "match-history-count")
	bindFlag("champ_select_throttle_ms", "champ-select-throttle-ms")
	bindFlag("max_concurrent_fetches", "max-concurrent-fetches")
	bindFlag("verbose", "verbose")
	bindFlag("probe_only", "probe-only")

	viper.SetEnvPrefix("RIFTWATCH")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	fmt.Printf("riftwatch %s starting\n", config.Version)
	fmt.Printf("  credential ttl: %ds\n", cfg.CredentialTTL)
	fmt.Printf("  probe timeout: %ds\n", cfg.ProbeTimeout)
	fmt.Printf("  match-history count: %d\n", cfg.MatchHistoryCount)
	fmt.Println()

	e := engine.New(cfg, lcu.PSProcessLister{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.ProbeOnly {
		probeCtx, probeCancel := context.WithTimeout(ctx, 30*time.Second)
		defer probeCancel()
		info, err := e.ProbeOnce(probeCtx)
		if err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}
		fmt.Printf("probe ok: state=%s\n", info.State)
		return nil
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		log.Printf("received %s, shutting down...", sig)
		cancel()
	}()

	if err := e.Run(ctx); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}
