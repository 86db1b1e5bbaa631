// Package main runs a headless combat encounter and prints the message log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/crawl/internal/config"
	"github.com/cory-johannsen/crawl/internal/game/actor"
	"github.com/cory-johannsen/crawl/internal/game/dice"
	"github.com/cory-johannsen/crawl/internal/observability"
	"github.com/cory-johannsen/crawl/internal/simulate"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; built-in defaults when empty")
	rounds := flag.Int("rounds", 100, "maximum number of rounds to play")
	weapon := flag.String("weapon", "pistol", "weapon id wielded by the player")
	armor := flag.String("armor", "leather_jacket", "armor id worn by the player")
	rogue := flag.Bool("rogue", false, "grant the player the rogue bonus against unaware monsters")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting crawl simulation", observability.EngineFields(cfg.Engine)...)

	src := dice.NewCryptoSource()
	if cfg.Engine.Seed != 0 {
		src = dice.NewSeededSource(cfg.Engine.Seed)
	}
	rng := dice.NewLoggedRoller(src, logger)

	content, err := simulate.LoadContent(cfg.Content, rng, logger, cfg.Engine.ScriptInstructionLimit)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	defer content.Close()

	runner, err := simulate.NewRunner(content, rng, logger, cfg.Engine, simulate.Options{
		PlayerWeapon: *weapon,
		PlayerArmor:  *armor,
		Bonus:        actor.PlayerBonus{Rogue: *rogue},
	})
	if err != nil {
		logger.Fatal("building encounter", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := runner.Run(ctx, *rounds)

	for _, text := range runner.Journal.Texts() {
		fmt.Println(text)
	}
	fmt.Println(strings.Repeat("-", 40))
	outcome := "The player survived"
	if !summary.PlayerAlive {
		outcome = "The player died"
	}
	fmt.Printf("%s after %d rounds.\n", outcome, summary.Rounds)
	for _, id := range summary.KilledSpecies {
		fmt.Printf("  %-12s %d\n", id, runner.World.Kills.Count(id))
	}
	fmt.Printf("Total kills: %d\n", summary.Kills)
	if len(summary.SparedSpecies) > 0 {
		fmt.Printf("Spared: %s\n", strings.Join(summary.SparedSpecies, ", "))
	}

	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}
