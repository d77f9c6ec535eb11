package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/crimeacs/kaufmannGPT/config"
	standup "github.com/crimeacs/kaufmannGPT/core"
	llmopenai "github.com/crimeacs/kaufmannGPT/core/llms/openai"
	"github.com/crimeacs/kaufmannGPT/core/planner"
	"github.com/crimeacs/kaufmannGPT/core/reactions"
	rtopenai "github.com/crimeacs/kaufmannGPT/core/realtime/openai"
)

func main() {
	fmt.Println("kaufmannGPT warming up the room…")

	configPath := flag.String("config", "config.yaml", "path to config file")
	theme := flag.String("theme", "", "override the performance theme")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	channelOpts := []rtopenai.ChannelOption{}
	if cfg.Generation.Model != "" {
		channelOpts = append(channelOpts, rtopenai.WithModel(cfg.Generation.Model))
	}
	if cfg.Generation.Voice != "" {
		channelOpts = append(channelOpts, rtopenai.WithVoice(cfg.Generation.Voice))
	}
	channel := rtopenai.NewChannel(cfg.OpenAIAPIKey, channelOpts...)

	oracleOpts := []llmopenai.ClientOption{}
	if cfg.Planning.Model != "" {
		oracleOpts = append(oracleOpts, llmopenai.WithModel(cfg.Planning.Model))
	}
	oracle := llmopenai.NewClient(cfg.OpenAIAPIKey, oracleOpts...)

	performerOpts := []standup.PerformerOption{
		standup.WithPlanner(planner.New(oracle)),
	}
	if *theme != "" {
		performerOpts = append(performerOpts, standup.WithTheme(*theme))
	} else if cfg.Performance.Theme != "" {
		performerOpts = append(performerOpts, standup.WithTheme(cfg.Performance.Theme))
	}
	if cfg.Performance.Opener != "" {
		performerOpts = append(performerOpts, standup.WithOpener(cfg.Performance.Opener))
	}
	if deadline := cfg.CollectionDeadline(); deadline > 0 {
		performerOpts = append(performerOpts, standup.WithCollectionDeadline(deadline))
	}
	if staleness := cfg.ReactionStaleness(); staleness > 0 {
		performerOpts = append(performerOpts, standup.WithStalenessWindow(staleness))
	}
	if len(cfg.Planning.BannedPhrases) > 0 {
		performerOpts = append(performerOpts, standup.WithBannedPhrases(cfg.Planning.BannedPhrases...))
	}

	performer := standup.NewPerformer(channel, performerOpts...)
	defer func() {
		if err := performer.Disconnect(); err != nil {
			log.Printf("Failed to disconnect: %v", err)
		}
	}()

	ctx := context.Background()

	turn, err := performer.PerformTurn(ctx, "")
	if err != nil {
		log.Fatalf("Cold open failed: %v", err)
	}
	printTurn(turn)

	fmt.Println("Crowd reads: hit | mixed | miss | uncertain (or 'stats', 'quit')")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "quit", "exit":
			return
		case "stats":
			stats := performer.Stats()
			fmt.Printf("turns=%d engagement=%s (%.2f) themes=%v\n",
				stats.TotalTurns, stats.Engagement, stats.EngagementRate, stats.Themes)
			continue
		}

		if verdict := reactions.Verdict(input); verdict == reactions.VerdictHit ||
			verdict == reactions.VerdictMixed || verdict == reactions.VerdictMiss ||
			verdict == reactions.VerdictUncertain {
			if err := performer.SubmitReaction(reactions.ModalityAudio, verdict, "operator input"); err != nil {
				log.Printf("Rejected reaction: %v", err)
				continue
			}
		}

		turn, err := performer.PerformTurn(ctx, input)
		if err != nil {
			log.Printf("Turn failed: %v", err)
			continue
		}
		printTurn(turn)
	}
}

func printTurn(turn standup.Turn) {
	fmt.Printf("\n[%s] %s\n", turn.ID[:8], turn.ResultText)
	if turn.HasAudio {
		fmt.Printf("(audio: %d bytes)\n", len(turn.ResultAudio))
	}
}
