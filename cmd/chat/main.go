package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"propchat/internal/config"
	"propchat/internal/model"
	"propchat/internal/repository"
	"propchat/internal/service"
	"propchat/internal/utils"
)

func main() {
	app := &cli.App{
		Name:  "propchat",
		Usage: "Conversational property search from your terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "csv",
				Aliases: []string{"c"},
				Usage:   "Path to the property dataset CSV (overrides DATASET_CSV_PATH)",
			},
			&cli.IntFlag{
				Name:  "cards",
				Usage: "Maximum property cards printed per reply",
				Value: 3,
			},
		},
		Action: chatCommand,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if path := c.String("csv"); path != "" {
		cfg.Dataset.CSVPath = path
	}

	dataset, err := repository.LoadCSV(cfg.Dataset.CSVPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	var aiClient service.AIClient
	if cfg.OpenAI.Enabled {
		aiClient = service.NewOpenAIClient(&cfg.OpenAI)
	}

	chatService := service.NewChatService(
		dataset,
		service.NewExtractor(aiClient),
		service.NewSummarizer(aiClient, cfg.Search.SummarySampleSize),
		service.NewSessionManager(cfg.Search.HistoryLimit),
		c.Int("cards"),
	)

	fmt.Printf("Loaded %d properties from %s\n", dataset.Len(), cfg.Dataset.CSVPath)
	if aiClient == nil {
		fmt.Println("OPENAI_API_KEY is not set, using pattern extraction only.")
	}
	fmt.Println()
	fmt.Println("Hello! How can I help you find your dream home today?")
	fmt.Println("Type /filters to inspect the search, /reset to start over, /quit to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	sessionID := ""
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			fmt.Println("Goodbye!")
			return nil
		case "/filters":
			printFilters(chatService, sessionID)
			continue
		case "/reset":
			if sessionID != "" {
				chatService.ResetSession(sessionID)
			}
			fmt.Println("Filters cleared. What are you looking for?")
			continue
		}

		resp, err := chatService.HandleTurn(ctx, &model.ChatRequest{
			Message:   line,
			SessionID: sessionID,
		})
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		sessionID = resp.SessionID

		fmt.Println(resp.Reply)
		if resp.MatchCount > 0 {
			fmt.Printf("%d matching properties", resp.MatchCount)
			if resp.Excluded > 0 {
				fmt.Printf(" (%d left out for missing data)", resp.Excluded)
			}
			fmt.Println()
		}
		for _, card := range resp.Cards {
			fmt.Println(formatCard(card))
		}
	}

	return scanner.Err()
}

func printFilters(chatService *service.ChatService, sessionID string) {
	if sessionID == "" {
		fmt.Println("No search yet.")
		return
	}
	snapshot, ok := chatService.SessionSnapshot(sessionID)
	if !ok {
		fmt.Println("No search yet.")
		return
	}
	if snapshot.Filter.IsEmpty() {
		fmt.Println("No filters applied.")
		return
	}
	pretty, err := utils.PrettyJSON(snapshot.Filter)
	if err != nil {
		fmt.Printf("%+v\n", snapshot.Filter)
		return
	}
	fmt.Println(pretty)
}

func formatCard(card model.PropertyCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  #%d", card.ID)
	if card.ProjectName != "" {
		fmt.Fprintf(&b, " %s", card.ProjectName)
	}
	location := card.Locality
	if card.City != "" {
		if location != "" {
			location += ", "
		}
		location += card.City
	}
	if location != "" {
		fmt.Fprintf(&b, " | %s", location)
	}
	if card.Bedrooms != nil {
		fmt.Fprintf(&b, " | %dBHK", *card.Bedrooms)
	}
	if card.PriceFormatted != "" {
		fmt.Fprintf(&b, " | %s", card.PriceFormatted)
	}
	if card.PossessionStatus != "" {
		fmt.Fprintf(&b, " | %s", card.PossessionStatus)
	}
	return b.String()
}
