package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"hubbub/domain/search"
	"hubbub/repositories"
)

// Config keeps the viewer independent from the daemon's required
// variables: only the storage paths matter here.
type Config struct {
	BadgerFilepath string `envconfig:"BADGER_FILEPATH" default:"/tmp/hubbub/badger"`
	BlugeFilepath  string `envconfig:"BLUGE_FILEPATH" default:"/tmp/hubbub/bluge"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"warn"`
}

func main() {
	convo := flag.Int64("convo", 0, "conversation id to list")
	find := flag.String("find", "", "full-text search over committed messages")
	limit := flag.Int("limit", 20, "maximum number of rows")
	flag.Parse()

	// 1. Load config
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	if *find != "" {
		query := search.NewQuery(*find)
		query.Limit = *limit
		if *convo != 0 {
			query.Conversation = strconv.FormatInt(*convo, 10)
		}

		hits, err := repositories.SearchStored(
			context.Background(), bluge.DefaultConfig(config.BlugeFilepath), query)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		renderHits(hits)
		return
	}

	if *convo == 0 {
		fmt.Println("Usage: viewer -convo <id> | viewer -find \"terms [--convo id]\"")
		os.Exit(2)
	}

	// 2. Open Badger in Read-Only mode
	// Note: BypassLockGuard allows opening if another process (the
	// daemon) holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repository := repositories.NewMessageRepository(db, logger, limit)
	messages, _, err := repository.GetMessages(*convo, nil)
	if err != nil {
		log.Fatalf("Failed to read messages: %v", err)
	}
	renderMessages(messages)
}

func renderMessages(messages []repositories.DiskMessage) {
	if len(messages) == 0 {
		color.Yellow.Println("No messages found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"At", "Conversation", "Nick", "Language", "Content"})
	rows := lo.Map(messages, func(m repositories.DiskMessage, _ int) []string {
		return []string{
			m.At.Format("2006-01-02 15:04:05"),
			strconv.FormatInt(m.Conversation, 10),
			m.Nick,
			m.Language,
			m.Content,
		}
	})
	table.AppendBulk(rows)
	table.Render()
	color.Green.Printf("%d message(s)\n", len(messages))
}

func renderHits(hits []repositories.Hit) {
	if len(hits) == 0 {
		color.Yellow.Println("No matches found")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Conversation", "Nick", "Content"})
	for _, h := range hits {
		table.Append([]string{h.ID, h.Conversation, h.Nick, h.Content})
	}
	table.Render()
	color.Green.Printf("%d match(es)\n", len(hits))
}
