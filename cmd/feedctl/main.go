package main

import (
	"context"
	"feed-lab/client"
	"feed-lab/domain"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string        `env:"FEED_SERVER_ADDR,default=http://localhost:3000"`
	Timeout       time.Duration `env:"FEED_TIMEOUT,default=5s"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
	Colours       bool          `env:"FEED_COLOURS,default=true"`
}

const usage = `usage:
  feedctl feed
  feedctl get <id>
  feedctl post -title <title> -body <body> -author <name>`

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string, out io.Writer) (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if len(args) == 0 {
		return exitConfig, fmt.Errorf("missing command\n%s", usage)
	}

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed := client.NewFeedClient(config.ServerAddress, config.Timeout)
	log.Debug("Feed client ready", "server", config.ServerAddress)

	// 3. Dispatch the command.
	switch args[0] {
	case "feed":
		posts, err := feed.Feed(ctx)
		if err != nil {
			return exitRuntime, err
		}
		header(out, config.Colours, fmt.Sprintf("%d posts on %s", len(posts), config.ServerAddress))
		renderPosts(out, posts)
	case "get":
		if len(args) < 2 {
			return exitConfig, fmt.Errorf("missing id\n%s", usage)
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return exitConfig, fmt.Errorf("invalid id %q: %w", args[1], err)
		}
		post, found, err := feed.Get(ctx, id)
		if err != nil {
			return exitRuntime, err
		}
		if !found {
			return exitRuntime, fmt.Errorf("post %s not found", id)
		}
		renderPosts(out, []domain.Post{post})
	case "post":
		post, err := parsePost(args[1:])
		if err != nil {
			return exitConfig, err
		}
		if _, err = feed.Create(ctx, post); err != nil {
			return exitRuntime, err
		}
		header(out, config.Colours, "Post created")
		renderPosts(out, []domain.Post{post})
	default:
		return exitConfig, fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
	return exitOK, nil
}

// parsePost builds a new post from flags; id and timestamp are generated here.
func parsePost(args []string) (domain.Post, error) {
	flags := flag.NewFlagSet("post", flag.ContinueOnError)
	title := flags.String("title", "", "post title")
	body := flags.String("body", "", "post body")
	author := flags.String("author", "", "author name")
	if err := flags.Parse(args); err != nil {
		return domain.Post{}, err
	}
	if *title == "" || *author == "" {
		return domain.Post{}, fmt.Errorf("title and author are required\n%s", usage)
	}
	return domain.NewPost(*title, *body, domain.Author{Name: *author}, time.Now().UTC(), uuid.New()), nil
}

func header(out io.Writer, colours bool, text string) {
	line := fmt.Sprintf("  ====== %s ======", text)
	if colours {
		line = color.New(color.BgBlack, color.FgGreen).Render(line)
	}
	fmt.Fprintln(out, line)
}

func renderPosts(out io.Writer, posts []domain.Post) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"ID", "Created At", "Author", "Title", "Body"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.AppendBulk(lo.Map(posts, func(p domain.Post, _ int) []string {
		return []string{
			p.ID.String(),
			p.CreatedAt.Format(time.RFC3339),
			p.Author.Name,
			p.Title,
			p.Body,
		}
	}))
	table.Render()
}
