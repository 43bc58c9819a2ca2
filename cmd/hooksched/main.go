// Command hooksched is a small terminal frontend for the hookSCHED API,
// mainly useful for poking at a deployment while developing against it.
//
//	hooksched events list
//	hooksched events get <id>
//	hooksched events delete <id>
//	hooksched schedule -url /hook -at 2026-09-01T09:00:00Z
//	hooksched crons list
//	hooksched crons get <id>
//	hooksched crons delete <id>
//	hooksched repeat -url /hook -expr "0 9 * * 1"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	hooksched "github.com/cankoe/hooksched-go"
)

func main() {
	apiKey := flag.String("api-key", "", "API key (falls back to HOOKSCHED_API_KEY)")
	apiURL := flag.String("api-url", "", "API endpoint (falls back to HOOKSCHED_API_URL)")
	baseURL := flag.String("base-url", "", "Base URL for relative webhook targets (falls back to HOOKSCHED_BASE_URL)")
	verbose := flag.Bool("v", false, "Log API requests")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Flags win over environment, matching the library's own precedence.
	v := viper.New()
	if err := v.BindEnv("HOOKSCHED_API_URL", "HOOKSCHED_API_URL"); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind environment variable")
	}
	if *apiURL == "" {
		*apiURL = v.GetString("HOOKSCHED_API_URL")
	}

	cfg := hooksched.Config{
		APIKey:  *apiKey,
		APIURL:  *apiURL,
		BaseURL: *baseURL,
	}
	if *verbose {
		cfg.Logger = &log.Logger
	}
	client := hooksched.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, client, flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func run(ctx context.Context, client *hooksched.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: hooksched <events|crons|schedule|repeat> ...")
	}

	switch args[0] {
	case "events":
		return runEvents(ctx, client, args[1:])
	case "crons":
		return runCrons(ctx, client, args[1:])
	case "schedule":
		return runSchedule(ctx, client, args[1:])
	case "repeat":
		return runRepeat(ctx, client, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runEvents(ctx context.Context, client *hooksched.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: hooksched events <list|get|delete> [id]")
	}
	switch args[0] {
	case "list":
		page, err := client.Events.List(ctx, nil)
		if err != nil {
			return err
		}
		return printJSON(page)
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: hooksched events get <id>")
		}
		evt, err := client.Events.Get(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(evt)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: hooksched events delete <id>")
		}
		if err := client.Events.Delete(ctx, args[1]); err != nil {
			return err
		}
		log.Info().Str("event_id", args[1]).Msg("Event deleted")
		return nil
	default:
		return fmt.Errorf("unknown events action %q", args[0])
	}
}

func runCrons(ctx context.Context, client *hooksched.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: hooksched crons <list|get|delete> [id]")
	}
	switch args[0] {
	case "list":
		page, err := client.Crons.List(ctx, nil)
		if err != nil {
			return err
		}
		return printJSON(page)
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: hooksched crons get <id>")
		}
		cron, err := client.Crons.Get(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(cron)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: hooksched crons delete <id>")
		}
		if err := client.Crons.Delete(ctx, args[1]); err != nil {
			return err
		}
		log.Info().Str("cron_id", args[1]).Msg("Cron deleted")
		return nil
	default:
		return fmt.Errorf("unknown crons action %q", args[0])
	}
}

func runSchedule(ctx context.Context, client *hooksched.Client, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	url := fs.String("url", "", "Webhook URL (absolute, or relative to -base-url)")
	at := fs.String("at", "", "Scheduled time, RFC 3339")
	method := fs.String("method", "", "HTTP method (default POST)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	evt, err := client.Schedule(ctx, hooksched.CreateEventInput{
		WebhookURL:  *url,
		ScheduledAt: *at,
		Method:      *method,
	})
	if err != nil {
		return err
	}
	return printJSON(evt)
}

func runRepeat(ctx context.Context, client *hooksched.Client, args []string) error {
	fs := flag.NewFlagSet("repeat", flag.ContinueOnError)
	url := fs.String("url", "", "Webhook URL (absolute, or relative to -base-url)")
	expr := fs.String("expr", "", "Cron expression (five fields)")
	tz := fs.String("tz", "", "Timezone for the expression")
	method := fs.String("method", "", "HTTP method (default POST)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cron, err := client.Repeat(ctx, hooksched.CreateCronInput{
		WebhookURL:     *url,
		CronExpression: *expr,
		Timezone:       *tz,
		Method:         *method,
	})
	if err != nil {
		return err
	}
	return printJSON(cron)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
