package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/dataeng-io/webanalytics-etl/internal/ga"
	"github.com/dataeng-io/webanalytics-etl/internal/logger"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "accounts":
		runAccounts(log)
	case "properties":
		runProperties(log)
	case "views":
		runViews(log)
	case "resolve":
		runResolve(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Analytics view browser")
	fmt.Println("\nUsage:")
	fmt.Println("  ga-views <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  accounts    List accounts the credentials can read")
	fmt.Println("  properties  List web properties of an account")
	fmt.Println("  views       List views of a web property")
	fmt.Println("  resolve     Resolve account/property/view names to a view ID")
	fmt.Println("  help        Show this help message")
	fmt.Println("\nRun 'ga-views <command> -h' for more information on a command.")
}

func newClient(log zerolog.Logger, credentialsFile string) (context.Context, context.CancelFunc, *ga.Client) {
	if credentialsFile == "" {
		log.Fatal().Msg("Error: --credentials is required")
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	ctx = logger.WithContext(ctx, log)
	client, err := ga.NewClient(ctx, credentialsFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize analytics client")
	}
	return ctx, cancel, client
}

func runAccounts(log zerolog.Logger) {
	fs := flag.NewFlagSet("accounts", flag.ExitOnError)
	credentials := fs.String("credentials", "", "Path to service account credentials JSON")
	fs.Parse(os.Args[2:])

	ctx, cancel, client := newClient(log, *credentials)
	defer cancel()

	accounts, err := client.Accounts(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list accounts")
	}
	for _, a := range accounts {
		fmt.Printf("%s\t%s\n", a.Id, a.Name)
	}
}

func runProperties(log zerolog.Logger) {
	fs := flag.NewFlagSet("properties", flag.ExitOnError)
	credentials := fs.String("credentials", "", "Path to service account credentials JSON")
	accountID := fs.String("account-id", "", "Account ID (required)")
	fs.Parse(os.Args[2:])

	if *accountID == "" {
		log.Fatal().Msg("Error: --account-id is required")
	}
	ctx, cancel, client := newClient(log, *credentials)
	defer cancel()

	properties, err := client.Properties(ctx, *accountID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list properties")
	}
	for _, p := range properties {
		fmt.Printf("%s\t%s\n", p.Id, p.Name)
	}
}

func runViews(log zerolog.Logger) {
	fs := flag.NewFlagSet("views", flag.ExitOnError)
	credentials := fs.String("credentials", "", "Path to service account credentials JSON")
	accountID := fs.String("account-id", "", "Account ID (required)")
	propertyID := fs.String("property-id", "", "Web property ID (required)")
	fs.Parse(os.Args[2:])

	if *accountID == "" || *propertyID == "" {
		log.Fatal().Msg("Usage: ga-views views -credentials PATH -account-id ID -property-id ID")
	}
	ctx, cancel, client := newClient(log, *credentials)
	defer cancel()

	views, err := client.Views(ctx, *accountID, *propertyID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list views")
	}
	for _, v := range views {
		fmt.Printf("%s\t%s\n", v.Id, v.Name)
	}
}

func runResolve(log zerolog.Logger) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	credentials := fs.String("credentials", "", "Path to service account credentials JSON")
	account := fs.String("account", "", "Account name (required)")
	property := fs.String("property", "", "Web property name (required)")
	view := fs.String("view", "", "View name (required)")
	fs.Parse(os.Args[2:])

	if *account == "" || *property == "" || *view == "" {
		log.Fatal().Msg("Usage: ga-views resolve -credentials PATH -account NAME -property NAME -view NAME")
	}
	ctx, cancel, client := newClient(log, *credentials)
	defer cancel()

	if err := client.ResolveView(ctx, *account, *property, *view); err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve view")
	}
	fmt.Println(client.ViewID())
}
