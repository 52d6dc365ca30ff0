package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/joefancyai/localizedKWvolume/internal/cache"
	"github.com/joefancyai/localizedKWvolume/internal/config"
	"github.com/joefancyai/localizedKWvolume/internal/export"
	"github.com/joefancyai/localizedKWvolume/internal/fetcher"
	"github.com/joefancyai/localizedKWvolume/internal/locations"
	"github.com/joefancyai/localizedKWvolume/internal/logger"
	"github.com/joefancyai/localizedKWvolume/internal/models"
	"github.com/joefancyai/localizedKWvolume/internal/parser"
	"github.com/joefancyai/localizedKWvolume/internal/volumes"
)

// main sets up the one-shot CLI for single-operator lookups without a server
func main() {
	var rootCmd = &cobra.Command{
		Use:   "kwvolume",
		Short: "Look up localized Google Ads keyword search volumes",
		Long:  `A CLI tool to fetch keyword search-volume metrics for a chosen location from a DataForSEO-compatible provider, with a locally cached location list.`,
	}

	rootCmd.AddCommand(newLocationsCommand())
	rootCmd.AddCommand(newVolumesCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildServices wires config, store, provider client, and services the same
// way the server does, minus the HTTP surface
func buildServices() (locations.Service, volumes.Service, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("set DATAFORSEO_LOGIN and DATAFORSEO_PASSWORD in the environment or .env file: %w", err)
	}

	appLogger := logger.NewConsoleLogger()

	var store cache.Store
	switch cfg.CacheType {
	case "redis":
		s, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store = s
	case "memory":
		store = cache.NewMemoryStore()
	default:
		store = cache.NewFileStore(cfg.CacheFile)
	}

	client, err := fetcher.NewClient(
		cfg.ProviderLogin,
		cfg.ProviderPassword,
		cfg.ProviderBaseURL,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
	)
	if err != nil {
		return nil, nil, err
	}

	locationService := locations.NewService(store, client, appLogger, cfg.LocationCacheTTL)
	volumeService := volumes.NewService(parser.NewParser(), client, appLogger)

	return locationService, volumeService, nil
}

func newLocationsCommand() *cobra.Command {
	var search string
	var limit int
	var refresh bool

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List or search the cached provider location list",
		Run: func(cmd *cobra.Command, args []string) {
			locationService, _, err := buildServices()
			if err != nil {
				log.Fatalf("Error: %v", err)
			}

			ctx := context.Background()

			var locs []models.Location
			var status models.LocationStatus
			if refresh {
				locs, status = locationService.GetLocations(ctx, true)
			} else {
				locs, status = locationService.SearchLocations(ctx, search, limit)
			}

			fmt.Printf("Status: %s\n\n", status.Message)
			for _, loc := range locs {
				fmt.Println(loc.Display)
			}
			if len(locs) == 0 {
				fmt.Println("No locations found.")
			}
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter locations by name substring")
	cmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum number of results")
	cmd.Flags().BoolVarP(&refresh, "refresh", "r", false, "Force a fresh fetch of the location database")

	return cmd
}

func newVolumesCommand() *cobra.Command {
	var keywords string
	var locationCode int
	var locationName string
	var language string
	var csvPath string

	cmd := &cobra.Command{
		Use:   "volumes",
		Short: "Fetch search-volume metrics for a keyword batch",
		Run: func(cmd *cobra.Command, args []string) {
			_, volumeService, err := buildServices()
			if err != nil {
				log.Fatalf("Error: %v", err)
			}

			keywordParser := parser.NewParser()
			req := models.VolumeRequest{
				Keywords:     keywordParser.ParseKeywords(keywords),
				LanguageCode: language,
				LocationCode: locationCode,
				LocationName: locationName,
			}

			report, err := volumeService.GetVolumes(context.Background(), req)
			if err != nil {
				log.Fatalf("Volume lookup failed: %v", err)
			}

			for _, w := range report.Warnings {
				fmt.Printf("Warning: task failed with status code %d - %s\n", w.StatusCode, w.Message)
			}

			if report.Empty() {
				fmt.Println("No results returned.")
				return
			}

			if csvPath != "" {
				writeCSVFile(csvPath, report)
				return
			}

			printTable(report)
		},
	}

	cmd.Flags().StringVarP(&keywords, "keywords", "k", "", "Keywords, comma or newline separated")
	cmd.Flags().IntVarP(&locationCode, "location-code", "c", 0, "Provider location code (e.g. 2840 for the US)")
	cmd.Flags().StringVarP(&locationName, "location-name", "n", "", "Location name shown in results")
	cmd.Flags().StringVar(&language, "language", "en", "Language code")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write results to this CSV file instead of stdout")
	_ = cmd.MarkFlagRequired("keywords")
	_ = cmd.MarkFlagRequired("location-code")

	return cmd
}

func printTable(report *models.VolumeReport) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYWORD\tSEARCH VOLUME\tCOMPETITION\tCPC\tLOCATION")
	for _, rec := range report.Results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", rec.Keyword, rec.SearchVolume, rec.Competition, rec.CPC, rec.LocationName)
	}
	tw.Flush()
}

func writeCSVFile(path string, report *models.VolumeReport) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create CSV file: %v", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, report); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(report.Results), path)
}
