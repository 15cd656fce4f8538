// cmd/tools/alias-export/main.go

// alias-export dumps the applicant id to alias mapping as JSON, straight from
// the database. Used after decisions are made to de-anonymize outcomes without
// going through the API.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"review-engine/internal/common/config"
	"review-engine/internal/common/database"
	storepg "review-engine/internal/store/postgres"
)

func main() {
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres failed: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	applicants, err := storepg.NewApplicantStore(pg).List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading applicants failed: %v\n", err)
		os.Exit(1)
	}

	type entry struct {
		ApplicantID string `json:"applicantId"`
		Alias       string `json:"alias"`
	}
	entries := make([]entry, 0, len(applicants))
	for _, applicant := range applicants {
		entries = append(entries, entry{ApplicantID: applicant.ID, Alias: applicant.Alias})
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating output file failed: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		fmt.Fprintf(os.Stderr, "encoding failed: %v\n", err)
		os.Exit(1)
	}
}
