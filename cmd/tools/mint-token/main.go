// cmd/tools/mint-token/main.go

// mint-token issues a bearer token for a user id, for local development and
// API testing. The role still comes from the user directory at request time,
// so a minted token for an unknown user authenticates but holds no role.
package main

import (
	"flag"
	"fmt"
	"os"

	"review-engine/internal/auth"
	"review-engine/internal/common/config"
)

func main() {
	userID := flag.String("user", "", "user id to mint a token for")
	hours := flag.Int("hours", 0, "override token lifetime in hours")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: mint-token -user <id> [-hours <n>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	lifetime := cfg.Auth.JWT.ExpirationHours
	if *hours > 0 {
		lifetime = *hours
	}

	tokens := auth.NewTokenService(cfg.Auth.JWT.Secret, lifetime)
	token, err := tokens.GenerateToken(*userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token generation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
