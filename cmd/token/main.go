package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/compliance-risk-go/internal/config"
	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/jwt"
)

// Operator tool that mints an API access token for trusted callers of
// the scan and report endpoints. Runs against the same environment as
// the server so both sides share JWT_SECRET_KEY.
func main() {
	subject := flag.String("subject", "", "subject claim for the token (required)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "Usage: token -subject <caller-id>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	token, expiresAt, err := jwtService.GenerateAccessToken(*subject)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "Expires at:", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
}
