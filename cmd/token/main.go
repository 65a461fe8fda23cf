package main

import (
	"flag"
	"fmt"
	"os"

	"keel/config"
	"keel/infras/jwt"
	"keel/shared/logger"
)

// Mints an access token for local development and testing against a running
// instance. Production tokens come from the identity provider, not this tool.
func main() {
	userID := flag.String("user", "", "owner id to embed in the token")
	email := flag.String("email", "", "email claim, optional")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -user <owner-id> [-email <email>]")
		os.Exit(2)
	}

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	token, err := jwt.New(cfg).GenerateAccessToken(*userID, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
