package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: go run cmd/hash-admin-key/main.go [<api-key>]")
		fmt.Println("Example: go run cmd/hash-admin-key/main.go \"ops-api-key-12345\"")
		os.Exit(1)
	}

	var apiKey string
	if len(os.Args) == 2 {
		apiKey = os.Args[1]
	} else {
		buf := make([]byte, 24)
		if _, err := rand.Read(buf); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate API key: %v\n", err)
			os.Exit(1)
		}
		apiKey = hex.EncodeToString(buf)
	}

	// Hash the API key
	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("ADMIN_API_KEY_HASH=%s\n", apiKeyHash)
	fmt.Printf("\n⚠️  IMPORTANT: Save this API key securely! Only the hash belongs in the server environment.\n")
	fmt.Printf("\nUse this API key in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
