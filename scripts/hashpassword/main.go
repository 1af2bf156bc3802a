package main

import (
	"fmt"
	"os"

	"github.com/linesmerrill/human-rights-mis-api/security"
)

// Quick utility to generate a bcrypt hash for a new user
// Usage: go run ./scripts/hashpassword <username> <password>
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run ./scripts/hashpassword <username> <password>")
		os.Exit(1)
	}

	username, password := os.Args[1], os.Args[2]
	hash, err := security.HashPassword(password)
	if err != nil {
		fmt.Printf("Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Bcrypt Hash: %s\n", hash)
	fmt.Printf("\nTo create the user in MongoDB, run:\n")
	fmt.Printf("db.users.insertOne({\n")
	fmt.Printf("  username: %q,\n", username)
	fmt.Printf("  password_hash: %q,\n", hash)
	fmt.Printf("  roles: [\"lawyer\"],\n")
	fmt.Printf("  active: true,\n")
	fmt.Printf("  created_at: new Date()\n")
	fmt.Printf("})\n")
}
