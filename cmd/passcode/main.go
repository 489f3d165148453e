// Command passcode prints the bcrypt hash to put in AUTH_PASSCODE_HASH.
package main

import (
	"fmt"
	"os"

	"lifeseed/internal/logger"
	"lifeseed/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"), "")
	defer logger.Sync()

	if len(os.Args) != 2 || os.Args[1] == "" {
		logger.Get().Fatal("usage: passcode <passcode>")
	}

	hash, err := services.HashPasscode(os.Args[1])
	if err != nil {
		logger.Get().Fatalf("failed to hash passcode: %v", err)
	}
	fmt.Println(hash)
}
