// Command apikey prints a fresh product service API key and the bcrypt hash to
// configure as CATALOG_API_KEY_HASH.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/odyssey-erp/productdesk/internal/catalog/api"
)

func main() {
	key := flag.String("key", "", "key to hash; a random one is generated when empty")
	flag.Parse()

	if *key == "" {
		*key = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	hash, err := api.HashAPIKey(*key)
	if err != nil {
		log.Fatalf("hash api key: %v", err)
	}
	fmt.Printf("CATALOG_API_KEY=%s\n", *key)
	fmt.Printf("CATALOG_API_KEY_HASH=%s\n", hash)
}
