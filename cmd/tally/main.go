// One-shot job printing the current tally, for operators who want the counts
// without going through the HTTP API.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/digivote/api/internal/adapters/repository/postgres"
	"github.com/digivote/api/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	voteRepo := postgres.NewVoteRepository(db)
	tally, err := voteRepo.Tally(ctx)
	if err != nil {
		log.Fatalf("failed to tally votes: %v", err)
	}

	if len(tally) == 0 {
		fmt.Println("no votes recorded")
		return
	}

	candidates := make([]string, 0, len(tally))
	for candidate := range tally {
		candidates = append(candidates, candidate)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if tally[candidates[i]] != tally[candidates[j]] {
			return tally[candidates[i]] > tally[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})

	for _, candidate := range candidates {
		fmt.Printf("%s\t%d\n", candidate, tally[candidate])
	}
}
