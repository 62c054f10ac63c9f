// Command seed loads synthetic contributor rollup documents into the
// Postgres store for local development. It intentionally writes a mix of
// the two historical document schemas so the normalizer path gets exercised
// end to end.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/standards-dev/propdash/internal/domain/model"
)

const defaultContributors = 50

func main() {
	dsn := flag.String("dsn", os.Getenv("PROPDASH_POSTGRES_DSN"), "Postgres DSN")
	count := flag.Int("count", defaultContributors, "number of contributors to generate")
	seed := flag.Int64("seed", 42, "random seed for reproducible data")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "seed: -dsn or PROPDASH_POSTGRES_DSN is required")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "seed: open:", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed)) //nolint:gosec // deterministic seed for reproducible dev data

	for i := range *count {
		handle := fmt.Sprintf("contributor-%03d", i)
		doc := generateDoc(rng, handle, i%3 == 0)
		raw, err := json.Marshal(doc)
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed: marshal:", err)
			os.Exit(1)
		}
		_, err = db.ExecContext(ctx,
			`INSERT INTO contributor_rollups (handle, doc) VALUES ($1, $2)
			 ON CONFLICT (handle) DO UPDATE SET doc = EXCLUDED.doc, refreshed_at = now()`,
			handle, raw)
		if err != nil {
			fmt.Fprintln(os.Stderr, "seed: insert:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %d contributors\n", *count)
}

// generateDoc builds one rollup document. legacy selects the old flat
// counter schema instead of the aggregate field names.
func generateDoc(rng *rand.Rand, handle string, legacy bool) map[string]any {
	kinds := model.Kinds()
	repos := model.Repos()

	timeline := make([]map[string]any, 0, 40)
	now := time.Now().UTC()
	for range rng.Intn(40) {
		age := time.Duration(rng.Intn(200*24)) * time.Hour
		timeline = append(timeline, map[string]any{
			"kind": string(kinds[rng.Intn(len(kinds))]),
			"repo": string(repos[rng.Intn(len(repos))]),
			"ts":   now.Add(-age).Format(time.RFC3339),
		})
	}

	doc := map[string]any{
		"handle":         handle,
		"displayName":    "Contributor " + handle,
		"avatarUrl":      "https://avatars.example.com/" + handle,
		"activityStatus": "active",
		"timeline":       timeline,
	}
	if rng.Intn(2) == 0 {
		doc["avgResponseHours"] = float64(rng.Intn(72)) + rng.Float64()
	}

	counts := map[string]int{
		"Commits":      rng.Intn(500),
		"PRsOpened":    rng.Intn(80),
		"PRsMerged":    rng.Intn(60),
		"PRsClosed":    rng.Intn(20),
		"Reviews":      rng.Intn(200),
		"Comments":     rng.Intn(400),
		"IssuesOpened": rng.Intn(50),
	}
	if legacy {
		doc["username"] = handle
		delete(doc, "handle")
		doc["commits"] = counts["Commits"]
		doc["prsOpened"] = counts["PRsOpened"]
		doc["prsMerged"] = counts["PRsMerged"]
		doc["prsClosed"] = counts["PRsClosed"]
		doc["reviews"] = counts["Reviews"]
		doc["comments"] = counts["Comments"]
		doc["issuesOpened"] = counts["IssuesOpened"]
	} else {
		doc["totalCommits"] = counts["Commits"]
		doc["totalPRsOpened"] = counts["PRsOpened"]
		doc["totalPRsMerged"] = counts["PRsMerged"]
		doc["totalPRsClosed"] = counts["PRsClosed"]
		doc["totalReviews"] = counts["Reviews"]
		doc["totalComments"] = counts["Comments"]
		doc["totalIssuesOpened"] = counts["IssuesOpened"]
	}
	return doc
}
