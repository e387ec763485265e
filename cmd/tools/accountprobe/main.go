// Command accountprobe shows how an account identifier is routed and keyed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nilgpt/nilgpt/backend/internal/config"
	"github.com/nilgpt/nilgpt/backend/internal/logging"
	"github.com/nilgpt/nilgpt/backend/internal/model/identity"
	"github.com/nilgpt/nilgpt/backend/internal/nildb"
)

type probe struct {
	Provider  identity.Provider `json:"provider"`
	UserID    string            `json:"userId"`
	RecordKey string            `json:"recordKey"`
	Found     *bool             `json:"found,omitempty"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("err", err))
	}

	id := flag.String("id", "", "account identifier: Supabase UUID or did:privy:... DID")
	salt := flag.String("salt", "", "namespace UUID for Privy record keys (default $SALT)")
	lookup := flag.Bool("lookup", false, "look the user record up in nilDB")
	timeout := flag.Duration("timeout", 15*time.Second, "nilDB request timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Service: "accountprobe", Env: logging.ParseEnv(cfg.Logging.Env), Debug: cfg.Logging.Debug})

	if *salt == "" {
		*salt = cfg.Account.Salt
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, os.Stdout, *id, *salt, *lookup, cfg.NilDB); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, rawID, salt string, lookup bool, db config.NilDBConfig) error {
	acct, err := identity.Parse(rawID)
	if err != nil {
		return err
	}
	namespace, err := identity.ParseNamespace(salt)
	if err != nil {
		return err
	}

	p := probe{Provider: acct.Provider(), UserID: acct.UserID(), RecordKey: acct.RecordKey(namespace)}

	if lookup {
		client, err := nildb.New(nildb.Options{NodeURLs: db.Nodes(), Token: db.APIToken, Timeout: db.Timeout})
		if err != nil {
			return fmt.Errorf("nilDB client: %w", err)
		}
		docs, err := client.FindData(ctx, db.UserCollectionID, nildb.Filter{"_id": p.RecordKey})
		if err != nil {
			return fmt.Errorf("find user record: %w", err)
		}
		found := len(docs) > 0
		p.Found = &found
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
