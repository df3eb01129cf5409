// Command cli is the terminal front end: it signs users up, logs them in
// and renders the role dashboards served by the API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yacinedz/siyaqa/client"
	"github.com/yacinedz/siyaqa/client/session"
)

const defaultAPIURL = "http://localhost:8000"

func main() {
	apiURL := os.Getenv("SIYAQA_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	sessionDir := os.Getenv("SIYAQA_SESSION_DIR")
	if sessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
			os.Exit(1)
		}
		sessionDir = filepath.Join(home, ".siyaqa")
	}

	storage, err := session.NewDirStorage(sessionDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	store := session.NewStore(storage)

	cli := commandLine{
		api:   client.New(apiURL, store),
		store: store,
		out:   os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}
